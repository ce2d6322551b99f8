package http

import (
	"net/http"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"
	"clubhub/internal/infrastructure/middleware"
	apperrors "clubhub/pkg/errors"

	"github.com/gin-gonic/gin"
)

type FavoritesHandler struct {
	favoritesService ports.FavoritesService
}

func NewFavoritesHandler(favoritesService ports.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesService: favoritesService,
	}
}

func (h *FavoritesHandler) SetupRoutes(router *gin.Engine, requireAuth gin.HandlerFunc) {
	api := router.Group("/api/v1/favorites", requireAuth)
	{
		api.GET("", h.List)
		api.POST("/toggle", h.Toggle)
		api.GET("/:kind/:id", h.IsLiked)
	}
}

func (h *FavoritesHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.Error(apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	favorites, err := h.favoritesService.List(c.Request.Context(), userID)
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to load favorites", http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

type ToggleFavoriteRequest struct {
	Kind domain.FavoriteKind `json:"kind" binding:"required"`
	ID   domain.ContentID    `json:"id" binding:"required"`
}

func (h *FavoritesHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.Error(apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req ToggleFavoriteRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request format"))
		return
	}
	if !req.Kind.Valid() {
		c.Error(apperrors.NewInvalidInputError("unknown favorite kind"))
		return
	}

	liked, err := h.favoritesService.Toggle(c.Request.Context(), userID, req.Kind, req.ID)
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to toggle favorite", http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"kind": req.Kind, "id": req.ID, "liked": liked})
}

func (h *FavoritesHandler) IsLiked(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.Error(apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	kind := domain.FavoriteKind(c.Param("kind"))
	if !kind.Valid() {
		c.Error(apperrors.NewInvalidInputError("unknown favorite kind"))
		return
	}

	liked, err := h.favoritesService.IsLiked(c.Request.Context(), userID, kind, domain.ContentID(c.Param("id")))
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to check favorite", http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
