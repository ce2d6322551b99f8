package http

import (
	"errors"
	"net/http"
	"strings"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"
	"clubhub/internal/infrastructure/middleware"
	apperrors "clubhub/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ClubHandler struct {
	clubService ports.ClubService
}

func NewClubHandler(clubService ports.ClubService) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
	}
}

func (h *ClubHandler) SetupRoutes(router *gin.Engine, requireAuth gin.HandlerFunc) {
	api := router.Group("/api/v1/clubs")
	{
		api.GET("", h.ListClubs)
		api.GET("/search", h.SearchClubs)
		api.GET("/selection", requireAuth, h.GetSelection)
		api.PUT("/selection", requireAuth, h.SaveSelection)
		api.GET("/:id", h.GetClub)
	}
}

func (h *ClubHandler) ListClubs(c *gin.Context) {
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		clubs, err := h.clubService.Search(c.Request.Context(), term)
		if err != nil {
			c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "search failed", http.StatusInternalServerError))
			return
		}
		c.JSON(http.StatusOK, gin.H{"clubs": clubs})
		return
	}

	clubs, err := h.clubService.Clubs(c.Request.Context())
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to list clubs", http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

func (h *ClubHandler) GetClub(c *gin.Context) {
	club, err := h.clubService.Club(c.Request.Context(), domain.ClubID(c.Param("id")))
	if err != nil {
		if errors.Is(err, domain.ErrClubNotFound) {
			c.Error(apperrors.NewNotFoundError("club"))
			return
		}
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to load club", http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, gin.H{"club": club})
}

func (h *ClubHandler) SearchClubs(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.Error(apperrors.NewInvalidInputError("q parameter required"))
		return
	}

	clubs, err := h.clubService.Search(c.Request.Context(), term)
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "search failed", http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

func (h *ClubHandler) GetSelection(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.Error(apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	ids, err := h.clubService.SelectedClubs(c.Request.Context(), userID)
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to load selection", http.StatusInternalServerError))
		return
	}
	if ids == nil {
		ids = []domain.ClubID{}
	}
	c.JSON(http.StatusOK, gin.H{"clubs": ids})
}

type SaveSelectionRequest struct {
	Clubs []domain.ClubID `json:"clubs" binding:"required"`
}

func (h *ClubHandler) SaveSelection(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.Error(apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req SaveSelectionRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.clubService.SaveSelection(c.Request.Context(), userID, req.Clubs); err != nil {
		if errors.Is(err, domain.ErrClubNotFound) {
			c.Error(apperrors.NewInvalidInputError("selection references unknown club"))
			return
		}
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to save selection", http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"clubs": req.Clubs})
}
