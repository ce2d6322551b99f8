package http

import (
	"context"
	"net/http"
	"strings"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"
	"clubhub/internal/infrastructure/middleware"
	apperrors "clubhub/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentService ports.ContentService
	accessService  ports.AccessService
	clubService    ports.ClubService
}

func NewContentHandler(
	contentService ports.ContentService,
	accessService ports.AccessService,
	clubService ports.ClubService,
) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		accessService:  accessService,
		clubService:    clubService,
	}
}

func (h *ContentHandler) SetupRoutes(router *gin.Engine, optionalAuth, requireAuth gin.HandlerFunc) {
	api := router.Group("/api/v1")
	{
		api.GET("/content/videos", optionalAuth, h.Videos)
		api.GET("/content/shorts", optionalAuth, h.Shorts)
		api.GET("/content/live", optionalAuth, h.LiveEvents)
		api.POST("/content/refresh", requireAuth, h.Refresh)

		api.POST("/access/evaluate", optionalAuth, h.EvaluateAccess)

		api.DELETE("/cache", requireAuth, h.ClearCache)
		api.GET("/cache/stats", h.CacheStats)
	}
}

// videoItem pairs one video with the caller's access verdict for it.
type videoItem struct {
	domain.Video
	AccessDecision domain.AccessDecision `json:"access_decision"`
}

type liveEventItem struct {
	domain.LiveEvent
	AccessDecision domain.AccessDecision `json:"access_decision"`
}

// clubIDs resolves the club scope of a content request: the explicit
// clubs query parameter wins, otherwise the viewer's saved selection.
func (h *ContentHandler) clubIDs(c *gin.Context) ([]domain.ClubID, error) {
	if raw := c.Query("clubs"); raw != "" {
		var ids []domain.ClubID
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, domain.ClubID(part))
			}
		}
		return ids, nil
	}

	if userID, ok := middleware.UserIDFrom(c); ok {
		return h.clubService.SelectedClubs(c.Request.Context(), userID)
	}
	return nil, nil
}

func (h *ContentHandler) Videos(c *gin.Context) {
	h.serveVideos(c, h.contentService.Videos)
}

func (h *ContentHandler) Shorts(c *gin.Context) {
	h.serveVideos(c, h.contentService.Shorts)
}

func (h *ContentHandler) serveVideos(c *gin.Context, fetch func(ctx context.Context, clubIDs []domain.ClubID) ([]domain.Video, error)) {
	clubIDs, err := h.clubIDs(c)
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to resolve club selection", http.StatusInternalServerError))
		return
	}
	if len(clubIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"items": []videoItem{}})
		return
	}

	videos, err := fetch(c.Request.Context(), clubIDs)
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeBadGateway, "content fetch failed", http.StatusBadGateway))
		return
	}

	viewer := middleware.UserContextFrom(c)
	items := make([]videoItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, videoItem{
			Video:          v,
			AccessDecision: h.accessService.EvaluateAccess(v.Access, viewer),
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ContentHandler) LiveEvents(c *gin.Context) {
	clubIDs, err := h.clubIDs(c)
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to resolve club selection", http.StatusInternalServerError))
		return
	}
	if len(clubIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"items": []liveEventItem{}})
		return
	}

	events, err := h.contentService.LiveEvents(c.Request.Context(), clubIDs)
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeBadGateway, "content fetch failed", http.StatusBadGateway))
		return
	}

	viewer := middleware.UserContextFrom(c)
	items := make([]liveEventItem, 0, len(events))
	for _, e := range events {
		items = append(items, liveEventItem{
			LiveEvent:      e,
			AccessDecision: h.accessService.EvaluateAccess(e.Access, viewer),
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ContentHandler) Refresh(c *gin.Context) {
	clubIDs, err := h.clubIDs(c)
	if err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to resolve club selection", http.StatusInternalServerError))
		return
	}
	if len(clubIDs) == 0 {
		c.Error(apperrors.NewInvalidInputError("no clubs to refresh"))
		return
	}

	if err := h.contentService.Refresh(c.Request.Context(), clubIDs); err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeBadGateway, "refresh failed", http.StatusBadGateway))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "refreshed", "clubs": clubIDs})
}

type EvaluateAccessRequest struct {
	Content domain.ContentDescriptor `json:"content" binding:"required"`
}

func (h *ContentHandler) EvaluateAccess(c *gin.Context) {
	var req EvaluateAccessRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request format"))
		return
	}

	decision := h.accessService.EvaluateAccess(req.Content, middleware.UserContextFrom(c))
	c.JSON(http.StatusOK, gin.H{"decision": decision})
}

func (h *ContentHandler) ClearCache(c *gin.Context) {
	if err := h.contentService.ClearCache(c.Request.Context()); err != nil {
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeInternal, "cache clear failed", http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func (h *ContentHandler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.contentService.CacheStats())
}
