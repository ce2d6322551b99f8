package http

import (
	"errors"
	"net/http"
	"strings"

	"clubhub/internal/core/services"
	"clubhub/internal/infrastructure/middleware"
	apperrors "clubhub/pkg/errors"
	"clubhub/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) SetupRoutes(router *gin.Engine, requireAuth gin.HandlerFunc) {
	api := router.Group("/api/v1/auth")
	{
		api.POST("/login", h.Login)
		api.GET("/me", requireAuth, h.Me)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=254"`
	Password string `json:"password" binding:"required,max=128"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("invalid request format"))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validation.ValidateEmail(req.Email); err != nil {
		c.Error(apperrors.NewInvalidInputError(err.Error()))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Error(apperrors.NewUnauthorizedError("invalid credentials"))
			return
		}
		c.Error(apperrors.WrapError(err, apperrors.ErrCodeBadGateway, "login failed", http.StatusBadGateway))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"access_token": token,
	})
}

// Me returns the viewer context encoded in the caller's token.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := middleware.UserIDFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"context": middleware.UserContextFrom(c),
	})
}
