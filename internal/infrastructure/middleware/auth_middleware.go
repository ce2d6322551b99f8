package middleware

import (
	"net/http"
	"strings"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyUserID      = "user_id"
	ContextKeyUserContext = "user_context"
)

// AuthMiddleware requires a valid bearer token and stores the caller's
// viewer context for downstream handlers.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserContext, claims.Context())
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer context when a token is
// present and falls back to an anonymous context otherwise. Invalid
// tokens are treated as anonymous rather than rejected, so public
// catalog endpoints keep working for signed-out viewers.
func OptionalAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUserContext, domain.UserContext{})

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := authService.ValidateToken(parts[1]); err == nil {
					c.Set(ContextKeyUserID, claims.UserID)
					c.Set(ContextKeyUserContext, claims.Context())
				}
			}
		}

		c.Next()
	}
}

// UserContextFrom returns the viewer context stored by the auth
// middleware, or an anonymous context when none was set.
func UserContextFrom(c *gin.Context) domain.UserContext {
	if v, ok := c.Get(ContextKeyUserContext); ok {
		if uc, ok := v.(domain.UserContext); ok {
			return uc
		}
	}
	return domain.UserContext{}
}

// UserIDFrom returns the authenticated user id, if any.
func UserIDFrom(c *gin.Context) (domain.UserID, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(domain.UserID)
	return id, ok
}
