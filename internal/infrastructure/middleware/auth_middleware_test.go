package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAuthService(t *testing.T) services.AuthService {
	t.Helper()
	return services.NewAuthService(nil, nil, "test-secret", time.Hour, zaptest.NewLogger(t).Sugar())
}

func issueToken(t *testing.T, svc services.AuthService) string {
	t.Helper()
	token, err := svc.GenerateToken(&domain.User{
		ID:              "u1",
		Email:           "fan@example.com",
		ClubPermissions: []domain.ClubID{"fc-jong"},
	})
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newAuthService(t)
	token := issueToken(t, svc)

	router := gin.New()
	router.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		userID, ok := UserIDFrom(c)
		require.True(t, ok)
		uc := UserContextFrom(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":       userID,
			"authenticated": uc.IsAuthenticated,
		})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestAuthMiddleware_RejectsBadRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newAuthService(t)

	router := gin.New()
	router.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: "raw-token"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newAuthService(t)
	token := issueToken(t, svc)

	router := gin.New()
	router.GET("/content", OptionalAuthMiddleware(svc), func(c *gin.Context) {
		uc := UserContextFrom(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": uc.IsAuthenticated})
	})

	// Anonymous request passes with an anonymous context.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/content", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	// Invalid token degrades to anonymous instead of failing.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/content", nil)
	req.Header.Set("Authorization", "Bearer junk")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	// Valid token resolves the viewer.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/content", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}
