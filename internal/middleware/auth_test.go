package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/CsnCaio/SROA-challenge/internal/authz"
	"github.com/CsnCaio/SROA-challenge/internal/services"
)

func newGuardedRouter(tokens services.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(tokens))
	r.GET("/api/users", RequireRoles(authz.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := newGuardedRouter(tokens)

	t.Run("missing header", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	})

	t.Run("not a bearer", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, doGet(r, "Basic abc").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := tokens.Issue(services.Identity{UserID: "u-1", Role: authz.RoleAdmin}, -time.Minute)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
	})

	t.Run("valid admin token passes", func(t *testing.T) {
		token, err := tokens.Issue(services.Identity{UserID: "u-1", Role: authz.RoleAdmin}, time.Minute)
		require.NoError(t, err)

		w := doGet(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "u-1")
	})

	t.Run("non-admin role is rejected by the guard", func(t *testing.T) {
		token, err := tokens.Issue(services.Identity{UserID: "u-2", Role: authz.RoleNormalUser}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+token).Code)
	})
}
