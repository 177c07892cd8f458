package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit_ops/internal/config"
	"transit_ops/internal/middleware"
	"transit_ops/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.AuthUserID(c)})
	})
	return r
}

func get(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func expiredToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": float64(7),
		"role":    models.RoleAdmin,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret())
	require.NoError(t, err)
	return token
}

func TestRequireAuth_MissingOrMalformedHeader(t *testing.T) {
	r := protectedRouter(middleware.RequireAuth())

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"no bearer prefix", "token123"},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, get(r, tt.header).Code)
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	r := protectedRouter(middleware.RequireAuth())
	rec := get(r, "Bearer "+expiredToken(t))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidTokenExposesClaims(t *testing.T) {
	token, err := middleware.GenerateToken(7, models.RoleDriver)
	require.NoError(t, err)

	r := protectedRouter(middleware.RequireAuth())
	rec := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":7`)
}

// Role checks are exact string matches: Admin does not satisfy a
// Driver-only gate and vice versa.
func TestRequireAuthWithRole_ExactMatchOnly(t *testing.T) {
	adminToken, err := middleware.GenerateToken(1, models.RoleAdmin)
	require.NoError(t, err)
	driverToken, err := middleware.GenerateToken(2, models.RoleDriver)
	require.NoError(t, err)

	r := protectedRouter(middleware.RequireAuthWithRole(models.RoleDriver))

	assert.Equal(t, http.StatusOK, get(r, "Bearer "+driverToken).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	// A caller-supplied id is preserved.
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "req_given")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req_given", rec.Header().Get("X-Request-Id"))
}
