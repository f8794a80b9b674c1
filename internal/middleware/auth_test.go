package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldpost/core/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	jwt.SetSecret("middleware-test-secret")
	r := authRouter(Auth())

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer garbage").Code)
}

func TestAuthResolvesUser(t *testing.T) {
	jwt.SetSecret("middleware-test-secret")
	token, err := jwt.Sign("u-1", time.Minute)
	require.NoError(t, err)

	w := doGet(authRouter(Auth()), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())
}

// OptionalAuth never 401s; it resolves the user when it can and otherwise
// leaves the request anonymous.
func TestOptionalAuth(t *testing.T) {
	jwt.SetSecret("middleware-test-secret")
	r := authRouter(OptionalAuth())

	w := doGet(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = doGet(r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	token, err := jwt.Sign("u-2", time.Minute)
	require.NoError(t, err)
	w = doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-2", w.Body.String())
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken("  Bearer abc "))
	assert.Equal(t, "abc", NormalizeToken("bearer abc"))
	assert.Equal(t, "abc", NormalizeToken("abc"))
	assert.Equal(t, "", NormalizeToken("  "))
}
