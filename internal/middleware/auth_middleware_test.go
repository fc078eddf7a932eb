package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/studentdesk/internal/app/models"
	"github.com/okandemir/studentdesk/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(expiration time.Duration) (*gin.Engine, *auth.SessionService) {
	sessions := auth.NewSessionService(auth.SessionConfig{
		SecretKey:   "test-secret",
		Expiration:  expiration,
		TokenIssuer: "studentdesk-test",
	})

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(sessions).SessionAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString(ContextUserID),
			"email":  c.GetString(ContextEmail),
		})
	})
	return router, sessions
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	router, _ := newAuthRouter(time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header missing")
}

func TestSessionAuth_MalformedHeader(t *testing.T) {
	router, _ := newAuthRouter(time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token format")
}

func TestSessionAuth_ValidTokenPopulatesContext(t *testing.T) {
	router, sessions := newAuthRouter(time.Hour)

	token, _, err := sessions.Issue(&models.IdentityClaim{ID: "7", Email: "admin@example.com", Name: "Administrator"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"7"`)
	assert.Contains(t, w.Body.String(), `"email":"admin@example.com"`)
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	router, sessions := newAuthRouter(-time.Minute)

	token, _, err := sessions.Issue(&models.IdentityClaim{ID: "7", Email: "admin@example.com", Name: "Administrator"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session has expired")
}

func TestSessionAuth_GarbageToken(t *testing.T) {
	router, _ := newAuthRouter(time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}
