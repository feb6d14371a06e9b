package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
	"github.com/sbenmansour/cessiondesk/internal/app/session"
	"github.com/sbenmansour/cessiondesk/internal/app/storage"
)

func newRouter(sess *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), AuthGate(sess))
	r.GET("/login", func(c *gin.Context) { c.String(http.StatusOK, "login") })
	r.GET("/clients", func(c *gin.Context) {
		if IsPublicRoute(c) {
			c.String(http.StatusInternalServerError, "misclassified")
			return
		}
		user := GetUserFromContext(c)
		if user == nil {
			HandleAuthRedirect(c, "/login")
			return
		}
		c.String(http.StatusOK, user.FullName)
	})
	return r
}

func newSession(t *testing.T) *session.Manager {
	t.Helper()
	return session.NewManager(storage.NewMemoryStore(), zap.NewNop())
}

func TestPublicRoutePassesWithoutSession(t *testing.T) {
	r := newRouter(newSession(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateClassifiesButNeverRedirects(t *testing.T) {
	r := newRouter(newSession(t))

	// The gate lets the request through; the handler decides.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthRedirectHTMXGetsHXRedirect(t *testing.T) {
	r := newRouter(newSession(t))

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
}

func TestProtectedRoutePassesWithSession(t *testing.T) {
	sess := newSession(t)
	sess.Set("tok", &models.User{ID: "u-1", FullName: "Op"})
	r := newRouter(sess)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Op", w.Body.String())
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := newRouter(newSession(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
}

func TestIsPublicRoute(t *testing.T) {
	require.True(t, isPublicRoute("/login"))
	require.True(t, isPublicRoute("/signup"))
	require.True(t, isPublicRoute("/assets/fonts/Amiri-Regular.ttf"))
	require.True(t, isPublicRoute("/healthz"))
	require.False(t, isPublicRoute("/"))
	require.False(t, isPublicRoute("/clients"))
	require.False(t, isPublicRoute("/assets"))
}
