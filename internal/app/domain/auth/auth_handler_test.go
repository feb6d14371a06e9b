package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/backend"
	"github.com/sbenmansour/cessiondesk/internal/app/domain"
	"github.com/sbenmansour/cessiondesk/internal/app/i18n"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
	"github.com/sbenmansour/cessiondesk/internal/app/notify"
	"github.com/sbenmansour/cessiondesk/internal/app/observability/metrics"
	"github.com/sbenmansour/cessiondesk/internal/app/session"
	"github.com/sbenmansour/cessiondesk/internal/app/storage"
	"github.com/sbenmansour/cessiondesk/internal/app/templates"
	"github.com/sbenmansour/cessiondesk/internal/pkg/config"
)

type env struct {
	router     *gin.Engine
	session    *session.Manager
	notifier   *notify.Notifier
	translator *i18n.Translator
}

func newEnv(t *testing.T, backendFn http.HandlerFunc) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics.InitAppMetrics()

	srv := httptest.NewServer(backendFn)
	t.Cleanup(srv.Close)

	store := storage.NewMemoryStore()
	logger := zap.NewNop()
	sess := session.NewManager(store, logger)
	notifier := notify.New()

	translator, err := i18n.New(store, "en", logger)
	require.NoError(t, err)
	renderer, err := templates.New(translator)
	require.NoError(t, err)

	client := backend.NewClient(config.BackendConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
		ListCacheTTL:   time.Minute,
	}, sess, notifier, translator, logger, nil)

	h := NewAuthHandlers(domain.NewBaseHandler(logger, client, renderer, translator, notifier))

	r := gin.New()
	r.GET("/login", h.ShowLoginPage)
	r.POST("/login", h.LoginHandler)
	r.GET("/signup", h.ShowSignupPage)
	r.POST("/signup", h.SignupHandler)
	r.POST("/logout", h.LogoutHandler)
	r.POST("/language", h.SetLanguageHandler)

	return &env{router: r, session: sess, notifier: notifier, translator: translator}
}

func postForm(router *gin.Engine, path string, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/signin", r.URL.Path)
		json.NewEncoder(w).Encode(models.AuthResponse{
			Token:    "tok-1",
			ID:       "u-1",
			Email:    "op@example.com",
			FullName: "Operator",
		})
	})

	w := postForm(e.router, "/login", url.Values{
		"email":    {"op@example.com"},
		"password": {"secret"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.True(t, e.session.IsAuthenticated())
	require.NotNil(t, e.session.User())
	assert.Equal(t, "Operator", e.session.User().FullName)
}

func TestLoginHTMXRedirect(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.AuthResponse{Token: "tok-1", FullName: "Operator"})
	})

	w := postForm(e.router, "/login", url.Values{
		"email":    {"op@example.com"},
		"password": {"secret"},
	}, map[string]string{"HX-Request": "true"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/", w.Header().Get("HX-Redirect"))
}

func TestLoginRejectedShowsBackendMessage(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	})

	w := postForm(e.router, "/login", url.Values{
		"email":    {"op@example.com"},
		"password": {"wrong"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, e.session.IsAuthenticated())

	current, visible := e.notifier.Current()
	require.True(t, visible)
	assert.Equal(t, "Invalid email or password", current.Message)
	assert.Equal(t, notify.KindError, current.Kind)
}

func TestLoginMissingFieldsSkipsBackend(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called")
	})

	w := postForm(e.router, "/login", url.Values{"email": {"op@example.com"}}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	_, visible := e.notifier.Current()
	assert.True(t, visible)
}

func TestShowLoginRedirectsAuthenticated(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	e.session.Set("tok-1", &models.User{ID: "u-1", FullName: "Operator"})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestSignupSuccess(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/signup", r.URL.Path)
		json.NewEncoder(w).Encode(models.AuthResponse{Token: "tok-2", FullName: "New Operator"})
	})

	w := postForm(e.router, "/signup", url.Values{
		"email":    {"new@example.com"},
		"password": {"secret"},
		"fullName": {"New Operator"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.True(t, e.session.IsAuthenticated())
}

func TestLogoutClearsSession(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	e.session.Set("tok-1", &models.User{ID: "u-1"})

	w := postForm(e.router, "/logout", url.Values{}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, e.session.IsAuthenticated())
}

func TestSetLanguageReturnsToReferer(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	w := postForm(e.router, "/language", url.Values{"lang": {"fr"}},
		map[string]string{"Referer": "/clients"})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/clients", w.Header().Get("Location"))
	assert.Equal(t, "fr", e.translator.Active().Code)
}
