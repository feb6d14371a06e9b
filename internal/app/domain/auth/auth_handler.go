package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/backend"
	"github.com/sbenmansour/cessiondesk/internal/app/domain"
	"github.com/sbenmansour/cessiondesk/internal/app/i18n"
)

type AuthHandlers struct {
	*domain.BaseHandler
}

func NewAuthHandlers(base *domain.BaseHandler) *AuthHandlers {
	return &AuthHandlers{BaseHandler: base}
}

func (h *AuthHandlers) ShowLoginPage(c *gin.Context) {
	if h.Backend.Session().IsAuthenticated() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.RenderPage(c, "CessionDesk - "+h.I18n.T("nav.signin", nil), "Sign In", "login", nil)
}

func (h *AuthHandlers) ShowSignupPage(c *gin.Context) {
	if h.Backend.Session().IsAuthenticated() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.RenderPage(c, "CessionDesk - "+h.I18n.T("nav.signup", nil), "Sign Up", "signup", nil)
}

func (h *AuthHandlers) LoginHandler(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		h.Notifier.Error(h.I18n.T("auth.invalidCredentials", nil))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	_, err := h.Backend.SignIn(c.Request.Context(), email, password)
	if err != nil {
		h.Logger.Warn("Sign in failed", zap.String("email", email), zap.Error(err))
		message := h.I18n.T("auth.invalidCredentials", nil)
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			message = apiErr.Message
		}
		h.Notifier.Error(message)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	h.Logger.Info("Successful login", zap.String("email", email))
	redirectHome(c)
}

func (h *AuthHandlers) SignupHandler(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	fullName := c.PostForm("fullName")

	if email == "" || password == "" || fullName == "" {
		h.Notifier.Error(h.I18n.T("errors.generic", nil))
		c.Redirect(http.StatusSeeOther, "/signup")
		return
	}

	_, err := h.Backend.SignUp(c.Request.Context(), email, password, fullName)
	if err != nil {
		h.Logger.Warn("Sign up failed", zap.String("email", email), zap.Error(err))
		message := h.I18n.T("errors.generic", nil)
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			message = apiErr.Message
		}
		h.Notifier.Error(message)
		c.Redirect(http.StatusSeeOther, "/signup")
		return
	}

	h.Logger.Info("Account created", zap.String("email", email))
	redirectHome(c)
}

func (h *AuthHandlers) LogoutHandler(c *gin.Context) {
	h.Backend.SignOut()
	c.Redirect(http.StatusSeeOther, "/login")
}

// SetLanguageHandler switches the display language and returns to the
// page the operator was on.
func (h *AuthHandlers) SetLanguageHandler(c *gin.Context) {
	h.I18n.SetLanguage(c.PostForm("lang"))

	back := c.GetHeader("Referer")
	if back == "" {
		back = "/"
	}
	c.Redirect(http.StatusSeeOther, back)
}

// DetectLanguage picks an initial language from the browser when none
// was persisted yet.
func DetectLanguage(header string) i18n.Language {
	return i18n.MatchAcceptLanguage(header)
}

func redirectHome(c *gin.Context) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", "/")
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
