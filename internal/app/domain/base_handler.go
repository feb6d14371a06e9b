package domain

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/backend"
	"github.com/sbenmansour/cessiondesk/internal/app/i18n"
	"github.com/sbenmansour/cessiondesk/internal/app/middleware"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
	"github.com/sbenmansour/cessiondesk/internal/app/notify"
	"github.com/sbenmansour/cessiondesk/internal/app/observability/metrics"
	"github.com/sbenmansour/cessiondesk/internal/app/templates"
)

// BaseHandler carries the dependencies every page handler needs.
type BaseHandler struct {
	Logger   *zap.Logger
	Backend  *backend.Client
	Renderer *templates.Renderer
	I18n     *i18n.Translator
	Notifier *notify.Notifier
}

func NewBaseHandler(
	logger *zap.Logger,
	client *backend.Client,
	renderer *templates.Renderer,
	translator *i18n.Translator,
	notifier *notify.Notifier,
) *BaseHandler {
	return &BaseHandler{
		Logger:   logger,
		Backend:  client,
		Renderer: renderer,
		I18n:     translator,
		Notifier: notifier,
	}
}

// RenderPage renders a full page inside the shared layout.
func (h *BaseHandler) RenderPage(c *gin.Context, title, activeNav, page string, data any) {
	start := time.Now()

	lang := h.I18n.Active()
	dir := "ltr"
	if lang.IsRTL {
		dir = "rtl"
	}

	user := middleware.GetUserFromContext(c)
	nav := models.MainNav
	if user == nil {
		nav = models.PublicNav
	}

	var notification *notify.Notification
	if current, visible := h.Notifier.Current(); visible {
		notification = &current
	}

	pageData := templates.PageData{
		Layout: models.Layout{
			Title:     title,
			User:      user,
			Nav:       nav,
			ActiveNav: activeNav,
			Lang:      lang.Code,
			Dir:       dir,
		},
		Notification: notification,
		Data:         data,
	}

	// The writer's status is left alone so callers can render error
	// pages under their own status code.
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.Render(c.Writer, page, pageData); err != nil {
		h.Logger.Error("Failed to render page",
			zap.String("page", page),
			zap.Error(err))
	}

	metrics.Get().TemplateRenderDuration.Record(context.Background(), time.Since(start).Seconds())
}

// HandleError converts an access-layer error into the right page
// behavior: expired sessions go back to login, everything else becomes
// a toast and sends the operator where they came from.
func (h *BaseHandler) HandleError(c *gin.Context, err error, fallbackURL string) {
	if errors.Is(err, backend.ErrAuthentication) || errors.Is(err, backend.ErrNoToken) {
		middleware.HandleAuthRedirect(c, "/login")
		return
	}

	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		h.Notifier.Error(apiErr.Error())
	case errors.Is(err, backend.ErrInvalidID):
		h.Notifier.Error(h.I18n.T("errors.generic", nil))
	default:
		h.Logger.Error("Backend call failed", zap.Error(err))
		h.Notifier.Error(h.I18n.T("errors.network", nil))
	}

	c.Redirect(http.StatusSeeOther, fallbackURL)
	c.Abort()
}
