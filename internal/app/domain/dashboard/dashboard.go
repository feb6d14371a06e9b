package dashboard

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/backend"
	"github.com/sbenmansour/cessiondesk/internal/app/domain"
	"github.com/sbenmansour/cessiondesk/internal/app/middleware"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

type DashboardHandlers struct {
	*domain.BaseHandler
}

func NewDashboardHandlers(base *domain.BaseHandler) *DashboardHandlers {
	return &DashboardHandlers{BaseHandler: base}
}

type dashboardData struct {
	ClientCount     int
	CessionCount    int
	Summary         *models.MonthlySummary
	RecentMovements []models.StockMovement
}

// ShowDashboard assembles the landing page. Secondary widgets degrade
// to empty sections when their calls fail; only an expired session
// aborts the page.
func (h *DashboardHandlers) ShowDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	data := dashboardData{}

	clients, err := h.Backend.ListClients(ctx)
	switch {
	case err == nil:
		data.ClientCount = len(clients)
	case errors.Is(err, backend.ErrAuthentication) || errors.Is(err, backend.ErrNoToken):
		middleware.HandleAuthRedirect(c, "/login")
		return
	default:
		h.Logger.Warn("Dashboard client count unavailable", zap.Error(err))
	}

	if cessions, err := h.Backend.ListCessions(ctx); err == nil {
		data.CessionCount = len(cessions)
	} else {
		h.Logger.Warn("Dashboard cession count unavailable", zap.Error(err))
	}

	now := time.Now()
	if summary, err := h.Backend.GetMonthlySummary(ctx, now.Year(), int(now.Month())); err == nil {
		data.Summary = summary
	} else {
		h.Logger.Warn("Dashboard summary unavailable", zap.Error(err))
	}

	if movements, err := h.Backend.GetRecentStockMovements(ctx, "OUTBOUND", 5); err == nil {
		data.RecentMovements = movements
	} else {
		h.Logger.Warn("Dashboard movements unavailable", zap.Error(err))
	}

	h.RenderPage(c, "CessionDesk", "Dashboard", "dashboard", data)
}
