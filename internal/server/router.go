package server

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sbenmansour/cessiondesk/internal/app/domain"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/auth"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/cessions"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/clients"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/dashboard"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/documents"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/finance"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/inventory"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/payments"
	"github.com/sbenmansour/cessiondesk/internal/app/middleware"
	"github.com/sbenmansour/cessiondesk/internal/routes"
)

// SetupRouter configures and returns the Gin router with all middleware and routes
func (s *Server) SetupRouter() (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(s.logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
	}))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))
	r.Use(otelgin.Middleware("cessiondesk"))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())
	r.Use(middleware.AuthGate(s.session))

	if err := SetupAssets(r); err != nil {
		return nil, err
	}

	base := domain.NewBaseHandler(s.logger, s.backend, s.renderer, s.translator, s.notifier)
	routes.Setup(r, &routes.AppHandlers{
		Auth:      auth.NewAuthHandlers(base),
		Dashboard: dashboard.NewDashboardHandlers(base),
		Clients:   clients.NewClientsHandlers(base),
		Cessions:  cessions.NewCessionsHandlers(base),
		Payments:  payments.NewPaymentsHandlers(base),
		Documents: documents.NewDocumentsHandlers(base),
		Inventory: inventory.NewInventoryHandlers(base),
		Finance:   finance.NewFinanceHandlers(base),
	})

	return r, nil
}

// zapContextFunc returns the Zap context function for logging
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := middleware.GetRequestID(c); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		return fields
	}
}
