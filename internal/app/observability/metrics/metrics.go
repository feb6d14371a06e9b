package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	HTTPRequestsTotal      metric.Int64Counter
	HTTPRequestDuration    metric.Float64Histogram
	BackendRequestsTotal   metric.Int64Counter
	BackendRequestDuration metric.Float64Histogram
	BackendErrorsTotal     metric.Int64Counter
	SessionExpiriesTotal   metric.Int64Counter
	DocumentRendersTotal   metric.Int64Counter
	TemplateRenderDuration metric.Float64Histogram
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("cessiondesk")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.BackendRequestsTotal, err = meter.Int64Counter(
			"backend_requests_total",
			metric.WithDescription("Total number of requests sent to the lending backend"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create backend_requests_total: %v", err)
		}

		m.BackendRequestDuration, err = meter.Float64Histogram(
			"backend_request_duration_seconds",
			metric.WithDescription("Duration of lending backend requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create backend_request_duration_seconds: %v", err)
		}

		m.BackendErrorsTotal, err = meter.Int64Counter(
			"backend_errors_total",
			metric.WithDescription("Total number of failed lending backend requests"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create backend_errors_total: %v", err)
		}

		m.SessionExpiriesTotal, err = meter.Int64Counter(
			"session_expiries_total",
			metric.WithDescription("Total number of session expiries handled"),
			metric.WithUnit("{expiry}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create session_expiries_total: %v", err)
		}

		m.DocumentRendersTotal, err = meter.Int64Counter(
			"document_renders_total",
			metric.WithDescription("Total number of contract documents rendered"),
			metric.WithUnit("{document}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create document_renders_total: %v", err)
		}

		m.TemplateRenderDuration, err = meter.Float64Histogram(
			"template_render_duration_seconds",
			metric.WithDescription("Duration of template rendering in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create template_render_duration_seconds: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		// This indicates a programming error - InitAppMetrics must be called at startup.
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
