package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// shutdownGrace is how long in-flight page loads get to finish once a
// termination signal arrives.
const shutdownGrace = 5 * time.Second

// GracefulShutdown blocks until SIGINT or SIGTERM, drains the HTTP
// server, then signals done. A second signal during the drain forces
// an immediate exit through the default handler.
func GracefulShutdown(srv *http.Server, logger *zap.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("Termination signal received, draining requests",
		zap.Duration("grace", shutdownGrace))
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Drain did not finish cleanly", zap.Error(err))
	}

	logger.Info("HTTP server stopped")
	done <- true
}
