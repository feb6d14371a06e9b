package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/backend"
	"github.com/sbenmansour/cessiondesk/internal/app/i18n"
	"github.com/sbenmansour/cessiondesk/internal/app/notify"
	"github.com/sbenmansour/cessiondesk/internal/app/session"
	"github.com/sbenmansour/cessiondesk/internal/app/storage"
	"github.com/sbenmansour/cessiondesk/internal/app/templates"
	"github.com/sbenmansour/cessiondesk/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	router http.Handler

	session    *session.Manager
	notifier   *notify.Notifier
	translator *i18n.Translator
	renderer   *templates.Renderer
	backend    *backend.Client
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	store := s.setupStorage()
	s.session = session.NewManager(store, logger)
	s.notifier = notify.New()

	translator, err := i18n.New(store, cfg.DefaultLanguage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	s.translator = translator

	renderer, err := templates.New(translator)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.renderer = renderer

	s.backend = backend.NewClient(cfg.Backend, s.session, s.notifier, translator, logger, func() {
		logger.Info("Login redirect requested after session expiry")
	})

	// A session restored from disk may have outlived its token. Checking
	// it in the background means the first page load after a restart does
	// not pay for the round trip; a stale token clears itself through the
	// expiry handling.
	if s.session.IsAuthenticated() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.RequestTimeout)
			defer cancel()
			if user, err := s.backend.Validate(ctx); err != nil {
				logger.Warn("Restored session failed validation", zap.Error(err))
			} else if user != nil {
				logger.Info("Restored session validated", zap.String("email", user.Email))
			}
		}()
	}

	logger.Info("Server dependencies ready",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("language", translator.Active().Code))
	return s, nil
}

// setupStorage opens the durable key-value store, falling back to an
// in-memory one when the data directory is not writable.
func (s *Server) setupStorage() storage.Store {
	store, err := storage.NewFileStore(s.cfg.DataDir)
	if err != nil {
		s.logger.Warn("Falling back to in-memory state store",
			zap.String("dir", s.cfg.DataDir),
			zap.Error(err))
		return storage.NewMemoryStore()
	}
	s.logger.Info("Opened state store", zap.String("dir", s.cfg.DataDir))
	return store
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// GetLogger returns the logger instance
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetConfig returns the configuration
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}

// Session returns the session manager.
func (s *Server) Session() *session.Manager { return s.session }

// Notifier returns the notifier.
func (s *Server) Notifier() *notify.Notifier { return s.notifier }

// Translator returns the translator.
func (s *Server) Translator() *i18n.Translator { return s.translator }

// Renderer returns the page renderer.
func (s *Server) Renderer() *templates.Renderer { return s.renderer }

// Backend returns the backend access client.
func (s *Server) Backend() *backend.Client { return s.backend }
