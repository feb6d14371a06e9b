package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
	"github.com/sbenmansour/cessiondesk/internal/app/storage"
)

// Manager holds the current bearer token and user profile and mirrors
// both into durable storage. It is owned by the application root and
// injected wherever session state is needed; there is no package-level
// session.
//
// Persistence is best effort: storage failures are logged and never
// surfaced to callers.
type Manager struct {
	mu     sync.RWMutex
	token  string
	user   *models.User
	store  storage.Store
	logger *zap.Logger
}

// NewManager creates a Manager hydrated from the durable store.
func NewManager(store storage.Store, logger *zap.Logger) *Manager {
	m := &Manager{store: store, logger: logger}

	if token, err := store.Get(storage.KeyToken); err == nil {
		m.token = token
	}

	if raw, err := store.Get(storage.KeyUser); err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			logger.Warn("Discarding corrupt stored user entry", zap.Error(err))
			if err := store.Delete(storage.KeyUser); err != nil {
				logger.Warn("Failed to remove corrupt user entry", zap.Error(err))
			}
		} else {
			m.user = &user
		}
	}

	return m
}

// Set stores the token and user in memory and in durable storage.
// The token is stored as-is; no shape validation is performed.
func (m *Manager) Set(token string, user *models.User) {
	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()

	// Absent values delete their entries so an earlier session cannot
	// come back on the next restart.
	if token != "" {
		if err := m.store.Set(storage.KeyToken, token); err != nil {
			m.logger.Warn("Failed to persist token", zap.Error(err))
		}
	} else if err := m.store.Delete(storage.KeyToken); err != nil {
		m.logger.Warn("Failed to remove stored token", zap.Error(err))
	}

	if user != nil {
		raw, err := json.Marshal(user)
		if err == nil {
			err = m.store.Set(storage.KeyUser, string(raw))
		}
		if err != nil {
			m.logger.Warn("Failed to persist user", zap.Error(err))
		}
	} else if err := m.store.Delete(storage.KeyUser); err != nil {
		m.logger.Warn("Failed to remove stored user", zap.Error(err))
	}
}

// Clear removes the token and user from memory and durable storage.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Delete(storage.KeyToken); err != nil {
		m.logger.Warn("Failed to remove stored token", zap.Error(err))
	}
	if err := m.store.Delete(storage.KeyUser); err != nil {
		m.logger.Warn("Failed to remove stored user", zap.Error(err))
	}
}

// Token returns the current bearer token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns the current user profile, or nil when signed out.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsAuthenticated reports whether a token is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// TokenExpiresAt peeks at the token's exp claim without verifying the
// signature; verification is the backend's job. Returns the zero time
// when the token is absent or not a well-formed JWT.
func (m *Manager) TokenExpiresAt() time.Time {
	token := m.Token()
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
