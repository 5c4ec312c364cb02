// Package session implements the mock authentication state for the
// application.
//
// The Manager is constructed once at startup and passed to whatever needs it;
// there is no ambient global. Authentication here is a mock: credentials are
// stored in plaintext, the token carries no signature or expiry, and the
// whole layer gates navigation only. It protects nothing.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/shared"
)

// Storage keys. Same three-slot layout the persisted mock session has always
// used: token, current user, and the single registered-user record.
const (
	TokenKey          = "myflix_token"
	UserKey           = "myflix_user"
	RegisteredUserKey = "registered_user"
)

// Store defines the flat string-keyed persistence the manager mirrors state
// into. Implemented by repositories.KVRepository.
type Store interface {
	Save(key, value string) error
	Load(key string) (string, bool, error)
	Remove(key string) error
}

// Manager owns the in-memory session state for the lifetime of the process.
//
// The persisted store is a durable mirror, not a second source of truth: on
// conflict the in-memory state wins until an explicit re-hydration.
type Manager struct {
	store  Store
	logger *log.Logger

	mu    sync.RWMutex
	state models.SessionState
}

// NewManager creates a Manager and hydrates it from the store: when both a
// token and a user record are present they are trusted unconditionally.
// There is no signature or expiry check; fine for a mock, unsafe anywhere
// real.
func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := &Manager{store: store, logger: logger}
	m.hydrate()
	return m
}

func (m *Manager) hydrate() {
	token, hasToken, err := m.store.Load(TokenKey)
	if err != nil {
		m.logger.Warn("failed to load session token", "error", err)
		return
	}

	userJSON, hasUser, err := m.store.Load(UserKey)
	if err != nil {
		m.logger.Warn("failed to load session user", "error", err)
		return
	}

	if !hasToken || !hasUser || token == "" {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		m.logger.Warn("failed to decode persisted session user", "error", err)
		return
	}

	m.mu.Lock()
	m.state = models.SessionState{User: &user, Authenticated: true}
	m.mu.Unlock()
	m.logger.Debug("session hydrated", "email", user.Email)
}

// Signup overwrites the single registered-user slot with the candidate,
// plaintext password included. It does NOT authenticate.
//
// Last writer wins: there is no uniqueness check against prior signups. This
// is a kept limitation of the single-slot mock store, not an oversight.
func (m *Manager) Signup(user models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := m.store.Save(RegisteredUserKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist registration: %w", err)
	}

	m.logger.Info("user registered", "email", user.Email)
	return nil
}

// Login checks the candidate credentials against the registered-user slot.
//
// Matching is exact: case-sensitive email and password, no normalization. On
// success a mock token is minted, token and user are persisted, and the
// in-memory state flips to authenticated.
func (m *Manager) Login(email, password string) error {
	registeredJSON, ok, err := m.store.Load(RegisteredUserKey)
	if err != nil {
		return fmt.Errorf("failed to load registration: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: please sign up first", shared.ErrUserNotFound)
	}

	var registered models.User
	if err := json.Unmarshal([]byte(registeredJSON), &registered); err != nil {
		return fmt.Errorf("failed to decode registration: %w", err)
	}

	if registered.Email != email || registered.Password != password {
		return shared.ErrInvalidCredentials
	}

	token := shared.GenerateToken()
	if err := m.store.Save(TokenKey, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := m.store.Save(UserKey, registeredJSON); err != nil {
		return fmt.Errorf("failed to persist session user: %w", err)
	}

	m.mu.Lock()
	m.state = models.SessionState{User: &registered, Authenticated: true}
	m.mu.Unlock()

	m.logger.Info("login successful", "email", registered.Email)
	return nil
}

// Logout clears the persisted token and user and resets the in-memory state.
// It always succeeds; store failures are logged, not surfaced.
func (m *Manager) Logout() {
	if err := m.store.Remove(TokenKey); err != nil {
		m.logger.Warn("failed to remove session token", "error", err)
	}
	if err := m.store.Remove(UserKey); err != nil {
		m.logger.Warn("failed to remove session user", "error", err)
	}

	m.mu.Lock()
	m.state = models.SessionState{}
	m.mu.Unlock()

	m.logger.Info("logged out")
}

// Current returns the logged-in user, or ok=false when unauthenticated.
func (m *Manager) Current() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.state.Authenticated || m.state.User == nil {
		return models.User{}, false
	}
	return *m.state.User, true
}

// Authenticated reports whether a session is active.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Authenticated
}
