// Package session composes the authentication backend and the configuration
// store into the login/signup/logout flows used by the UI.
package session

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/zedbee/gateway-wizard/internal/auth"
	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/logging"
	"github.com/zedbee/gateway-wizard/internal/store"
)

// MinPasswordLength is enforced client-side on signup and password changes.
const MinPasswordLength = 6

// Client-side form validation errors.
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// Manager owns the session lifecycle. It validates form input before any
// network call, records the token and user in the store on login, and
// resets the store on logout.
type Manager struct {
	store *store.Store
	auth  auth.Store
}

// NewManager creates a session manager over the given store and backend.
func NewManager(s *store.Store, backend auth.Store) *Manager {
	return &Manager{store: s, auth: backend}
}

// Login authenticates, stores the token and user, and then pulls the
// server-side configuration. A config fetch failure does not fail the
// login; the local document remains authoritative.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	token, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := m.store.SetToken(token); err != nil {
		return err
	}
	if err := m.store.SetUser(&document.User{Username: username}); err != nil {
		return err
	}

	if err := m.store.FetchRemote(ctx); err != nil {
		logging.Warn("Failed to fetch remote configuration after login", zap.Error(err))
	}
	logging.Info("Logged in", zap.String("username", username))
	return nil
}

// Signup validates the form client-side, then registers the user. It does
// not log the user in; the UI routes back to the login page on success.
func (m *Manager) Signup(ctx context.Context, username, password, confirm string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return m.auth.Signup(ctx, username, password)
}

// Logout resets the document to defaults and removes the stored token.
func (m *Manager) Logout() error {
	username := ""
	if u := m.store.User(); u != nil {
		username = u.Username
	}
	if err := m.store.Reset(); err != nil {
		return err
	}
	logging.Info("Logged out", zap.String("username", username))
	return nil
}

// VerifySession reports whether a valid session exists. A stored token that
// the backend rejects counts as no session.
func (m *Manager) VerifySession(ctx context.Context) bool {
	token := m.store.Token()
	if token == "" {
		return false
	}

	username, err := m.auth.Verify(ctx, token)
	if err != nil {
		return false
	}
	// Re-establish the user if the state file lost it
	if m.store.User() == nil {
		if err := m.store.SetUser(&document.User{Username: username}); err != nil {
			logging.Warn("Failed to restore user from session", zap.Error(err))
		}
	}
	return true
}

// UpdatePassword changes the authenticated user's password.
func (m *Manager) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	token := m.store.Token()
	if token == "" {
		return ErrNotLoggedIn
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return m.auth.ChangePassword(ctx, token, currentPassword, newPassword)
}

// ResetPassword overwrites a user's password from the reset page.
func (m *Manager) ResetPassword(ctx context.Context, username, newPassword string) error {
	username = strings.TrimSpace(username)
	if username == "" || newPassword == "" {
		return ErrMissingCredentials
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return m.auth.ResetPassword(ctx, username, newPassword)
}

// Username returns the logged-in username, or "".
func (m *Manager) Username() string {
	if u := m.store.User(); u != nil {
		return u.Username
	}
	return ""
}

// Authenticated reports whether a user is recorded locally. Unlike
// VerifySession this never touches the network.
func (m *Manager) Authenticated() bool {
	return m.store.User() != nil
}
