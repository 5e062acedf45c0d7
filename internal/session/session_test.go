package session

import (
	"context"
	"errors"
	"testing"

	"github.com/zedbee/gateway-wizard/internal/auth"
	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/store"
)

func newManager(t *testing.T) (*Manager, *store.Store, *auth.Memory) {
	t.Helper()
	s, err := store.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	backend := auth.NewMemory()
	return NewManager(s, backend), s, backend
}

func TestLoginStoresTokenAndUser(t *testing.T) {
	m, s, backend := newManager(t)
	backend.Seed("alice", "secret")

	if err := m.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if s.Token() == "" {
		t.Error("Token() empty after login")
	}
	if u := s.User(); u == nil || u.Username != "alice" {
		t.Errorf("User() = %+v, want alice", u)
	}
	if !m.Authenticated() {
		t.Error("Authenticated() = false after login")
	}
}

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"blank username", "  ", "secret", ErrMissingCredentials},
		{"blank password", "alice", "", ErrMissingCredentials},
		{"bad credentials", "alice", "wrong", auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, backend := newManager(t)
			backend.Seed("alice", "secret")

			err := m.Login(context.Background(), tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		wantErr  error
	}{
		{"valid", "longenough", "longenough", nil},
		{"too short", "five5", "five5", ErrPasswordTooShort},
		{"mismatch", "longenough", "different", ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newManager(t)
			err := m.Signup(context.Background(), "bob", tt.password, tt.confirm)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Signup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSignupDuplicateSurfaces(t *testing.T) {
	m, _, backend := newManager(t)
	backend.Seed("alice", "existing-pass")

	err := m.Signup(context.Background(), "alice", "longenough", "longenough")
	if !errors.Is(err, auth.ErrDuplicateUser) {
		t.Errorf("Signup() error = %v, want ErrDuplicateUser", err)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	m, s, backend := newManager(t)
	backend.Seed("alice", "secret")

	if err := m.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := s.UpdateDevice(document.Device{Type: document.DeviceTypeEnergy, Manufacturer: "L&T"}); err != nil {
		t.Fatalf("UpdateDevice() error = %v", err)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if m.VerifySession(context.Background()) {
		t.Error("VerifySession() = true after logout")
	}
	if s.Token() != "" {
		t.Error("Token() non-empty after logout")
	}
	if got := s.Config().Device; got.Type != "" {
		t.Errorf("Device = %+v after logout, want defaults", got)
	}
}

func TestVerifySessionRestoresUser(t *testing.T) {
	m, s, backend := newManager(t)
	backend.Seed("alice", "secret")

	token, err := backend.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("backend Login() error = %v", err)
	}
	// Token on disk but no user in the state file
	if err := s.SetToken(token); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	if !m.VerifySession(context.Background()) {
		t.Fatal("VerifySession() = false with a valid token")
	}
	if u := s.User(); u == nil || u.Username != "alice" {
		t.Errorf("User() = %+v after verify, want alice restored", u)
	}
}

func TestVerifySessionWithoutToken(t *testing.T) {
	m, _, _ := newManager(t)
	if m.VerifySession(context.Background()) {
		t.Error("VerifySession() = true with no token")
	}
}

func TestUpdatePassword(t *testing.T) {
	m, _, backend := newManager(t)
	backend.Seed("alice", "secret")

	if err := m.UpdatePassword(context.Background(), "secret", "nextpass"); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("UpdatePassword() before login error = %v, want ErrNotLoggedIn", err)
	}

	if err := m.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := m.UpdatePassword(context.Background(), "secret", "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("UpdatePassword(short) error = %v, want ErrPasswordTooShort", err)
	}
	if err := m.UpdatePassword(context.Background(), "secret", "nextpass"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	if _, err := backend.Login(context.Background(), "alice", "nextpass"); err != nil {
		t.Errorf("backend Login() with new password error = %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	m, _, backend := newManager(t)
	backend.Seed("alice", "secret")

	if err := m.ResetPassword(context.Background(), "nobody", "nextpass"); !errors.Is(err, auth.ErrUnknownUser) {
		t.Errorf("ResetPassword(unknown) error = %v, want ErrUnknownUser", err)
	}
	if err := m.ResetPassword(context.Background(), "alice", "nextpass"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}
	if _, err := backend.Login(context.Background(), "alice", "nextpass"); err != nil {
		t.Errorf("backend Login() after reset error = %v", err)
	}
}
