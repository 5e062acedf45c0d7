package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// Memory is the in-memory stub backend. Credentials are compared literally
// and tokens never expire; it exists for demos and offline bring-up, not
// production use.
type Memory struct {
	mu        sync.Mutex
	passwords map[string]string // username -> password, stored as given
	tokens    map[string]string // token -> username
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		passwords: make(map[string]string),
		tokens:    make(map[string]string),
	}
}

// Seed registers a user without going through Signup. Useful in tests and
// for the demo account.
func (m *Memory) Seed(username, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passwords[username] = password
}

// Signup registers a new user.
func (m *Memory) Signup(_ context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.passwords[username]; exists {
		return ErrDuplicateUser
	}
	m.passwords[username] = password
	return nil
}

// Login compares credentials literally and issues a random token.
func (m *Memory) Login(_ context.Context, username, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.passwords[username]
	if !exists || stored != password {
		return "", ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}
	m.tokens[token] = username
	return token, nil
}

// Verify resolves a token back to its username.
func (m *Memory) Verify(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	username, exists := m.tokens[token]
	if !exists {
		return "", ErrInvalidToken
	}
	return username, nil
}

// ChangePassword updates the token owner's password after checking the
// current one.
func (m *Memory) ChangePassword(_ context.Context, token, currentPassword, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	username, exists := m.tokens[token]
	if !exists {
		return ErrInvalidToken
	}
	if m.passwords[username] != currentPassword {
		return ErrWrongPassword
	}
	m.passwords[username] = newPassword
	return nil
}

// ResetPassword overwrites a known user's password.
func (m *Memory) ResetPassword(_ context.Context, username, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.passwords[username]; !exists {
		return ErrUnknownUser
	}
	m.passwords[username] = newPassword
	return nil
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
