// Package auth defines the authentication capability consumed by the
// session layer. Two implementations exist: the gateway backend client in
// internal/api, and an in-memory stub for demos and offline bring-up. Their
// semantics differ deliberately (hashed passwords and real tokens versus a
// literal credential check), so they stay separate behind one interface.
package auth

import (
	"context"
	"errors"
)

// Common authentication errors shared by all implementations.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrUnknownUser        = errors.New("user not found")
	ErrInvalidToken       = errors.New("session token is invalid or expired")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Store is the authentication backend contract.
type Store interface {
	// Signup registers a new user.
	Signup(ctx context.Context, username, password string) error

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (token string, err error)

	// Verify checks a bearer token and returns the username it belongs to.
	Verify(ctx context.Context, token string) (username string, err error)

	// ChangePassword updates the authenticated user's password.
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error

	// ResetPassword overwrites a user's password without authentication.
	ResetPassword(ctx context.Context, username, newPassword string) error
}
