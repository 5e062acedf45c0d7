// Package api is the HTTP client for the gateway backend: authentication,
// per-user config persistence, and the telemetry endpoint. It satisfies the
// auth.Store, store.Remote and telemetry.Fetcher contracts.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zedbee/gateway-wizard/internal/auth"
	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/telemetry"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// Client talks to one gateway backend instance.
type Client struct {
	// BaseURL is the backend root, e.g. "http://192.168.1.50:8090".
	BaseURL string

	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client
}

// NewClient creates a client for the given backend root URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type resetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Signup registers a new user. A duplicate username surfaces as
// auth.ErrDuplicateUser.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	resp, err := c.postJSON(ctx, "/signup", "", credentialsRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusBadRequest:
		return auth.ErrDuplicateUser
	default:
		return newHTTPError(resp.StatusCode, readErrorMessage(resp))
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := c.postJSON(ctx, "/login", "", credentialsRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var body loginResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", newParseError("failed to parse login response", err)
		}
		if body.Token == "" {
			return "", newParseError("login response missing token", nil)
		}
		return body.Token, nil
	case http.StatusUnauthorized:
		return "", auth.ErrInvalidCredentials
	default:
		return "", newHTTPError(resp.StatusCode, readErrorMessage(resp))
	}
}

// Verify checks a bearer token against GET /me.
func (c *Client) Verify(ctx context.Context, token string) (string, error) {
	resp, err := c.get(ctx, "/me", token)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var body loginResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", newParseError("failed to parse /me response", err)
		}
		return body.Username, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", auth.ErrInvalidToken
	default:
		return "", newHTTPError(resp.StatusCode, readErrorMessage(resp))
	}
}

// ChangePassword updates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	resp, err := c.postJSON(ctx, "/change-password", token, changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return auth.ErrWrongPassword
	case http.StatusNotFound:
		return auth.ErrUnknownUser
	case http.StatusUnauthorized, http.StatusForbidden:
		return auth.ErrInvalidToken
	default:
		return newHTTPError(resp.StatusCode, readErrorMessage(resp))
	}
}

// ResetPassword overwrites a user's password without authentication.
func (c *Client) ResetPassword(ctx context.Context, username, newPassword string) error {
	resp, err := c.postJSON(ctx, "/reset-password", "", resetPasswordRequest{
		Username:    username,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return auth.ErrUnknownUser
	default:
		return newHTTPError(resp.StatusCode, readErrorMessage(resp))
	}
}

type configEnvelope struct {
	Data *document.Config `json:"data"`
}

// FetchConfig returns the server-side copy of the user's document, or nil
// when the server has none yet.
func (c *Client) FetchConfig(ctx context.Context, token string) (*document.Config, error) {
	resp, err := c.get(ctx, "/config", token)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var body configEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, newParseError("failed to parse config response", err)
		}
		return body.Data, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, newAuthError("session expired")
	default:
		return nil, newHTTPError(resp.StatusCode, readErrorMessage(resp))
	}
}

// SaveConfig replaces the server-side copy of the user's document.
func (c *Client) SaveConfig(ctx context.Context, token string, cfg document.Config) error {
	resp, err := c.do(ctx, http.MethodPut, "/config", token, configEnvelope{Data: &cfg})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return newAuthError("session expired")
	default:
		return newHTTPError(resp.StatusCode, readErrorMessage(resp))
	}
}

// FetchSystemInfo retrieves a telemetry snapshot.
func (c *Client) FetchSystemInfo(ctx context.Context) (*telemetry.SystemInfo, error) {
	resp, err := c.get(ctx, "/system-info", "")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newHTTPError(resp.StatusCode, readErrorMessage(resp))
	}

	var info telemetry.SystemInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, newParseError("failed to parse system-info response", err)
	}
	return &info, nil
}

func (c *Client) get(ctx context.Context, path, token string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, token, nil)
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, token, payload)
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, classifyNetworkError(fmt.Sprintf("%s %s failed", method, path), err)
	}
	return resp, nil
}

// readErrorMessage extracts the backend's error message from a non-success
// response body, if one is present.
func readErrorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	}
	var body errorResponse
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
}
