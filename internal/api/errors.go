package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of a backend request failure.
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (unreachable backend,
	// refused connection).
	ErrTypeNetwork ErrorType = iota
	// ErrTypeAuth indicates an authentication failure (bad credentials or
	// an invalid/expired token).
	ErrTypeAuth
	// ErrTypeHTTP indicates a non-success HTTP response.
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body.
	ErrTypeParse
	// ErrTypeTimeout indicates a request timeout.
	ErrTypeTimeout
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// RequestError is an error from a gateway backend request, classified so
// the UI can choose between an inline banner, a login redirect, and a
// generic connectivity message.
type RequestError struct {
	Type       ErrorType
	Message    string
	StatusCode int // HTTP status code, when applicable
	Err        error
	Retryable  bool
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// classifyNetworkError analyzes a transport error and returns a typed error.
func classifyNetworkError(message string, err error) *RequestError {
	if os.IsTimeout(err) {
		return &RequestError{Type: ErrTypeTimeout, Message: message, Err: err, Retryable: true}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return classifyNetworkError(message, urlErr.Err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &RequestError{
			Type:      ErrTypeNetwork,
			Message:   "gateway refused connection",
			Err:       err,
			Retryable: true,
		}
	}

	return &RequestError{Type: ErrTypeNetwork, Message: message, Err: err, Retryable: true}
}

func newHTTPError(statusCode int, message string) *RequestError {
	return &RequestError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500,
	}
}

func newAuthError(message string) *RequestError {
	return &RequestError{Type: ErrTypeAuth, Message: message, Retryable: false}
}

func newParseError(message string, err error) *RequestError {
	return &RequestError{Type: ErrTypeParse, Message: message, Err: err, Retryable: false}
}

// IsNetworkError checks whether err is a connectivity failure, including
// timeouts.
func IsNetworkError(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Type == ErrTypeNetwork || reqErr.Type == ErrTypeTimeout
	}
	return false
}

// IsAuthError checks whether err is an authentication failure.
func IsAuthError(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Type == ErrTypeAuth
	}
	return false
}

// ShortMessage returns a concise, user-facing message for an error.
func ShortMessage(err error) string {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return err.Error()
	}

	switch reqErr.Type {
	case ErrTypeTimeout:
		return "Gateway not responding (timeout)"
	case ErrTypeNetwork:
		return "Could not connect to the gateway - check the network"
	case ErrTypeAuth:
		return reqErr.Message
	case ErrTypeHTTP:
		if reqErr.Message != "" {
			return reqErr.Message
		}
		return fmt.Sprintf("Server error (HTTP %d)", reqErr.StatusCode)
	case ErrTypeParse:
		return "Unexpected response from the gateway"
	default:
		return reqErr.Message
	}
}
