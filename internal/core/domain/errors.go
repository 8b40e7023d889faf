package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrUnauthorized         = errors.New("credential rejected by remote api")
	ErrForbidden            = errors.New("access forbidden")
	ErrSessionExpired       = errors.New("session expired")
	ErrSessionChanged       = errors.New("session changed while request was in flight")
	ErrInvalidLoginResponse = errors.New("login response missing token or user")
	ErrTransport            = errors.New("remote api unreachable")
	ErrNotFound             = errors.New("resource not found")
)

// APIError is the single failure shape produced by the remote API client.
// Status is 0 when the request never got a response.
type APIError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is lets callers match on the HTTP status class without unwrapping by hand.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrTransport:
		return e.Status == 0
	}
	return false
}

// ValidationError reports an empty or out-of-range input before any call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
