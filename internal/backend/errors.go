package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means the bearer credential is missing, invalid or expired.
	ErrUnauthenticated = errors.New("backend: not authenticated")
	// ErrForbidden means the credential is valid but lacks the required role.
	ErrForbidden = errors.New("backend: not permitted")
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("backend: not found")
	// ErrConflict means the backend rejected the request on a business rule.
	ErrConflict = errors.New("backend: request rejected")
	// ErrUnavailable covers network failures and 5xx responses.
	ErrUnavailable = errors.New("backend: unavailable")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Operation   string
	StatusCode  int
	Message     string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend %s returned %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("backend %s returned %d: %s", e.Operation, e.StatusCode, e.Message)
}

// Unwrap maps the status code to one of the sentinel errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthenticated
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusBadRequest,
		e.StatusCode == http.StatusConflict,
		e.StatusCode == http.StatusUnprocessableEntity:
		return ErrConflict
	case e.StatusCode >= 500:
		return ErrUnavailable
	}
	return nil
}

// Outcome classifies err for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "rejected"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	}
	return "error"
}
