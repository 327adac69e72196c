package api

import (
	"errors"
	"net/http"
)

const fallbackMessage = "Request failed"

// ErrNotFound is returned by lookups that filter a list client-side.
var ErrNotFound = errors.New("record not found")

// Error is the single error shape every client call returns. Status is 0
// for transport failures.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether the backend rejected the session.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Message normalizes any error into text for an alert banner.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
