package lawbot

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired is matched by any backend response with status 401.
	// By the time a caller sees it the visitor's session is already cleared.
	ErrSessionExpired = errors.New("lawbot: session expired")
	// ErrUnreachable wraps transport failures where no response arrived.
	ErrUnreachable = errors.New("lawbot: backend unreachable")
)

// APIError is a non-2xx response from the backend. Message carries the
// backend's {"error": "..."} text when present.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("lawbot %s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("lawbot %s: status %d: %s", e.Endpoint, e.Status, e.Message)
}

// Is lets errors.Is(err, ErrSessionExpired) match unauthorized responses.
func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && e.Status == http.StatusUnauthorized
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the backend-reported message carried by err, falling back
// to fallback when the backend gave none or never answered.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
