package api

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when a request got 401 and the single
// refresh attempt did not resolve it. The session has been cleared by the
// time callers see this; the only recovery is logging in again.
var ErrAuthRequired = errors.New("authentication required")

// HTTPError is any non-2xx response other than the handled-401 path.
// Message carries the backend's error field when the body had one.
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}
