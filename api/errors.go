// ABOUTME: Error taxonomy for remote API calls
// ABOUTME: Distinguishes transport failures, rejected requests, and invalid sessions
package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for any 401 response. By the time a caller sees
// it the session has already been torn down via the injected callback.
var ErrUnauthorized = errors.New("session invalid")

// ErrNotLoggedIn is returned before any request is issued when no bearer
// token is available.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx response from the marketplace API, carrying the HTTP
// status and the server's structured message when one was provided.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a remote 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}
