package outfit

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means no local session exists. The network is never
	// reached in this case.
	ErrUnauthenticated = errors.New("not logged in")

	// ErrSessionExpired means the server rejected our token mid-operation.
	// Observing it forces a logout on the session provider.
	ErrSessionExpired = errors.New("session expired, log in again")

	// ErrNotFound is matched by 404 responses via HTTPError.Is.
	ErrNotFound = errors.New("not found")
)

// NetworkError wraps a transport-level failure (connection refused, timeout).
// On a first-page refresh it triggers the fallback dataset substitution.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network failure: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a server-side failure with its status code preserved.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// DecodeError marks a malformed server response.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("malformed response: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsFallbackTrigger reports whether a refresh failure should be recovered
// locally with the fallback dataset: connectivity-class errors and 404s.
func IsFallbackTrigger(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err is a 401-class server response.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized
}
