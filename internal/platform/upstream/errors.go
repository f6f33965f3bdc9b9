package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport matches every error produced when the upstream could not be
// reached or the exchange did not complete.
var ErrTransport = errors.New("upstream unreachable")

// TransportError means no HTTP response was obtained from the upstream.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports ErrTransport as a match so callers need not know the concrete type.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// StatusError is a completed exchange whose status is outside the 2xx class.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// IsTransport reports whether err is (or wraps) a transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsNotFound reports whether err carries an upstream 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
