package clue

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHost is matched by every *ValidationError.
	ErrInvalidHost = errors.New("clue: host must be a valid IP address or base URL")

	// ErrUnexpectedStatus is matched by every *StatusError.
	ErrUnexpectedStatus = errors.New("clue: unexpected HTTP status")
)

// ValidationError reports a host that is neither a dotted-quad IPv4 address
// nor a bare hostname.
type ValidationError struct {
	Host string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("clue: invalid host %q: must be a valid IP address or base URL", e.Host)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidHost }

// StatusError is returned by a blocking Execute when the server answers with
// a status outside 2xx.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("clue: %s returned %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }
