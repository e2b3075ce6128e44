// Package pacterr defines the single error kind raised by com-pact.
//
// Construction-time validation failures (a regex example that does not match
// its pattern, an unsupported HTTP method, a request without a path) and
// infrastructure failures (the broker cannot be reached or answers with a
// non-2xx status) are all reported as *Error with a precise, human-readable
// message. Match mismatches are never errors; they are collected into
// verification results instead.
package pacterr

import (
	"errors"
	"fmt"
)

// Error is the com-pact domain error.
type Error struct {
	// Message is the human-readable description returned by Error().
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// New creates a domain error with the given message.
func New(message string) *Error {
	return &Error{Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error that keeps cause reachable through errors.Unwrap.
func Wrap(cause error, message string) *Error {
	return &Error{Message: message, Err: cause}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain is a domain error.
func Is(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}
