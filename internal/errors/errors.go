// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key, no-op state change).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a service dependency could not be reached.
	ErrUnavailable = errors.New("unavailable")
)

// CodedError attaches a stable machine-readable code to an error.
// The code survives wrapping and is surfaced to API clients by the HTTP layer.
type CodedError struct {
	code string
	err  error
}

// Error returns the message of the wrapped error.
func (e *CodedError) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped error.
func (e *CodedError) Unwrap() error {
	return e.err
}

// Code returns the machine-readable code.
func (e *CodedError) Code() string {
	return e.code
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// WithCode attaches a machine-readable code to err.
func WithCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &CodedError{code: code, err: err}
}

// Code returns the outermost code attached to err, or "" if none.
func Code(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return ""
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
