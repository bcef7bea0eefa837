// Package errors provides structured errors with stable codes so that
// callers and operators can tell classes of failure apart without
// string matching.
package errors

import (
	"errors"
	"fmt"
)

// Category groups errors by the subsystem that produced them.
type Category string

const (
	CategoryInput    Category = "input"
	CategoryStore    Category = "store"
	CategoryIndex    Category = "index"
	CategoryExternal Category = "external"
	CategoryConfig   Category = "config"
)

// Severity indicates how an error should be surfaced.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityFatal   Severity = "fatal"
)

// Error is a structured error carrying a stable code and metadata.
type Error struct {
	Code       string
	Category   Category
	Severity   Severity
	Message    string
	Suggestion string
	Retryable  bool
	cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.cause = cause
	return &clone
}

// WithMessagef returns a copy of e with a formatted message.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

// Is reports whether target is an *Error with the same code, so
// errors.Is works against the sentinel definitions in codes.go.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// CodeOf extracts the structured code from err, or "" if err carries none.
func CodeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsRetryable reports whether err is a structured error marked retryable.
func IsRetryable(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}
