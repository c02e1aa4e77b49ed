// Package dErrors defines the coded error type that crosses service
// boundaries. Services return these; the HTTP layer maps codes to statuses.
//
// Stores do not use this package directly: they return sentinel errors
// (pkg/platform/sentinel) and services translate them into domain errors.
package dErrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping and flow control.
type Code string

const (
	// CodeBadRequest marks caller input errors detectable before touching
	// the store (bad page number, empty query, unknown search field).
	CodeBadRequest Code = "bad_request"

	// CodeInvalidInput marks malformed field values (letters-only names,
	// digits-only phone numbers, email shape).
	CodeInvalidInput Code = "invalid_input"

	// CodeUnauthorized marks missing, malformed, or expired credentials.
	CodeUnauthorized Code = "unauthorized"

	// CodeForbidden marks a record that was found and visible but which the
	// caller may not write.
	CodeForbidden Code = "forbidden"

	// CodeNotFound marks a record that does not exist or is not visible to
	// the caller. Deliberately indistinguishable from true absence.
	CodeNotFound Code = "not_found"

	// CodeConflict marks uniqueness collisions (username or email taken).
	CodeConflict Code = "conflict"

	// CodeInternal marks store or infrastructure failures. Details are
	// logged, never surfaced to callers.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. Message is safe to show to callers for
// every code except CodeInternal.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports equality by code and message so tests can assert with
// errors.Is against a freshly constructed error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New constructs a domain error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and caller-safe message to an underlying error,
// preserving the cause for logs and errors.Is/As chains.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is a readability alias for HasCode at call sites that branch on codes.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// uncoded errors so unexpected failures never leak as client errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-safe message from err. Uncoded errors
// yield an empty message.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
