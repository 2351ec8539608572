// Package errors provides structured error types for the orrery engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Taxonomy
//
// The engine distinguishes two failure families:
//
//   - Input domain errors (INVALID_*, POLAR_LATITUDE): the request itself
//     is unserviceable. These fail immediately, are never retried
//     internally, and surface unchanged to the caller.
//   - Provider errors (PROVIDER_ERROR): an injected ephemeris or sidereal
//     time source failed. The engine propagates these as-is; any retry
//     policy belongs to the caller.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidBody, "unknown body: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidBody) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeProvider, origErr, "ephemeris lookup for %s", body)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input domain errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidBody    Code = "INVALID_BODY"
	ErrCodeInvalidInstant Code = "INVALID_INSTANT"
	ErrCodePolarLatitude  Code = "POLAR_LATITUDE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeReportNotFound Code = "REPORT_NOT_FOUND"

	// Provider errors (injected ephemeris / sidereal time sources)
	ErrCodeProvider Code = "PROVIDER_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsDomain reports whether err is an input domain error (as opposed to a
// provider or internal failure). Domain errors are terminal: retrying the
// same request cannot succeed.
func IsDomain(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidBody, ErrCodeInvalidInstant,
		ErrCodePolarLatitude, ErrCodeInvalidFormat:
		return true
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
