// Package errors provides structured error types for shapescatter.
//
// Every precondition the renderer checks maps to its own [Code], so callers
// (the CLI, the HTTP server, the interactive form) can translate a failure
// into a specific user-facing message instead of a generic one.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - EMPTY_* / OUT_OF_RANGE_*: request parameters outside their domain
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidViewport, "xMax (%g) must be greater than xMin (%g)", xMax, xMin)
//	if errors.Is(err, errors.ErrCodeInvalidViewport) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "encode png")
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Render request errors
	ErrCodeInvalidViewport    Code = "INVALID_VIEWPORT"
	ErrCodeEmptyTypeSelection Code = "EMPTY_TYPE_SELECTION"
	ErrCodeInvalidCount       Code = "INVALID_COUNT"
	ErrCodeOutOfRangeDensity  Code = "OUT_OF_RANGE_DENSITY"
	ErrCodeInvalidSurface     Code = "INVALID_SURFACE"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidFigureType Code = "INVALID_FIGURE_TYPE"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

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

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err carries one of the input-side codes,
// i.e. the caller asked for something impossible rather than the renderer
// failing. The HTTP server maps these to 400.
func IsValidation(err error) bool {
	switch code := GetCode(err); code {
	case ErrCodeEmptyTypeSelection, ErrCodeOutOfRangeDensity:
		return true
	default:
		return strings.HasPrefix(string(code), "INVALID_")
	}
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
