// Package errors provides structured error types for panelgrid.
//
// Errors carry a machine-readable [Code] so hosts can branch on the failure
// kind without parsing messages:
//
//   - INVALID_*: input or layout validation failures
//   - NOT_FOUND: an ID does not name a widget or catalog entry
//   - NO_SLOT_AVAILABLE: the placement search found no free cell
//   - INVALID_SESSION_STATE: a drag operation was called in the wrong state
//   - FIXED_WIDGET_VIOLATION: the fixed widget was used as a drag source
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSessionState, "drop called while %s", state)
//	if errors.Is(err, errors.ErrCodeInvalidSessionState) {
//	    // programming error in the host
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidLayout, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidGrid      Code = "INVALID_GRID"
	ErrCodeInvalidLayout    Code = "INVALID_LAYOUT"
	ErrCodeInvalidSizeClass Code = "INVALID_SIZE_CLASS"
	ErrCodeInvalidCatalog   Code = "INVALID_CATALOG"
	ErrCodeInvalidID        Code = "INVALID_ID"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Placement errors
	ErrCodeNoSlotAvailable      Code = "NO_SLOT_AVAILABLE"
	ErrCodeFixedWidgetViolation Code = "FIXED_WIDGET_VIOLATION"

	// Session errors
	ErrCodeInvalidSessionState Code = "INVALID_SESSION_STATE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
