// Package errors provides structured error types for goodnews.
//
// Errors carry a machine-readable code so the CLI and the terminal composer
// can decide how to surface a failure: some are reported as notifications,
// some are absorbed at the input boundary, none are fatal.
//
// # Error Codes
//
//   - INVALID_*: Input validation failures (style keys, point size, text)
//   - CAPTURE_NOT_READY: No composed surface to snapshot yet
//   - ENCODING_FAILED: Raster to PNG encoding produced no result
//   - CLIPBOARD_UNAVAILABLE: The system clipboard cannot be used
//   - FONT_LOAD, TEMPLATE_LOAD: Asset loading failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidStyle, "unknown alignment: %s", s)
//	if errors.Is(err, errors.ErrCodeInvalidStyle) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeEncoding, origErr, "encode png")
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
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidStyle Code = "INVALID_STYLE"
	ErrCodeInvalidSize  Code = "INVALID_SIZE"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Capture and export errors
	ErrCodeCaptureNotReady      Code = "CAPTURE_NOT_READY"
	ErrCodeEncoding             Code = "ENCODING_FAILED"
	ErrCodeClipboardUnavailable Code = "CLIPBOARD_UNAVAILABLE"

	// Asset errors
	ErrCodeFontLoad     Code = "FONT_LOAD"
	ErrCodeTemplateLoad Code = "TEMPLATE_LOAD"
	ErrCodeConfig       Code = "CONFIG"

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
// It unwraps the error chain looking for the outermost *Error and compares its code.
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
