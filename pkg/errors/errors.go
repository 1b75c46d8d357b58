// Package errors provides structured error types for mermaidmacro plugins.
//
// Hosts distinguish two plugin failure kinds:
//   - [ValidationError]: a plugin's prerequisites (such as an external
//     renderer executable) are missing. Raised by Validate before any render.
//   - [OperationError]: a render was attempted and the renderer failed.
//     Carries the renderer's diagnostic output verbatim.
//
// Both kinds carry a machine-readable [Code] so callers can branch with [Is]
// without type assertions. Everything else (temporary file creation, reads,
// writes) is an ordinary wrapped error and is not coded.
//
// # Usage
//
//	if errors.Is(err, errors.ErrCodeValidation) {
//	    // renderer not installed
//	}
//
//	var opErr *errors.OperationError
//	if stderrors.As(err, &opErr) {
//	    fmt.Println(opErr.Stderr)
//	}
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme   Code = "INVALID_THEME"
	ErrCodeInvalidVersion Code = "INVALID_VERSION"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Plugin errors
	ErrCodeValidation   Code = "VALIDATION_FAILED"
	ErrCodeOperation    Code = "OPERATION_FAILED"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
	ErrCodeIncompatible Code = "INCOMPATIBLE_HOST"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// It walks the error chain and returns the code of the outermost coded error.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case *ValidationError:
			return ErrCodeValidation
		case *OperationError:
			return ErrCodeOperation
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For coded errors, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ValidationError reports that a plugin cannot run because a prerequisite
// is missing, typically an external executable not found on PATH.
type ValidationError struct {
	Plugin     string // Entrypoint name of the failing plugin
	Executable string // Required executable, if any
	Package    string // Distribution that provides Executable, used in the hint
	Cause      error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Executable == "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s cannot be used: %v", e.Plugin, e.Cause)
		}
		return fmt.Sprintf("%s cannot be used", e.Plugin)
	}
	if e.Package == "" {
		return fmt.Sprintf("%s requires the '%s' command to be installed.", e.Plugin, e.Executable)
	}
	return fmt.Sprintf("%s requires %s (which provides the '%s' command) to be installed.",
		e.Plugin, e.Package, e.Executable)
}

// Unwrap returns the lookup failure.
func (e *ValidationError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *ValidationError) Code() Code { return ErrCodeValidation }

// OperationError reports that a renderer ran and failed.
// Stderr holds the renderer's diagnostic text exactly as it was emitted.
type OperationError struct {
	Plugin string // Entrypoint name of the failing plugin
	Input  string // Input file handed to the renderer
	Output string // Output file the renderer was asked to produce
	Stderr string
	Cause  error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Input == "" && e.Output == "" {
		return fmt.Sprintf("%s encountered an error while rendering: %s", e.Plugin, e.detail())
	}
	return fmt.Sprintf("%s encountered an error while compiling from %s to %s: %s",
		e.Plugin, e.Input, e.Output, e.detail())
}

func (e *OperationError) detail() string {
	if e.Stderr != "" || e.Cause == nil {
		return e.Stderr
	}
	return e.Cause.Error()
}

// Unwrap returns the process or parse failure.
func (e *OperationError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *OperationError) Code() Code { return ErrCodeOperation }
