// Package errors provides structured error types for tracesplit.
//
// The split core never fails: malformed transform input degrades to a
// documented default. Errors only arise at the edges of the system (reading
// figure files, resolving unknown trace or transform types, parsing property
// paths, talking to cache backends) and are reported with a machine-readable
// [Code] so the CLI and the HTTP API can map them consistently.
//
// # Error Codes
//
//   - INVALID_*: input validation failures
//   - UNKNOWN_*: references to unregistered trace or transform types
//   - FILE_NOT_FOUND, CACHE_ERROR, INTERNAL_ERROR: environment failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownTransform, "unknown transform type %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownTransform) {
//	    // reject the request
//	}
//
//	err = errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Unregistered references
	ErrCodeUnknownTransform Code = "UNKNOWN_TRANSFORM"
	ErrCodeUnknownTraceType Code = "UNKNOWN_TRACE_TYPE"

	// Environment errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeCache        Code = "CACHE_ERROR"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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

// IsClientError reports whether err was caused by the caller's input rather
// than by the environment. The API maps these to 4xx responses.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPath, ErrCodeInvalidFormat,
		ErrCodeUnknownTransform, ErrCodeUnknownTraceType:
		return true
	}
	return false
}
