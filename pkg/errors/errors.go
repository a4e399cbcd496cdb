// Package errors provides structured error types for the ghdash service.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for status mapping
//   - Client-safe error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Three codes drive request handling:
//   - INVALID_INPUT: malformed user input, never retried (HTTP 400)
//   - CONFIGURATION: the deployment is misconfigured, never retried (HTTP 500)
//   - UPSTREAM: a GitHub API call failed (HTTP 401, 429 or 500 depending on
//     the upstream message)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "username is required")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Upstream failures carry the HTTP status text
//	err := errors.Upstream("fetch profile", 404, "Not Found")
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

	// Deployment errors
	ErrCodeConfiguration Code = "CONFIGURATION"

	// GitHub API errors
	ErrCodeUpstream    Code = "UPSTREAM"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Authentication errors
	ErrCodeUnauthorized   Code = "UNAUTHORIZED"
	ErrCodeSessionExpired Code = "SESSION_EXPIRED"

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

// Validation returns an INVALID_INPUT error.
func Validation(format string, args ...any) *Error {
	return New(ErrCodeInvalidInput, format, args...)
}

// Configuration returns a CONFIGURATION error.
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// An *UpstreamError matches ErrCodeUpstream.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ErrCodeUpstream
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

// UpstreamError reports a failed GitHub API call.
//
// Message is the text used for classification: the HTTP status text for
// plain HTTP failures, or the API's own message (e.g. "Bad credentials",
// "API rate limit exceeded for ...") when the response body carried one.
type UpstreamError struct {
	Op      string // Operation name, e.g. "fetch profile"
	Status  int    // HTTP status code, 0 for transport failures
	Message string // Status text or upstream message
	Cause   error  // Underlying error (optional)
}

// Upstream creates an UpstreamError for op with the given status and text.
func Upstream(op string, status int, message string) *UpstreamError {
	return &UpstreamError{Op: op, Status: status, Message: message}
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause.
func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// AsUpstream returns the first *UpstreamError in err's chain.
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
