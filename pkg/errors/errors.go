// Package errors provides structured error types for the Kojioka client.
//
// Every failure surfaced by the client falls into one of three codes:
//   - INVALID_ARGUMENT: the caller's input was rejected before any request was sent
//   - API_ERROR: the remote service answered with a non-success status
//   - NETWORK_ERROR: no response was obtained (DNS, refused connection, timeout)
//
// Precondition failures are *Error values. Remote failures use the typed
// [APIError] and [NetworkError] so callers can read the status code, the
// serialized response body, or the transport message.
//
// # Usage
//
//	resp, err := client.FetchStream(ctx, query)
//	switch errors.GetCode(err) {
//	case errors.ErrCodeInvalidArgument:
//	    // fix the input
//	case errors.ErrCodeAPI:
//	    var apiErr *errors.APIError
//	    stderrors.As(err, &apiErr)
//	    fmt.Println(apiErr.StatusCode, apiErr.Details)
//	case errors.ErrCodeNetwork:
//	    // service unreachable
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
	// Caller errors
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidPackage  Code = "INVALID_PACKAGE"
	ErrCodeInvalidURL      Code = "INVALID_URL"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Remote errors
	ErrCodeAPI      Code = "API_ERROR"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodeInvalidResponse marks a 2xx body that could not be decoded.
	ErrCodeInvalidResponse Code = "INVALID_RESPONSE"

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

// APIError reports that the remote service responded with a failure status.
type APIError struct {
	StatusCode int    // HTTP status code of the response
	Details    string // Compact JSON for structured bodies, raw text otherwise
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d - %s", e.StatusCode, e.Details)
}

// Code returns the error code for this error type.
func (e *APIError) Code() Code {
	return ErrCodeAPI
}

// NetworkError reports that no response was obtained from the remote service.
type NetworkError struct {
	Message string // Transport error text
	Err     error  // Underlying transport error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return "Network Error: " + e.Message
}

// Unwrap returns the transport error so callers can inspect net.OpError etc.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Code returns the error code for this error type.
func (e *NetworkError) Code() Code {
	return ErrCodeNetwork
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *NetworkError {
	return &NetworkError{Message: err.Error(), Err: err}
}

type coded interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// or a typed error whose Code method matches.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// As is [errors.As] from the standard library, re-exported so callers that
// import this package do not need both.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coded
	if errors.As(err, &c) {
		return c.Code()
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
