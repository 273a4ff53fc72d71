// Package apperror provides the domain error taxonomy for the marketplace API.
// Every error carries an HTTP status code, a machine-readable type and a
// message that is safe to show to the client. The Echo error handler in
// internal/app renders them as JSON.
//
// Never return raw database or driver errors to the client. Wrap them with
// NewInternal so the cause is logged and the caller sees a generic message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable reasons attached to 401 responses so clients can tell an
// expired session apart from a forged or absent one.
const (
	ReasonTokenMissing       = "token_missing"
	ReasonTokenMalformed     = "token_malformed"
	ReasonTokenExpired       = "token_expired"
	ReasonInvalidCredentials = "invalid_credentials"
)

// AppError is the base error type for all domain errors.
type AppError struct {
	// Code is the HTTP status code (e.g., 404, 400, 500).
	Code int `json:"-"`

	// Type is a machine-readable error classifier (e.g., "not_found").
	Type string `json:"type"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Internal holds the underlying error for logging. Never exposed to client.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// --- Constructors ---

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Type:    "not_found",
		Message: message,
	}
}

// NewBadRequest creates a 400 Bad Request error for unreadable requests.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "bad_request",
		Message: message,
	}
}

// NewValidation creates a 400 error for input that was readable but
// missing or invalid.
func NewValidation(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "validation_error",
		Message: message,
	}
}

// NewUnauthorized creates a generic 401 Unauthorized error.
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    "unauthorized",
		Message: message,
	}
}

// NewUnauthenticated creates a 401 whose Type is one of the Reason* constants.
func NewUnauthenticated(reason, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    reason,
		Message: message,
	}
}

// NewForbidden creates a 403 Forbidden error.
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:    http.StatusForbidden,
		Type:    "forbidden",
		Message: message,
	}
}

// NewConflict creates a 409 Conflict error.
func NewConflict(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Type:    "conflict",
		Message: message,
	}
}

// NewTooManyRequests creates a 429 error.
func NewTooManyRequests(message string) *AppError {
	return &AppError{
		Code:    http.StatusTooManyRequests,
		Type:    "rate_limited",
		Message: message,
	}
}

// NewUnavailable creates a 503 error for optional collaborators that are not
// configured or not reachable.
func NewUnavailable(message string) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Type:    "unavailable",
		Message: message,
	}
}

// NewInternal creates a 500 Internal Server Error. The real error is stored
// in Internal for logging but the client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}

// --- Inspection helpers ---

// SafeMessage returns the client-safe message of err, or a generic message
// for anything that is not an AppError.
func SafeMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "an unexpected error occurred"
}

// SafeCode returns the HTTP status code of err, or 500 for anything that is
// not an AppError.
func SafeCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is (or wraps) a 404 AppError.
func IsNotFound(err error) bool {
	return SafeCode(err) == http.StatusNotFound
}

// IsType reports whether err is (or wraps) an AppError with the given Type.
func IsType(err error, typ string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == typ
}
