// Package apperror centralizes application error categories and their
// mapping to HTTP status codes, so handlers can return consistent
// structured JSON errors.
package apperror

import (
	"errors"
	"net/http"
)

// Type classifies an application error.
type Type int

const (
	// Unknown is for unspecified errors.
	Unknown Type = iota
	// Unauthenticated means no or invalid credentials (401).
	Unauthenticated
	// Forbidden means a valid identity without sufficient rights (403).
	Forbidden
	// NotFound means the requested resource does not exist (404).
	NotFound
	// Conflict means a uniqueness or state conflict (409).
	Conflict
	// Validation means a missing or malformed input field (400).
	Validation
	// Internal means an unexpected failure; details are logged, not returned (500).
	Internal
)

// AppError carries a category, a client-safe message, and an optional
// underlying error kept for logging.
type AppError struct {
	Type    Type
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap supports errors.Is/errors.As over the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body sent to clients for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse converts the error to its client-facing payload. Only the
// message is exposed, never the underlying error.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

func New(t Type, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

func NewUnauthenticated(message string, err error) *AppError {
	return New(Unauthenticated, message, err)
}

func NewForbidden(message string, err error) *AppError {
	return New(Forbidden, message, err)
}

func NewNotFound(message string, err error) *AppError {
	return New(NotFound, message, err)
}

func NewConflict(message string, err error) *AppError {
	return New(Conflict, message, err)
}

func NewValidation(message string, err error) *AppError {
	return New(Validation, message, err)
}

func NewInternal(message string, err error) *AppError {
	return New(Internal, message, err)
}

// From extracts an *AppError from an error chain.
func From(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Is reports whether err carries the given error type.
func Is(err error, t Type) bool {
	ae, ok := From(err)
	return ok && ae.Type == t
}
