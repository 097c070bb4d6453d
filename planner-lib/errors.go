// ABOUTME: Error types and handling for the planner library
// ABOUTME: Classifies core errors so callers can branch without importing core packages

package planner

import (
	"errors"
	"fmt"

	coreerrors "content-planner-api/core/errors"
	"content-planner-api/core/state"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeUnauthorized  ErrorType = "unauthorized"
	ErrorTypeNetwork       ErrorType = "network"
	ErrorTypeBusy          ErrorType = "busy"
	ErrorTypeInternal      ErrorType = "internal"
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// TypeOf classifies any error returned by the client
func TypeOf(err error) ErrorType {
	var libErr *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &libErr):
		return libErr.Type
	case errors.Is(err, state.ErrBusy), coreerrors.IsConflict(err):
		return ErrorTypeBusy
	case coreerrors.IsValidation(err):
		return ErrorTypeValidation
	case coreerrors.IsUnauthorized(err):
		return ErrorTypeUnauthorized
	case coreerrors.IsNotFound(err):
		return ErrorTypeNotFound
	case coreerrors.IsTransport(err):
		return ErrorTypeNetwork
	default:
		return ErrorTypeInternal
	}
}
