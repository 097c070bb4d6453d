package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{
		Resource: "content item",
		ID:       "123",
	}

	expected := "content item not found: 123"
	if err.Error() != expected {
		t.Errorf("NotFoundError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "title",
		Message: "cannot be empty",
	}

	expected := "validation error on field 'title': cannot be empty"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestTransportError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *TransportError
		expected string
	}{
		{
			name:     "status with message",
			err:      &TransportError{Op: "update", StatusCode: 404, Message: "Item not found"},
			expected: "update failed: 404 - Item not found",
		},
		{
			name:     "status without message",
			err:      &TransportError{Op: "fetch", StatusCode: 500},
			expected: "fetch failed: 500 Internal Server Error",
		},
		{
			name:     "network failure",
			err:      &TransportError{Op: "create", Err: errors.New("connection refused")},
			expected: "create failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := fmt.Errorf("refresh: %w", &TransportError{Op: "fetch", Err: cause})

	if !errors.Is(err, cause) {
		t.Error("TransportError should unwrap to its cause")
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"NotFoundError", &NotFoundError{Resource: "content item", ID: "abc"}, true},
		{"wrapped NotFoundError", fmt.Errorf("get: %w", &NotFoundError{}), true},
		{"404 transport error", &TransportError{Op: "update", StatusCode: 404}, true},
		{"500 transport error", &TransportError{Op: "update", StatusCode: 500}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"UnauthorizedError", &UnauthorizedError{Reason: "expired"}, true},
		{"401 transport error", &TransportError{Op: "fetch", StatusCode: 401}, true},
		{"403 transport error", &TransportError{Op: "fetch", StatusCode: 403}, true},
		{"404 transport error", &TransportError{Op: "fetch", StatusCode: 404}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnauthorized(tt.err); got != tt.want {
				t.Errorf("IsUnauthorized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidation_And_IsTransport(t *testing.T) {
	validation := fmt.Errorf("save: %w", &ValidationError{Field: "title", Message: "required"})
	if !IsValidation(validation) {
		t.Error("IsValidation should return true for wrapped ValidationError")
	}
	if IsTransport(validation) {
		t.Error("IsTransport should return false for ValidationError")
	}
	if !IsTransport(&TransportError{Op: "fetch", StatusCode: 502}) {
		t.Error("IsTransport should return true for TransportError")
	}
}

func TestUnauthorizedError_Error(t *testing.T) {
	if got := (&UnauthorizedError{}).Error(); got != "unauthorized" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&UnauthorizedError{Reason: "token expired"}).Error(); got != "unauthorized: token expired" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	original := errors.New("original error")
	wrapped := WrapError(original, "additional context")

	if wrapped.Error() != "additional context: original error" {
		t.Errorf("WrapError() = %v", wrapped)
	}
	if !errors.Is(wrapped, original) {
		t.Error("WrapError should preserve the original error")
	}
}

func TestIsConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"conflict error", &ConflictError{Resource: "content item", Message: "create in progress"}, true},
		{"wrapped conflict", fmt.Errorf("create: %w", &ConflictError{Resource: "content item"}), true},
		{"409 response", &TransportError{Op: "create", StatusCode: 409}, true},
		{"404 response", &TransportError{Op: "create", StatusCode: 404}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConflict(tt.err); got != tt.want {
				t.Errorf("IsConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}
