// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"errors"

	coreerrors "content-planner-api/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if coreerrors.IsUnauthorized(err) {
		return huma.Error401Unauthorized(err.Error())
	}

	if coreerrors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if coreerrors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	var conflictErr *coreerrors.ConflictError
	if errors.As(err, &conflictErr) {
		return huma.Error409Conflict(err.Error())
	}

	var transportErr *coreerrors.TransportError
	if errors.As(err, &transportErr) {
		switch {
		case transportErr.StatusCode == 0 || transportErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("Storage unavailable", err)
		case transportErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by storage")
		default:
			return huma.Error502BadGateway("Unexpected storage response", err)
		}
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
