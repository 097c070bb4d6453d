// ABOUTME: Health check handler
// ABOUTME: Reports liveness and the running version

package handlers

import (
	"context"
	"net/http"

	"content-planner-api/api/dto/responses"
	"github.com/danielgtaylor/huma/v2"
)

// HealthOutput defines the output for the health check
type HealthOutput struct {
	Body responses.HealthResponse
}

// RegisterHealth registers GET /healthz
func RegisterHealth(api huma.API, version string) {
	huma.Register(api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, func(ctx context.Context, input *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: responses.HealthResponse{Status: "ok", Version: version}}, nil
	})
}
