package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making HTTP requests.
// This abstraction allows for easy mocking in tests and switching between
// different HTTP client implementations.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)

	// Post performs an HTTP POST request with a JSON body.
	Post(ctx context.Context, url string, body io.Reader) (Response, error)

	// Put performs an HTTP PUT request with a JSON body.
	Put(ctx context.Context, url string, body io.Reader) (Response, error)

	// Delete performs an HTTP DELETE request.
	Delete(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Header names are case-insensitive.
	Header(key string) string
}

type headersKey struct{}

// WithHeader attaches an extra request header to ctx. HTTPClient
// implementations add these headers to the outgoing request.
func WithHeader(ctx context.Context, key, value string) context.Context {
	existing := HeadersFromContext(ctx)
	headers := make(map[string]string, len(existing)+1)
	for k, v := range existing {
		headers[k] = v
	}
	headers[key] = value
	return context.WithValue(ctx, headersKey{}, headers)
}

// HeadersFromContext returns the headers attached with WithHeader
func HeadersFromContext(ctx context.Context) map[string]string {
	headers, _ := ctx.Value(headersKey{}).(map[string]string)
	return headers
}

// IdempotencyKeyHeader carries the client-generated key of a create request
const IdempotencyKeyHeader = "Idempotency-Key"
