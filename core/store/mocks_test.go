package store

import (
	"context"
	"io"
	"strings"

	"content-planner-api/core/interfaces"
)

// recordedRequest is what mockHTTPClient saw for one call
type recordedRequest struct {
	method  string
	url     string
	body    string
	headers map[string]string
}

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	handle   func(req recordedRequest) (int, string, error)
	requests []recordedRequest
}

func (m *mockHTTPClient) record(ctx context.Context, method, url string, body io.Reader) (interfaces.Response, error) {
	req := recordedRequest{method: method, url: url, headers: interfaces.HeadersFromContext(ctx)}
	if body != nil {
		b, _ := io.ReadAll(body)
		req.body = string(b)
	}
	m.requests = append(m.requests, req)

	status, respBody, err := 200, "[]", error(nil)
	if m.handle != nil {
		status, respBody, err = m.handle(req)
	}
	if err != nil {
		return nil, err
	}
	return &mockResponse{statusCode: status, body: respBody}, nil
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return m.record(ctx, "GET", url, nil)
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return m.record(ctx, "POST", url, body)
}

func (m *mockHTTPClient) Put(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return m.record(ctx, "PUT", url, body)
}

func (m *mockHTTPClient) Delete(ctx context.Context, url string) (interfaces.Response, error) {
	return m.record(ctx, "DELETE", url, nil)
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return ""
}
