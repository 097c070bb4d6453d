// ABOUTME: Standard HTTP client implementation with bearer auth and timeout support
// ABOUTME: Fails fast through an optional circuit breaker instead of retrying

package standard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"content-planner-api/core/interfaces"
	"github.com/sony/gobreaker/v2"
)

const userAgent = "ContentPlanner/1.0"

// ErrCircuitOpen is returned while the breaker rejects requests
var ErrCircuitOpen = errors.New("persistence service unavailable: circuit open")

// Options configures a StandardHTTPClient
type Options struct {
	// Timeout bounds every request
	Timeout time.Duration

	// Token is sent as a bearer token when set
	Token string

	// BreakerFailures opens the breaker after this many consecutive
	// failures; 0 disables the breaker
	BreakerFailures uint32

	// BreakerCooldown is how long the breaker stays open
	BreakerCooldown time.Duration

	Logger interfaces.Logger
}

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client  *http.Client
	token   string
	breaker *gobreaker.CircuitBreaker[*http.Response]
	logger  interfaces.Logger
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return NewStandardHTTPClientWithOptions(Options{Timeout: timeout})
}

// NewStandardHTTPClientWithOptions creates a client with auth and breaker settings
func NewStandardHTTPClientWithOptions(opts Options) *StandardHTTPClient {
	logger := opts.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	c := &StandardHTTPClient{
		client: &http.Client{Timeout: opts.Timeout},
		token:  opts.Token,
		logger: logger,
	}

	if opts.BreakerFailures > 0 {
		cooldown := opts.BreakerCooldown
		if cooldown <= 0 {
			cooldown = 30 * time.Second
		}
		threshold := opts.BreakerFailures
		c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name:    "content-store",
			Timeout: cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("Circuit breaker state changed", map[string]interface{}{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				})
			},
		})
	}

	return c
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

// Post performs an HTTP POST request with a JSON body
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

// Put performs an HTTP PUT request with a JSON body
func (c *StandardHTTPClient) Put(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return c.do(ctx, http.MethodPut, url, body)
}

// Delete performs an HTTP DELETE request
func (c *StandardHTTPClient) Delete(ctx context.Context, url string) (interfaces.Response, error) {
	return c.do(ctx, http.MethodDelete, url, nil)
}

// serverError marks a 5xx as a breaker failure while keeping the response
type serverError struct {
	resp *http.Response
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server returned %d", e.resp.StatusCode)
}

func (c *StandardHTTPClient) do(ctx context.Context, method, url string, body io.Reader) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range interfaces.HeadersFromContext(ctx) {
		req.Header.Set(k, v)
	}

	send := func() (*http.Response, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, &serverError{resp: resp}
		}
		return resp, nil
	}

	var resp *http.Response
	if c.breaker != nil {
		resp, err = c.breaker.Execute(send)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
	} else {
		resp, err = send()
	}

	var srvErr *serverError
	if errors.As(err, &srvErr) {
		resp, err = srvErr.resp, nil
	}
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
