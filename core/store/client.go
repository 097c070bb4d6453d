// ABOUTME: HTTP client for the content persistence service
// ABOUTME: Implements the content store contract without retries

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
	"content-planner-api/core/interfaces"
)

const contentPath = "/api/content"

// maxBodyBytes bounds how much of a response body is read
const maxBodyBytes = 8 << 20

// maxMessageBytes bounds a plain-text error body kept in a TransportError
const maxMessageBytes = 200

// Client implements interfaces.ContentStore over HTTP
type Client struct {
	http     interfaces.HTTPClient
	endpoint string
	loc      *time.Location
	logger   interfaces.Logger
}

// Option configures a Client
type Option func(*Client)

// WithLocation sets the zone used to read date-only values
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// NewClient creates a store client for the service at baseURL
func NewClient(baseURL string, deps interfaces.Dependencies, opts ...Option) (*Client, error) {
	if deps.HTTPClient == nil {
		return nil, &coreerrors.ValidationError{Field: "http_client", Message: "is required"}
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &coreerrors.ValidationError{Field: "base_url", Message: fmt.Sprintf("invalid URL %q", baseURL)}
	}

	c := &Client{
		http:     deps.HTTPClient,
		endpoint: strings.TrimRight(u.String(), "/") + contentPath,
		loc:      time.Local,
		logger:   deps.LoggerOrNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchAll returns every item visible to the session
func (c *Client) FetchAll(ctx context.Context) ([]domain.ContentItem, error) {
	body, err := c.call(ctx, "fetch", http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeItems(body, c.loc)
	if err != nil {
		return nil, &coreerrors.TransportError{Op: "fetch", Err: fmt.Errorf("decode response: %w", err)}
	}
	return items, nil
}

// Create stores a new item. The patch must not carry an id. An idempotency
// key attached with interfaces.WithHeader is forwarded.
func (c *Client) Create(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
	if !patch.IsCreate() {
		return domain.ContentItem{}, &coreerrors.ValidationError{Field: "id", Message: "must be empty on create"}
	}
	return c.send(ctx, "create", http.MethodPost, patch)
}

// Update merges patch into the stored item with the same id
func (c *Client) Update(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
	if patch.IsCreate() {
		return domain.ContentItem{}, &coreerrors.ValidationError{Field: "id", Message: "is required for update"}
	}
	return c.send(ctx, "update", http.MethodPut, patch)
}

// DeleteOne removes one item. An already missing item counts as deleted.
func (c *Client) DeleteOne(ctx context.Context, id string) error {
	if id == "" {
		return &coreerrors.ValidationError{Field: "id", Message: "is required for delete"}
	}
	_, err := c.call(ctx, "delete", http.MethodDelete, c.endpoint+"?id="+url.QueryEscape(id), nil)
	if coreerrors.IsNotFound(err) {
		c.logger.Debug("Delete of missing item treated as success", map[string]interface{}{"id": id})
		return nil
	}
	return err
}

// DeleteAll removes every item the session may delete
func (c *Client) DeleteAll(ctx context.Context) error {
	_, err := c.call(ctx, "delete all", http.MethodDelete, c.endpoint+"?id=all", nil)
	return err
}

func (c *Client) send(ctx context.Context, op, method string, patch domain.ContentPatch) (domain.ContentItem, error) {
	payload, err := json.Marshal(fromPatch(patch))
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("encode %s request: %w", op, err)
	}
	body, err := c.call(ctx, op, method, c.endpoint, payload)
	if err != nil {
		return domain.ContentItem{}, err
	}
	item, err := decodeItem(body, c.loc)
	if err != nil {
		return domain.ContentItem{}, &coreerrors.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return item, nil
}

func (c *Client) call(ctx context.Context, op, method, target string, payload []byte) ([]byte, error) {
	var (
		resp interfaces.Response
		err  error
	)
	switch method {
	case http.MethodGet:
		resp, err = c.http.Get(ctx, target)
	case http.MethodPost:
		resp, err = c.http.Post(ctx, target, bytes.NewReader(payload))
	case http.MethodPut:
		resp, err = c.http.Put(ctx, target, bytes.NewReader(payload))
	case http.MethodDelete:
		resp, err = c.http.Delete(ctx, target)
	default:
		return nil, fmt.Errorf("unsupported method %s", method)
	}
	if err != nil {
		return nil, &coreerrors.TransportError{Op: op, Err: err}
	}

	rc := resp.Body()
	defer rc.Close()
	body, err := io.ReadAll(io.LimitReader(rc, maxBodyBytes))
	if err != nil {
		return nil, &coreerrors.TransportError{Op: op, StatusCode: resp.StatusCode(), Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &coreerrors.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Message:    errorMessage(body),
		}
	}
	return body, nil
}

// errorMessage extracts a human message from an error body. Problem
// details use "detail"; older services used "error" or "message".
func errorMessage(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.Detail, payload.Error, payload.Message} {
			if m != "" {
				return m
			}
		}
	}
	return truncate(strings.TrimSpace(string(body)), maxMessageBytes)
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
