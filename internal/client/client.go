package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/metrics"
)

// Client talks to the DoofiCoin REST backend. It never retries: every
// failure is returned to the caller as-is.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its transport is used
// as given, without metrics instrumentation.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.HTTP = h
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.HTTP.Timeout = d
	}
}

// WithToken sets the initial bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: metrics.NewTransport(nil),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fork returns a client sharing the HTTP transport but holding its own token.
func (c *Client) Fork(token string) *Client {
	return &Client{BaseURL: c.BaseURL, HTTP: c.HTTP, token: token}
}

// SetToken replaces the bearer token. An empty token disables the header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type request struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
	// anonymous requests never carry the bearer token
	anonymous bool
}

type errorPayload struct {
	Error string `json:"error"`
}

// do sends req and decodes a 2xx JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	ctx, requestID := logger.EnsureRequestID(ctx)
	ctx = metrics.WithRoute(ctx, req.route)
	log := logger.FromContext(ctx)

	var reader io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	target := c.BaseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set(HeaderContentType, ContentTypeJSON)
	httpReq.Header.Set(HeaderRequestID, requestID)
	if token := c.Token(); token != "" && !req.anonymous {
		httpReq.Header.Set(HeaderAuthorization, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		log.Warn("API request failed", "method", req.method, "route", req.route, "error", err)
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	log.Debug("API request",
		"method", req.method,
		"route", req.route,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, req.path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s response: %w", req.route, err)
	}
	return nil
}

func decodeError(resp *http.Response, path string) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    genericStatusMessage(resp.StatusCode),
		Path:       path,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}

func (c *Client) get(ctx context.Context, route, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, route: route, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, route, path string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPost, route: route, path: path, body: body}, out)
}

func (c *Client) put(ctx context.Context, route, path string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPut, route: route, path: path, body: body}, out)
}

func (c *Client) delete(ctx context.Context, route, path string) error {
	return c.do(ctx, request{method: http.MethodDelete, route: route, path: path}, nil)
}

// MessageResponse is the {message} payload returned by delete and ban calls.
type MessageResponse struct {
	Message string `json:"message"`
}

// Ping reports whether the backend answers HTTP at all. Any response below
// 500 counts as reachable, since the root path is not part of the API.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusInternalServerError {
		return &APIError{StatusCode: resp.StatusCode, Message: genericStatusMessage(resp.StatusCode), Path: "/"}
	}
	return nil
}
