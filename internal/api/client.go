// ABOUTME: HTTP client core for the RYZE.ai REST API
// ABOUTME: Single configured pipeline with base URL, timeout, and retry loop

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryze-ai/ryze-cli/internal/auth"
)

// Defaults for the request pipeline. Every call carries DefaultTimeout
// unless overridden per call; server errors are retried with a fixed
// DefaultRetryDelay gap, not exponential backoff.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetryDelay = time.Second
	DefaultMaxRetries = 3
)

// Client is the single request/response pipeline for the RYZE.ai API.
// All domain facades route through it; no parallel HTTP clients are
// permitted, since auth attachment and error normalization live here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *auth.Session
	timeout    time.Duration
	retryDelay time.Duration
	maxRetries int
	logger     *slog.Logger
}

// Options holds the dependencies for creating a Client.
type Options struct {
	// BaseURL is the resolved API root, e.g. https://api.ryze.ai.
	BaseURL string
	// Session is consulted for the bearer token and torn down on 401.
	Session *auth.Session
	// Timeout is the per-call deadline (default 30s).
	Timeout time.Duration
	// RetryDelay is the fixed wait between 5xx retries (default 1s).
	RetryDelay time.Duration
	// MaxRetries caps automatic 5xx retries (default 3).
	MaxRetries int
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// HTTPClient overrides the underlying transport, mainly for tests.
	HTTPClient *http.Client
}

// New creates an API client with injected session state.
func New(opts Options) (*Client, error) {
	if opts.Session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.HTTPClient == nil {
		// Per-attempt deadlines come from the request context, so the
		// transport itself carries no timeout.
		opts.HTTPClient = &http.Client{}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		session:    opts.Session,
		timeout:    opts.Timeout,
		retryDelay: opts.RetryDelay,
		maxRetries: opts.MaxRetries,
		logger:     opts.Logger,
	}, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Session returns the injected session.
func (c *Client) Session() *auth.Session { return c.session }

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPatch, path, body, out, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

// do runs one logical call through the interceptor chain: build the
// descriptor, attach credentials, execute with retries, classify the
// outcome. Exactly one of a decoded value or a normalized error reaches
// the caller.
func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	spec := requestSpec{
		method:  method,
		path:    path,
		body:    body,
		timeout: c.timeout,
		retries: c.maxRetries,
	}
	for _, opt := range opts {
		opt(&spec)
	}

	var payload []byte
	if spec.body != nil {
		var err error
		payload, err = json.Marshal(spec.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		status, respBody, err := c.attempt(ctx, spec, payload)
		if err != nil {
			return err
		}

		if status >= http.StatusInternalServerError && attempt < spec.retries {
			c.logger.Debug("retrying after server error",
				"method", spec.method, "path", spec.path,
				"status", status, "attempt", attempt+1, "max_retries", spec.retries)
			if err := c.waitRetry(ctx); err != nil {
				return err
			}
			continue
		}

		return c.classify(spec, status, respBody, out)
	}
}

// attempt executes a single HTTP round trip built fresh from the spec.
// Transport-level failures are returned already normalized.
func (c *Client) attempt(ctx context.Context, spec requestSpec, payload []byte) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, spec.timeout)
	defer cancel()

	url := c.baseURL + spec.path
	if len(spec.query) > 0 {
		url += "?" + spec.query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, spec.method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// The session mirrors the token store; every login, logout, and
	// restore writes through both, so this read observes the latest
	// persisted credential.
	if !spec.public && !IsPublicRoute(spec.path) {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, c.normalizeTransportError(ctx, attemptCtx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, c.normalizeTransportError(ctx, attemptCtx, err)
	}

	return resp.StatusCode, respBody, nil
}

// waitRetry sleeps for the fixed retry delay, aborting if the caller
// cancels in the meantime.
func (c *Client) waitRetry(ctx context.Context) error {
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return &Error{Kind: KindCancelled, Message: "request cancelled", Cause: ctx.Err()}
	case <-timer.C:
		return nil
	}
}

// normalizeTransportError maps failures with no response received.
// Caller cancellation takes precedence over everything else.
func (c *Client) normalizeTransportError(ctx, attemptCtx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &Error{Kind: KindCancelled, Message: "request cancelled", Cause: context.Canceled}
	}
	if ctx.Err() == context.DeadlineExceeded || attemptCtx.Err() == context.DeadlineExceeded {
		return &Error{Kind: KindTimeout, Message: "request timed out", Cause: err}
	}
	return &Error{Kind: KindNetwork, Message: "network error, check your connection", Cause: err}
}
