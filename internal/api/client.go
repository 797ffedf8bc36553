// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the gateway to the helpdesk backend REST API.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRetries is the attempt count for idempotent reads.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay caps the backoff.
	retryMaxDelay = 5 * time.Second

	// maxResponseSize bounds response bodies; the full ticket list of a
	// site fits in a fraction of this.
	maxResponseSize = 4 * 1024 * 1024

	userAgent = "helpdesk-tui/" + clientVersion
)

// clientVersion is stamped into the User-Agent header.
const clientVersion = "1.2.0"

// sharedHTTPClient is the pooled transport for all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// CLIENT
// =============================================================================

// TokenSource supplies the current bearer token, or "" when the user is
// not logged in. The auth.Store satisfies this.
type TokenSource interface {
	Token() string
}

// Client talks to the helpdesk backend. It is stateless aside from the
// attached token source and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	maxRetries int
	logger     *log.Logger
}

// NewClient creates a client for the given base URL. tokens may be nil for
// pre-login calls; requests then go out unauthenticated.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		tokens:     tokens,
		// A TUI produces at most a handful of requests per user action;
		// the limiter only guards against pathological event loops.
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
		maxRetries: DefaultMaxRetries,
	}
}

// WithHTTPClient swaps the underlying HTTP client (tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithTimeout sets the per-attempt timeout, keeping the shared transport.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d <= 0 {
		d = DefaultTimeout
	}
	hc := *c.httpClient
	hc.Timeout = d
	c.httpClient = &hc
	return c
}

// WithMaxRetries sets the attempt count for idempotent reads.
func (c *Client) WithMaxRetries(n int) *Client {
	if n < 1 {
		n = 1
	}
	c.maxRetries = n
	return c
}

// WithLogger enables request/response logging. Only method, path, status,
// and duration are logged; never headers, bodies, or tokens.
func (c *Client) WithLogger(l *log.Logger) *Client {
	c.logger = l
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// VERBS
// =============================================================================

// Get performs a GET with retry, decoding the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	body, err := c.doWithRetry(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Post performs a POST without retry, decoding the response into out when
// out is non-nil.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := c.do(ctx, http.MethodPost, path, in)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Put performs a PUT without retry.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	body, err := c.do(ctx, http.MethodPut, path, in)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Delete performs a DELETE without retry.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// decode unmarshals a response body, tolerating empty bodies and callers
// that do not care about the response.
func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

// doWithRetry runs an idempotent request with exponential backoff on
// transient failures. Mutating verbs must call do directly.
func (c *Client) doWithRetry(ctx context.Context, method, path string, in any) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		body, err := c.do(ctx, method, path, in)
		if err == nil {
			return body, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do performs a single request and maps failures to the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	c.logExchange(method, path, resp.StatusCode, time.Since(start))

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp.StatusCode, body)
	}
	return body, nil
}

// setHeaders attaches the standard headers. The bearer token is attached
// whenever the session store holds one.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// readBody reads a response with a size limit.
func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("response exceeded %d bytes", maxResponseSize)
	}
	return body, nil
}

// isRetryable reports whether a failure is worth another attempt.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNetwork) {
		return true
	}
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Retryable()
}

// backoff returns the delay before retry attempt n (1-based): 500ms, 1s, 2s.
func backoff(attempt int) time.Duration {
	d := retryBaseDelay * time.Duration(1<<uint(attempt-1))
	if d > retryMaxDelay {
		d = retryMaxDelay
	}
	return d
}

// logExchange logs one request/response pair when logging is enabled.
func (c *Client) logExchange(method, path string, status int, d time.Duration) {
	if c.logger == nil {
		return
	}
	c.logger.Printf("%s %s -> %d (%s)", method, path, status, d.Round(time.Millisecond))
}
