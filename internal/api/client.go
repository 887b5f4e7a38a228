// Package api implements the HTTP client for the url-shortener backend:
// bearer-token injection, response-envelope decoding and error
// normalization.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/pawansuthar6813/url-shortener/internal/token"
)

// DefaultTimeout bounds every request; a timed-out request surfaces as a
// generic network failure.
const DefaultTimeout = 10 * time.Second

// envelope is the backend's uniform response shape.
type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	ErrorMsg string          `json:"error"`
	Data     json.RawMessage `json:"data"`
}

// Client talks to the backend API. The zero value is not usable; construct
// with New.
type Client struct {
	base  string
	http  *http.Client
	store *token.Store
	log   *zap.Logger

	// onUnauthorized runs after a 401 has cleared stored credentials.
	onUnauthorized func()
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport (tests).
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger enables debug logging of requests.
func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.log = l } }

// WithTimeout overrides the fixed request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUnauthorizedHook registers a callback fired when a 401 forces the
// stored credentials to be cleared.
func WithUnauthorizedHook(fn func()) Option { return func(c *Client) { c.onUnauthorized = fn } }

// New constructs a Client rooted at base (e.g. "http://localhost:8080/api").
// The store supplies the bearer token for outgoing requests and is cleared
// when the backend answers 401.
func New(base string, store *token.Store, opts ...Option) *Client {
	c := &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: DefaultTimeout},
		store: store,
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get issues a GET and decodes the envelope's data into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body (nil body allowed for toggle endpoints).
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-Id", rid.String())
	}

	// Attach the bearer token only when present and not locally expired.
	if c.store != nil {
		if creds, err := c.store.Load(); err == nil && !token.Expired(creds.AccessToken) {
			req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("url", u), zap.Error(err))
		return netError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return netError(err)
	}
	c.log.Debug("request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body (proxy error page) falls through to the
		// status-based fallback message.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The hook stays quiet for auth endpoints themselves: a failed
		// login is not an expired session.
		c.forceLogout(!strings.HasPrefix(path, "/auth/"))
	}
	if resp.StatusCode >= 400 {
		return normalizeError(resp.StatusCode, env)
	}
	if !env.Success {
		return normalizeError(resp.StatusCode, env)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return err
		}
	}
	return nil
}

// forceLogout clears stored credentials after a 401 so stale tokens are
// never retried, then notifies the hook (the caller's "go to login").
func (c *Client) forceLogout(notify bool) {
	if c.store != nil {
		if err := c.store.Clear(); err != nil {
			c.log.Warn("clearing credentials", zap.Error(err))
		}
	}
	if notify && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
