// Package backend is the REST client for the AgriConnect Flask backend. The
// backend keeps its session in a cookie, so one Client corresponds to one
// shopper.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/net/publicsuffix"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

const (
	defaultTimeout       = 5 * time.Second
	responseBodyLimit    = 1 << 20
	requestIDHeader      = "X-Request-ID"
	defaultErrorBodySize = 512
)

var errBaseURLRequired = errors.New("backend base url is required")

// Client talks to the backend over HTTP with a cookie jar holding the
// session cookie.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	tokens     *TokenStore
	log        zerolog.Logger
}

// Option configures optional client behaviour.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. Its Jar is replaced only
// when nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTokenStore enables bearer tokens kept in local storage.
func WithTokenStore(ts *TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithJar replaces the in-memory cookie jar, e.g. with a PersistentJar.
func WithJar(jar http.CookieJar) Option {
	return func(c *Client) {
		if jar != nil {
			c.httpClient.Jar = jar
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient builds a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.httpClient.Jar == nil {
		jar, err := NewJar()
		if err != nil {
			return nil, err
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// NewJar returns an in-memory cookie jar scoped with the public suffix list.
func NewJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return jar, nil
}

// Ping reports whether the backend answers HTTP at all. Any status counts.
func (c *Client) Ping(ctx context.Context) error {
	var env envelope
	if _, err := c.do(ctx, "ping", http.MethodGet, "/api/me", nil, &env); err != nil {
		return err
	}
	return nil
}

// envelope is the union of every JSON body the backend returns.
type envelope struct {
	Success     *bool           `json:"success"`
	Message     string          `json:"message"`
	Error       string          `json:"error"`
	Token       string          `json:"token"`
	User        *domain.User    `json:"user"`
	Orders      []domain.Order  `json:"orders"`
	OrderNumber string          `json:"order_number"`
	TotalOrders int             `json:"total_orders"`
	Pending     int             `json:"pending_orders"`
	Completed   int             `json:"completed_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

func (e envelope) ok() bool { return e.Success != nil && *e.Success }

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do sends one request and decodes the JSON response into out. Only
// transport failures and undecodable bodies are errors; the status code is
// returned for the caller to interpret.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%s: build request: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Bearer(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("op", op).
		Str("request_id", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%s: read response: %w", op, err)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			// Error pages are often HTML; keep the status and a snippet.
			return resp.StatusCode, &domain.RemoteError{Op: op, Status: resp.StatusCode, Message: snippet(raw)}
		}
		return resp.StatusCode, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return resp.StatusCode, nil
}

// rejection builds the error for an answered but unsuccessful call.
func rejection(op string, status int, env envelope) error {
	return &domain.RemoteError{Op: op, Status: status, Message: env.message()}
}

func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > defaultErrorBodySize {
		s = s[:defaultErrorBodySize]
	}
	return s
}
