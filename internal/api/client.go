// Package api is the session-aware request pipeline for the Tyler server.
//
// Session credentials are cookie-based and carried implicitly by the client's
// jar. A 401 triggers exactly one refresh-and-retry; any other error response
// with a {status, detail} payload is forwarded to the notifier as
// "status: detail". Network-level failures are logged, not surfaced.
package api

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

	"tyler-cli/internal/toast"

	"go.uber.org/zap"
)

// SessionExpiredMessage is the fixed notification emitted when the refresh
// call itself fails.
const SessionExpiredMessage = "Session expired. Please log in again."

// ErrSessionExpired wraps the original failure when refresh did not recover
// the session; callers route it to the login screen.
var ErrSessionExpired = errors.New("session expired")

// APIError is a structured error response from the server.
type APIError struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Detail)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// Notifier receives human-readable failure messages. The sink is injected at
// construction so there is no registration race: a client without a notifier
// only logs.
type Notifier interface {
	Notify(sev toast.Severity, message string)
}

type Client struct {
	base     *url.URL
	http     *http.Client
	notifier Notifier
	logger   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithNotifier wires the global notification sink into the pipeline.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying transport (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for the given base URL with a fresh cookie jar.
// A deadline is set so a dead server cannot hang the UI loop.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		base:   base,
		http:   &http.Client{Jar: jar, Timeout: 15 * time.Second},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		c.http.Jar = jar
	}
	return c, nil
}

// BaseURL returns the configured server origin.
func (c *Client) BaseURL() *url.URL { return c.base }

// Cookies exposes the jar's cookies for the server origin so the CLI can
// persist the session between invocations.
func (c *Client) Cookies() []*http.Cookie {
	return c.http.Jar.Cookies(c.base)
}

// SetCookies seeds the jar with a previously persisted session.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.http.Jar.SetCookies(c.base, cookies)
}

// SetNotifier swaps the notification sink. The TUI calls this once during
// startup, before any request is issued.
func (c *Client) SetNotifier(n Notifier) { c.notifier = n }

// do issues one request and decodes a 2xx JSON body into out (when non-nil).
//
// On 401 the pipeline refreshes the session once and retries the original
// request once; the retried response is indistinguishable from a first-try
// success. A failed refresh emits the session-expired notification exactly
// once and propagates the failure.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.send(ctx, method, path, body, out)

	// Auth endpoints are exempt twice over: a 401 from /auth/login is a wrong
	// password, not an expired session, and the auth screens map their own
	// errors to inline messages rather than toasts.
	if strings.HasPrefix(path, "/auth/") {
		return err
	}
	if StatusOf(err) != http.StatusUnauthorized {
		return c.notify(err)
	}

	if refreshErr := c.send(ctx, http.MethodPost, "/auth/refresh", nil, nil); refreshErr != nil {
		c.logger.Warn("session refresh failed", zap.Error(refreshErr))
		if c.notifier != nil {
			c.notifier.Notify(toast.SeverityError, SessionExpiredMessage)
		}
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return c.notify(c.send(ctx, method, path, body, out))
}

// notify forwards structured server errors to the sink. 401s are excluded:
// they either recovered transparently or became ErrSessionExpired above.
func (c *Client) notify(err error) error {
	if err == nil {
		return nil
	}
	var ae *APIError
	if errors.As(err, &ae) && ae.Status != http.StatusUnauthorized {
		if c.notifier != nil {
			c.notifier.Notify(toast.SeverityError, ae.Error())
		} else {
			c.logger.Warn("server error with no notifier", zap.Int("status", ae.Status), zap.String("detail", ae.Detail))
		}
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	switch b := body.(type) {
	case nil:
	case rawBody:
		buf = bytes.NewReader(b)
	default:
		enc, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(enc)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, buf)
	if err != nil {
		return err
	}
	if buf != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Network-level failure: logged only, never toasted.
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// rawBody sends pre-encoded bytes as-is (the day-off endpoint takes a bare
// date string, not an object).
type rawBody []byte

func decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var ae APIError
	if err := json.Unmarshal(b, &ae); err == nil && ae.Status != 0 {
		return &ae
	}
	// No structured payload; synthesize one from the HTTP status so callers
	// still get a {status, detail}-shaped error.
	detail := strings.TrimSpace(string(b))
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Detail: detail}
}
