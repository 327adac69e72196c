package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const maxResponseBytes = 4 << 20

// Backend holds what every session shares when talking to the REST API.
type Backend struct {
	baseURL string
	http    *http.Client
	headers http.Header
	logger  *slog.Logger
}

// NewBackend creates a backend for baseURL, e.g. http://localhost:5000/api.
// A zero timeout leaves the transport default in place.
func NewBackend(baseURL string, timeout time.Duration, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")
	return &Backend{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		headers: headers,
		logger:  logger.With("component", "API"),
	}
}

// Client returns a client that replays the given backend cookie header
// ("name=value; other=value") on each call.
func (b *Backend) Client(cookieHeader string) *Client {
	c := &Client{backend: b, cookies: map[string]string{}}
	if cookieHeader == "" {
		return c
	}
	parsed, err := http.ParseCookie(cookieHeader)
	if err != nil {
		b.logger.Warn("Discarding unreadable backend cookies", "error", err)
		return c
	}
	for _, ck := range parsed {
		c.cookies[ck.Name] = ck.Value
	}
	return c
}

// Client issues calls on behalf of one browser session.
type Client struct {
	backend *Backend

	mu      sync.Mutex
	cookies map[string]string
}

// Call carries the optional parts of a request.
type Call struct {
	Query  url.Values
	Header http.Header
	Body   any
}

// CookieHeader serializes the backend cookies for storage in the browser session.
func (c *Client) CookieHeader() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.cookies))
	for name := range c.cookies {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, (&http.Cookie{Name: name, Value: c.cookies[name]}).String())
	}
	return strings.Join(parts, "; ")
}

// Request sends one JSON call and decodes a 2xx body into out (nil to discard).
// Any failure is logged before it is returned.
func (c *Client) Request(ctx context.Context, method, endpoint string, call Call, out any) error {
	requestID := uuid.NewString()
	start := time.Now()
	status, err := c.do(ctx, method, endpoint, call, out, requestID)
	if err != nil {
		c.backend.logger.Error("API request failed",
			"method", method,
			"endpoint", endpoint,
			"status", status,
			"request_id", requestID,
			"error", err)
		return err
	}
	c.backend.logger.Debug("API request",
		"method", method,
		"endpoint", endpoint,
		"status", status,
		"request_id", requestID,
		"duration", time.Since(start))
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, call Call, out any, requestID string) (int, error) {
	target := c.backend.baseURL + endpoint
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	var body io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return 0, &Error{Message: "Could not encode request", Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, &Error{Message: fallbackMessage, Err: err}
	}
	for k, v := range c.backend.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	for k, v := range call.Header {
		req.Header[k] = append([]string(nil), v...)
	}
	req.Header.Set("X-Request-ID", requestID)
	c.mu.Lock()
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	c.mu.Unlock()

	resp, err := c.backend.http.Do(req)
	if err != nil {
		return 0, &Error{Message: "Unable to reach the maintenance server", Err: err}
	}
	defer resp.Body.Close()
	c.storeCookies(resp.Cookies())

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, &Error{Status: resp.StatusCode, Message: fallbackMessage, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		msg := fallbackMessage
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		return resp.StatusCode, &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, &Error{
			Status:  resp.StatusCode,
			Message: "Invalid response from server",
			Err:     fmt.Errorf("decode %s %s: %w", method, endpoint, err),
		}
	}
	if v, ok := out.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return resp.StatusCode, &Error{
				Status:  resp.StatusCode,
				Message: "Invalid response from server: " + err.Error(),
				Err:     err,
			}
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) storeCookies(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ck := range cookies {
		expired := !ck.Expires.IsZero() && ck.Expires.Before(time.Now())
		if ck.MaxAge < 0 || ck.Value == "" || expired {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
}
