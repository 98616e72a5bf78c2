// Package api is the authenticated request gateway to the Event Tracker
// backend. Every outbound call goes through a single Client that attaches
// the current credential and classifies failures into the error taxonomy
// defined in errors.go.
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
	"strings"
	"time"

	"eventtracker/internal/client/credstore"
	"eventtracker/internal/logging"

	"github.com/google/uuid"
)

// Transport selects how the credential travels with each request. It is
// fixed at construction time; bearer and cookie are never mixed.
type Transport string

const (
	// TransportBearer reads the token from the credential store before each
	// request and sends it as "Authorization: Bearer <token>".
	TransportBearer Transport = "bearer"
	// TransportCookie relies on the ambient session cookie kept in the
	// client's cookie jar by the backend's Set-Cookie on login.
	TransportCookie Transport = "cookie"
)

const defaultTimeout = 15 * time.Second

// Client is the gateway. It is safe for concurrent use.
type Client struct {
	baseURL   string
	transport Transport
	creds     credstore.Store
	http      *http.Client
	log       logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client (tests, custom TLS).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout overrides the transport default timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New builds a gateway for the given backend origin. For TransportCookie a
// cookie jar is attached so the server-set session cookie rides along on
// every subsequent request.
func New(baseURL string, transport Transport, creds credstore.Store, log logging.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if transport != TransportBearer && transport != TransportCookie {
		return nil, fmt.Errorf("unknown credential transport %q", transport)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: transport,
		creds:     creds,
		http:      &http.Client{Timeout: defaultTimeout},
		log:       log.With("component", "gateway"),
	}

	for _, opt := range opts {
		opt(c)
	}

	if transport == TransportCookie && c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar init: %w", err)
		}
		c.http.Jar = jar
	}

	return c, nil
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string { return c.baseURL }

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil and the response has a body).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.transport == TransportBearer {
		if token := c.creds.Load(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "err", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.classify(ctx, resp, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
	}
	return nil
}

// classify turns a non-2xx response into an *AuthError or *APIError,
// pulling the message out of the backend's {error: string} body when present.
func (c *Client) classify(ctx context.Context, resp *http.Response, method, path string) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &payload)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.log.Debug(ctx, "auth failure", "method", method, "path", path, "status", resp.StatusCode)
		return &AuthError{Status: resp.StatusCode, Message: payload.Error}
	}

	c.log.Debug(ctx, "api rejection", "method", method, "path", path, "status", resp.StatusCode)
	return &APIError{Status: resp.StatusCode, Message: payload.Error}
}
