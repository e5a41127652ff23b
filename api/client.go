// Package api implements the JSON HTTP client core. It builds requests
// against the single configured backend endpoint, attaches bearer
// tokens, classifies failures into NetworkError/HTTPError, and
// broadcasts the unauthorized signal whenever any call comes back 401.
//
// The client performs no schema validation: a 2xx body is decoded into
// whatever the caller asked for and shape-checking is the caller's job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	headerAccept      = "Accept"
	headerContentType = "Content-Type"
	headerRequestID   = "X-Request-Id"
	contentTypeJSON   = "application/json"

	defaultTimeout = 30 * time.Second
)

// Options carries per-call settings. A zero Options means an
// unauthenticated request.
type Options struct {
	Token string // bearer token attached as Authorization header when non-empty

	// SkipUnauthorizedSignal suppresses the 401 broadcast for this call.
	// Credential checks use it: a rejected login is not a revoked
	// session and must not log out whoever is currently signed in.
	SkipUnauthorizedSignal bool
}

// Client executes JSON requests against one base endpoint.
type Client struct {
	base         string
	httpClient   *http.Client
	unauthorized *Signal
	log          zerolog.Logger
}

// ClientOption modifies a Client at construction time.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client (primarily for
// tests and custom transports).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger replaces the client's logger.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a Client for the given base endpoint. unauthorized may be
// nil when no 401 handling is wanted (e.g. one-shot tools).
func New(baseEndpoint string, unauthorized *Signal, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseEndpoint) == "" {
		return nil, errors.New("[api.New] base endpoint is required")
	}

	c := &Client{
		base:         baseEndpoint,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		unauthorized: unauthorized,
		log:          log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Get executes a GET request and decodes the 2xx response body into T.
func Get[T any](ctx context.Context, c *Client, path string, opt *Options) (T, error) {
	return do[T](ctx, c, http.MethodGet, path, nil, opt)
}

// Post executes a POST request with a JSON body and decodes the 2xx
// response body into T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opt *Options) (T, error) {
	return do[T](ctx, c, http.MethodPost, path, body, opt)
}

// Patch executes a PATCH request with a JSON body and decodes the 2xx
// response body into T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opt *Options) (T, error) {
	return do[T](ctx, c, http.MethodPatch, path, body, opt)
}

func do[T any](ctx context.Context, c *Client, method, path string, body any, opt *Options) (T, error) {
	var zero T

	raw, err := c.execute(ctx, method, path, body, opt)
	if err != nil {
		return zero, err
	}
	if len(raw) == 0 {
		return zero, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, errors.Wrapf(err, "[api.do] decoding %s %s response", method, path)
	}
	return out, nil
}

func (c *Client) execute(ctx context.Context, method, path string, body any, opt *Options) ([]byte, error) {
	requestID := uuid.New().String()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "[Client.execute] encoding %s %s body", method, path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.execute] building %s %s", method, path)
	}

	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if opt != nil && opt.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opt.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("request_id", requestID).Str("method", method).Str("path", path).Err(err).Msg("transport failure")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	// The broadcast happens before the failure reaches the caller so the
	// session manager has already reacted by the time the caller sees the
	// error.
	if resp.StatusCode == http.StatusUnauthorized && c.unauthorized != nil && (opt == nil || !opt.SkipUnauthorizedSignal) {
		c.unauthorized.Notify()
	}

	bodyText := strings.TrimSpace(string(raw))
	if bodyText == "" {
		bodyText = resp.Status
	}
	c.log.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("request failed")
	return nil, &HTTPError{Status: resp.StatusCode, Body: bodyText}
}

// resolve joins path onto the configured base endpoint with exactly one
// separating slash. Absolute URLs pass through untouched.
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(c.base, "/") + "/" + strings.TrimLeft(path, "/")
}
