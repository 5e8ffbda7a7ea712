// Package backend is the HTTP client for the platform API that owns authentication, the
// webinar catalog, registrations, payments and user profiles.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/catalog"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 10 * time.Second
	// DefaultRateLimit caps outgoing requests per second
	DefaultRateLimit = rate.Limit(50)
	// maxErrorBody bounds how much of an error response is read
	maxErrorBody = 64 * 1024
)

var (
	// ErrUnauthorized is returned when the backend rejects the session.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend status %d", e.Status)
	}
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

// Client talks to the platform backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit sets a custom rate limit (requests per second).
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a backend client. baseURL includes the API prefix, e.g. https://api.example.com/api.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(DefaultRateLimit, int(DefaultRateLimit)),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ catalog.Store = (*Client)(nil)

// do sends a JSON request and decodes a JSON response into out (if non-nil).
// An authenticated principal is sent as a bearer token.
func (c *Client) do(ctx context.Context, method, path string, p auth.Principal, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &body)
	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	apiErr := &APIError{Status: resp.StatusCode, Message: msg}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", catalog.ErrNotFound, apiErr)
	case http.StatusConflict:
		return fmt.Errorf("%w: %w", catalog.ErrAlreadyRegistered, apiErr)
	}
	return apiErr
}

// Message returns the backend's error message for err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
