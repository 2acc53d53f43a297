// Package client is a Go client for the qsphere preview server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/qsphere/pkg/errors"
	"github.com/turtacn/qsphere/pkg/qsphere"
	"github.com/turtacn/qsphere/pkg/types/quantum"
)

// ErrInvalidBaseURL is returned by NewClient for unusable server addresses.
var ErrInvalidBaseURL = errors.New(errors.ErrCodeValidation, "invalid base url")

// Logger defines the logging interface used by the Client
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// Client talks to a qsphere preview server.  It is safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	logger       Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	RequestID  string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("qsphere: %s (HTTP %d): %s [request_id=%s]", e.Code, e.StatusCode, e.Message, e.RequestID)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsInvalidState() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
}

func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// Document is a rendered response body.
type Document struct {
	Body        []byte
	ContentType string
	SceneID     string
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidBaseURL)
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		userAgent:    fmt.Sprintf("qsphere-go-client/%s", qsphere.Version),
		logger:       &noopLogger{},
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Render posts state and returns the HTML document.
func (c *Client) Render(ctx context.Context, state *quantum.Statevector) (*Document, error) {
	return c.do(ctx, http.MethodPost, "/api/v1/qsphere", state)
}

// Scene posts state and returns the encoded scene.  format is "json" or
// "msgpack"; empty means json.
func (c *Client) Scene(ctx context.Context, state *quantum.Statevector, format string) (*Document, error) {
	return c.do(ctx, http.MethodPost, withFormat("/api/v1/qsphere/scene", format), state)
}

// Presets lists the server's preset names.
func (c *Client) Presets(ctx context.Context) ([]string, error) {
	doc, err := c.do(ctx, http.MethodGet, "/api/v1/qsphere/presets", nil)
	if err != nil {
		return nil, err
	}
	var list struct {
		Presets []string `json:"presets"`
	}
	if err := json.Unmarshal(doc.Body, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return list.Presets, nil
}

// RenderPreset returns the HTML document for a named preset.
func (c *Client) RenderPreset(ctx context.Context, name string) (*Document, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/qsphere/presets/"+url.PathEscape(name), nil)
}

// Ready reports whether the server passes its readiness checks.
func (c *Client) Ready(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/readyz", nil)
	return err
}

func withFormat(path, format string) string {
	if format == "" {
		return path
	}
	return path + "?format=" + url.QueryEscape(format)
}

// do performs an HTTP request with retry logic.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Document, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			backoff := c.calculateBackoff(attempt)
			c.logger.Debugf("Retry attempt %d after %v", attempt, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		requestID := uuid.New().String()
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("X-Request-ID", requestID)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Errorf("Request failed: %v", err)
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		c.logger.Debugf("%s %s %d (%v)", method, path, resp.StatusCode, time.Since(start))

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 400 {
			apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
			if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Code == "" {
				apiErr.Message = strings.TrimSpace(string(respBody))
			}
			apiErr.StatusCode = resp.StatusCode
			apiErr.RequestID = requestID

			lastErr = apiErr
			if apiErr.IsServerError() || resp.StatusCode == http.StatusTooManyRequests {
				if wait := retryAfter(resp); wait > 0 && attempt < c.retryMax {
					c.logger.Infof("Server asked to retry after %v", wait)
					select {
					case <-time.After(wait):
					case <-ctx.Done():
						return nil, ctx.Err()
					}
				}
				continue
			}
			return nil, apiErr
		}

		return &Document{
			Body:        respBody,
			ContentType: resp.Header.Get("Content-Type"),
			SceneID:     resp.Header.Get("X-Scene-ID"),
		}, nil
	}

	return nil, lastErr
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if backoff > c.retryWaitMax {
		backoff = c.retryWaitMax
	}
	// Add jitter (0-25% of backoff)
	jitter := int64(backoff / 4)
	if jitter <= 0 {
		return backoff
	}
	return backoff + time.Duration(rand.Int63n(jitter))
}

//Personal.AI order the ending
