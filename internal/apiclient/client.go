// Package apiclient talks to the remote book API on behalf of a signed-in
// browser session. It is the only place that knows the API's wire shapes.
package apiclient

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

	"github.com/rs/zerolog"

	"github.com/bookshelf/bookshelf-web/internal/metrics"
)

const maxBodyBytes = 10 << 20 // 10MB

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api returned status %d", e.Status)
	}
	return fmt.Sprintf("remote api returned status %d: %s", e.Status, e.Message)
}

// Message returns the server-supplied message carried by err, or fallback
// when err is a network failure, a decode failure, or an APIError without a
// message.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Client is a thin JSON-over-HTTP client for the remote book API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for baseURL with the given per-request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a Client that sends requests through hc.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// do sends one request and returns the raw body of a 2xx response. Any other
// status becomes an *APIError.
func (c *Client) do(ctx context.Context, op, method, path, token string, payload any) ([]byte, error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APICallsTotal.WithLabelValues(op, "network").Inc()
		logger.Warn().Err(err).Str("operation", op).Msg("remote api unreachable")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.APICallsTotal.WithLabelValues(op, "network").Inc()
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}

	logger.Debug().
		Str("operation", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("remote api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.APICallsTotal.WithLabelValues(op, "rejected").Inc()
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	metrics.APICallsTotal.WithLabelValues(op, "ok").Inc()
	return raw, nil
}

// errorMessage pulls "message" (or "error") out of a JSON error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
