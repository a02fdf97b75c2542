// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

// Package stream implements the GetStream video and chat API integration.
package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

const (
	// VideoBaseURL is the base URL for the Stream video API
	VideoBaseURL = "https://video.stream-io-api.com"
	// ChatBaseURL is the base URL for the Stream chat API
	ChatBaseURL = "https://chat.stream-io-api.com"
	// DefaultClientTimeout is the default HTTP client timeout for Stream API requests
	DefaultClientTimeout = 30 * time.Second
	// Default retry configuration
	DefaultMaxRetries        = 3
	DefaultInitialBackoff    = 1 * time.Second
	DefaultMaxBackoff        = 30 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// Config holds the configuration for the Stream client
type Config struct {
	APIKey    string
	APISecret string
	// Optional: override base URLs for testing
	VideoBaseURL string
	ChatBaseURL  string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
	// Optional: retry configuration
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// Client is a server-side Stream API client. Requests authenticate with a
// JWT server token signed with the API secret.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new Stream API client
func NewClient(config Config) *Client {
	if config.VideoBaseURL == "" {
		config.VideoBaseURL = VideoBaseURL
	}
	if config.ChatBaseURL == "" {
		config.ChatBaseURL = ChatBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.InitialBackoff == 0 {
		config.InitialBackoff = DefaultInitialBackoff
	}
	if config.MaxBackoff == 0 {
		config.MaxBackoff = DefaultMaxBackoff
	}
	if config.BackoffMultiplier == 0 {
		config.BackoffMultiplier = DefaultBackoffMultiplier
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// serverToken builds a short-lived server-scoped JWT for API requests.
func (c *Client) serverToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"server": true,
		"iat":    time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(c.config.APISecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign server token: %w", err)
	}
	return signed, nil
}

// shouldRetry determines if an error or HTTP status code should be retried
func shouldRetry(statusCode int, err error) bool {
	// Don't retry if context was cancelled
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Retry on network/connection errors
	if err != nil {
		return true
	}

	// Retry on server errors (5xx) and rate limiting (429)
	if statusCode >= 500 && statusCode < 600 {
		return true
	}
	if statusCode == http.StatusTooManyRequests {
		return true
	}

	// Don't retry on client errors (4xx)
	return false
}

// calculateBackoff calculates the backoff duration for a retry attempt with jitter
func (c *Client) calculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		return c.config.InitialBackoff
	}

	backoff := float64(c.config.InitialBackoff) * math.Pow(c.config.BackoffMultiplier, float64(attempt))
	if time.Duration(backoff) > c.config.MaxBackoff {
		backoff = float64(c.config.MaxBackoff)
	}

	// Add jitter (up to ±25%) to prevent thundering herd
	jitter := backoff * 0.25 * (rand.Float64()*2 - 1)
	backoffWithJitter := time.Duration(backoff + jitter)
	if backoffWithJitter < c.config.InitialBackoff {
		backoffWithJitter = c.config.InitialBackoff
	}

	return backoffWithJitter
}

// closeAndReplaceResponse closes the old response if it exists and returns the new one
func closeAndReplaceResponse(oldResp, newResp *http.Response) *http.Response {
	if oldResp != nil && newResp != nil {
		_ = oldResp.Body.Close()
	}
	return newResp
}

// doRequest performs an authenticated HTTP request against the given base URL
// with bounded retries on transient failures.
func (c *Client) doRequest(ctx context.Context, method, baseURL, path string, body any) (*http.Response, error) {
	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	reqURL, err := url.Parse(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request URL: %w", err)
	}
	query := reqURL.Query()
	query.Set("api_key", c.config.APIKey)
	reqURL.RawQuery = query.Encode()

	token, err := c.serverToken()
	if err != nil {
		return nil, err
	}

	var lastErr error
	var lastResp *http.Response

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		var bodyReader io.Reader
		if jsonBody != nil {
			bodyReader = bytes.NewReader(jsonBody)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", token)
		req.Header.Set("Stream-Auth-Type", "jwt")

		startTime := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(startTime)

		// A response from a superseded attempt is no longer needed.
		lastErr, lastResp = err, closeAndReplaceResponse(lastResp, resp)

		if err == nil && resp != nil && !shouldRetry(resp.StatusCode, nil) {
			slog.DebugContext(ctx, "Stream API request completed",
				"method", method,
				"path", path,
				"status", resp.StatusCode,
				"duration", duration.String(),
				"attempt", attempt+1,
			)
			return resp, nil
		}

		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode
		}

		if !shouldRetry(statusCode, err) {
			slog.WarnContext(ctx, "Stream API request failed with non-retryable error",
				"method", method,
				"path", path,
				"status", statusCode,
				"duration", duration.String(),
				"attempt", attempt+1,
				logging.ErrKey, err)
			break
		}

		if attempt < c.config.MaxRetries {
			backoff := c.calculateBackoff(attempt)
			slog.WarnContext(ctx, "Stream API request failed, retrying",
				"method", method,
				"path", path,
				"status", statusCode,
				"duration", duration.String(),
				"attempt", attempt+1,
				"backoff", backoff.String(),
				logging.ErrKey, err)

			select {
			case <-ctx.Done():
				if lastResp != nil {
					_ = lastResp.Body.Close()
				}
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			continue
		}

		slog.ErrorContext(ctx, "Stream API request failed after all retries",
			"method", method,
			"path", path,
			"status", statusCode,
			"attempts", attempt+1,
			logging.ErrKey, err,
			logging.PriorityCritical())
	}

	if lastErr != nil {
		if lastResp != nil {
			_ = lastResp.Body.Close()
		}
		return nil, fmt.Errorf("request failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
	}
	return lastResp, nil
}

// parseErrorResponse attempts to parse a Stream API error response
func parseErrorResponse(body []byte) error {
	var errResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("stream API error (code %d): %s", errResp.Code, errResp.Message)
	}
	return fmt.Errorf("stream API error: %s", string(body))
}
