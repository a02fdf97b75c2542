// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

// Package openai implements the OpenAI chat completions integration.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

const (
	// BaseURL is the base URL for the OpenAI API
	BaseURL = "https://api.openai.com/v1"
	// DefaultModel is the chat model used when the caller does not name one
	DefaultModel = "gpt-4o"
	// DefaultClientTimeout is the default HTTP client timeout. Completions
	// over long transcripts can take a while.
	DefaultClientTimeout = 2 * time.Minute
)

// Config holds the configuration for the OpenAI client
type Config struct {
	APIKey string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override the default chat model
	Model string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
}

// Client is an OpenAI chat completions client
type Client struct {
	httpClient *http.Client
	config     Config
}

// Ensure Client implements the LLM contract
var _ domain.LLMClient = (*Client)(nil)

// NewClient creates a new OpenAI API client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// Model returns the configured default chat model.
func (c *Client) Model() string {
	return c.config.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion issues one chat completion and returns the first choice's
// text content. An empty completion is returned as empty content so callers
// decide its severity.
func (c *Client) ChatCompletion(ctx context.Context, model string, messages []domain.LLMMessage) (string, error) {
	if model == "" {
		model = c.config.Model
	}

	request := chatCompletionRequest{
		Model:    model,
		Messages: make([]chatMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		request.Messages = append(request.Messages, chatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	jsonBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "OpenAI API request failed", logging.ErrKey, err, "model", model)
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(resp.StatusCode, body)
		slog.ErrorContext(ctx, "OpenAI API returned error",
			logging.ErrKey, err, "status", resp.StatusCode, "model", model)
		return "", err
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	slog.DebugContext(ctx, "OpenAI completion finished",
		"model", model,
		"duration", time.Since(startTime).String(),
		"message_count", len(messages),
	)

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

// parseErrorResponse attempts to parse an OpenAI API error response
func parseErrorResponse(statusCode int, body []byte) error {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return fmt.Errorf("openai API error (%s): %s", errResp.Error.Type, errResp.Error.Message)
	}
	return fmt.Errorf("openai API error: status %d", statusCode)
}
