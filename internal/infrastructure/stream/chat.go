// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

// Ensure Client implements the chat provider contract
var _ domain.ChatProvider = (*Client)(nil)

type chatMessagePayload struct {
	ID     string `json:"id,omitempty"`
	Text   string `json:"text"`
	UserID string `json:"user_id,omitempty"`
}

type chatUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

type queryChannelResponse struct {
	Messages []struct {
		ID        string     `json:"id"`
		Text      string     `json:"text"`
		CreatedAt *time.Time `json:"created_at"`
		User      *chatUser  `json:"user"`
	} `json:"messages"`
}

func channelPath(channelType, channelID, suffix string) string {
	return "/channels/" + url.PathEscape(channelType) + "/" + url.PathEscape(channelID) + suffix
}

// RecentMessages returns up to limit of the most recent messages in the
// channel, oldest first.
func (c *Client) RecentMessages(ctx context.Context, channelType, channelID string, limit int) ([]models.ChannelMessage, error) {
	ctx = logging.AppendCtx(ctx, slog.String("stream_operation", "query_channel"))

	request := map[string]any{
		"state": true,
		"messages": map[string]any{
			"limit": limit,
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.config.ChatBaseURL, channelPath(channelType, channelID, "/query"), request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query channel", logging.ErrKey, err, "channel_id", channelID)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(body)
		slog.ErrorContext(ctx, "Stream API returned error querying channel",
			logging.ErrKey, err, "status", resp.StatusCode, "channel_id", channelID)
		return nil, err
	}

	var channelResp queryChannelResponse
	if err := json.NewDecoder(resp.Body).Decode(&channelResp); err != nil {
		return nil, fmt.Errorf("failed to decode channel response: %w", err)
	}

	messages := make([]models.ChannelMessage, 0, len(channelResp.Messages))
	for _, msg := range channelResp.Messages {
		message := models.ChannelMessage{
			ID:        msg.ID,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		}
		if msg.User != nil {
			message.UserID = msg.User.ID
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// SendMessage posts a message to the channel on behalf of the given user.
func (c *Client) SendMessage(ctx context.Context, channelType, channelID string, message models.OutboundChannelMessage) error {
	ctx = logging.AppendCtx(ctx, slog.String("stream_operation", "send_message"))

	request := map[string]any{
		"message": chatMessagePayload{
			ID:     message.ID,
			Text:   message.Text,
			UserID: message.User.ID,
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.config.ChatBaseURL, channelPath(channelType, channelID, "/message"), request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send channel message", logging.ErrKey, err, "channel_id", channelID)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(body)
		slog.ErrorContext(ctx, "Stream API returned error sending message",
			logging.ErrKey, err, "status", resp.StatusCode, "channel_id", channelID)
		return err
	}

	slog.InfoContext(ctx, "sent channel message", "channel_id", channelID, "user_id", message.User.ID)
	return nil
}

// UpsertUser creates or updates a chat user record.
func (c *Client) UpsertUser(ctx context.Context, user models.ChannelUser) error {
	ctx = logging.AppendCtx(ctx, slog.String("stream_operation", "upsert_user"))

	request := map[string]any{
		"users": map[string]chatUser{
			user.ID: {
				ID:    user.ID,
				Name:  user.Name,
				Image: user.Image,
			},
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.config.ChatBaseURL, "/users", request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upsert chat user", logging.ErrKey, err, "user_id", user.ID)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(body)
		slog.ErrorContext(ctx, "Stream API returned error upserting user",
			logging.ErrKey, err, "status", resp.StatusCode, "user_id", user.ID)
		return err
	}

	return nil
}
