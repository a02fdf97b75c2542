// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package stream

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

// DefaultCallType is the call type used for meeting calls.
const DefaultCallType = "default"

// RealtimeBridge attaches an OpenAI realtime agent to a live call through
// the Stream video API. The provider hosts the realtime connection; this
// service only instructs it to join and configures the session.
type RealtimeBridge struct {
	client       *Client
	openAIAPIKey string
}

// Ensure RealtimeBridge implements the agent bridge contract
var _ domain.RealtimeAgentBridge = (*RealtimeBridge)(nil)

// NewRealtimeBridge creates a new realtime agent bridge
func NewRealtimeBridge(client *Client, openAIAPIKey string) *RealtimeBridge {
	return &RealtimeBridge{
		client:       client,
		openAIAPIKey: openAIAPIKey,
	}
}

func realtimePath(callID, suffix string) string {
	return "/video/call/" + DefaultCallType + "/" + url.PathEscape(callID) + "/openai" + suffix
}

// Connect joins the agent to the call as a realtime participant.
func (b *RealtimeBridge) Connect(ctx context.Context, callID, agentUID string) (domain.RealtimeSession, error) {
	ctx = logging.AppendCtx(ctx, slog.String("stream_operation", "connect_agent"))

	request := map[string]any{
		"agent_user_id":  agentUID,
		"openai_api_key": b.openAIAPIKey,
	}

	resp, err := b.client.doRequest(ctx, http.MethodPost, b.client.config.VideoBaseURL, realtimePath(callID, "/connect"), request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect realtime agent", logging.ErrKey, err,
			"call_id", callID, "agent_uid", agentUID)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(body)
		slog.ErrorContext(ctx, "Stream API returned error connecting agent",
			logging.ErrKey, err, "status", resp.StatusCode, "call_id", callID)
		return nil, err
	}

	slog.InfoContext(ctx, "connected realtime agent to call", "call_id", callID, "agent_uid", agentUID)

	return &realtimeSession{bridge: b, callID: callID}, nil
}

// realtimeSession is a live agent session attached to one call.
type realtimeSession struct {
	bridge *RealtimeBridge
	callID string
}

// UpdateInstructions pushes a session-configuration update carrying the
// agent's instructions as the system prompt.
func (s *realtimeSession) UpdateInstructions(ctx context.Context, instructions string) error {
	ctx = logging.AppendCtx(ctx, slog.String("stream_operation", "update_agent_session"))

	request := map[string]any{
		"session": map[string]any{
			"instructions": instructions,
		},
	}

	resp, err := s.bridge.client.doRequest(ctx, http.MethodPost, s.bridge.client.config.VideoBaseURL, realtimePath(s.callID, "/session"), request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update agent session", logging.ErrKey, err, "call_id", s.callID)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(body)
		slog.ErrorContext(ctx, "Stream API returned error updating agent session",
			logging.ErrKey, err, "status", resp.StatusCode, "call_id", s.callID)
		return err
	}

	return nil
}
