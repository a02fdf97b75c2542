// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// WebhookVerifier authenticates inbound provider events against the shared
// webhook secret before any state mutation happens.
type WebhookVerifier interface {
	VerifyWebhook(body []byte, signature string) bool
}

// CallProvider controls live call sessions at the video provider.
type CallProvider interface {
	// EndCall forces session teardown for the given call. Used as a
	// best-effort cleanup when a participant leaves.
	EndCall(ctx context.Context, callType, callID string) error
}

// RealtimeSession is a live LLM-backed connection attached to a call.
type RealtimeSession interface {
	// UpdateInstructions pushes a session-configuration update carrying the
	// agent's instructions as the system prompt.
	UpdateInstructions(ctx context.Context, instructions string) error
}

// RealtimeAgentBridge attaches an LLM-backed participant to a live call,
// identified by the agent's UID.
type RealtimeAgentBridge interface {
	Connect(ctx context.Context, callID, agentUID string) (RealtimeSession, error)
}

// ChatProvider is the chat side of the call provider: channel history,
// outbound messages, and channel user management.
type ChatProvider interface {
	// RecentMessages returns up to limit of the most recent messages in the
	// channel, oldest first.
	RecentMessages(ctx context.Context, channelType, channelID string, limit int) ([]models.ChannelMessage, error)
	SendMessage(ctx context.Context, channelType, channelID string, message models.OutboundChannelMessage) error
	UpsertUser(ctx context.Context, user models.ChannelUser) error
}
