// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// WebhookService authenticates inbound provider webhooks and dispatches the
// decoded events to the lifecycle and chat services.
type WebhookService struct {
	webhookVerifier  domain.WebhookVerifier
	lifecycleService *MeetingLifecycleService
	chatService      *ChatResponderService
}

// WebhookRequest represents the webhook processing request.
type WebhookRequest struct {
	Signature string
	APIKey    string
	RawBody   []byte
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(
	webhookVerifier domain.WebhookVerifier,
	lifecycleService *MeetingLifecycleService,
	chatService *ChatResponderService,
) *WebhookService {
	return &WebhookService{
		webhookVerifier:  webhookVerifier,
		lifecycleService: lifecycleService,
		chatService:      chatService,
	}
}

// ServiceReady checks if the service is ready to process requests.
func (s *WebhookService) ServiceReady() bool {
	return s.webhookVerifier != nil &&
		s.lifecycleService != nil &&
		s.chatService != nil
}

// ProcessWebhookEvent verifies and processes a provider webhook delivery.
// Event types the service does not model are acknowledged without action so
// the provider does not retry them.
func (s *WebhookService) ProcessWebhookEvent(ctx context.Context, req WebhookRequest) error {
	if req.Signature == "" || req.APIKey == "" {
		return domain.NewValidationError("missing signature or API key")
	}

	if !s.webhookVerifier.VerifyWebhook(req.RawBody, req.Signature) {
		return domain.NewUnauthorizedError("invalid signature")
	}

	var payload map[string]any
	if err := json.Unmarshal(req.RawBody, &payload); err != nil {
		return domain.NewValidationError("invalid JSON payload", err)
	}

	eventType, _ := payload["type"].(string)

	event, err := models.DecodeEvent(eventType, payload)
	if err != nil {
		return domain.NewValidationError("invalid event payload", err)
	}
	if event == nil {
		slog.DebugContext(ctx, "ignoring unhandled webhook event type", "event_type", eventType)
		return nil
	}

	slog.DebugContext(ctx, "processing webhook event", "event_type", eventType)

	switch e := event.(type) {
	case *models.CallSessionStartedEvent:
		return s.lifecycleService.HandleSessionStarted(ctx, e)
	case *models.CallSessionParticipantLeftEvent:
		return s.lifecycleService.HandleParticipantLeft(ctx, e)
	case *models.CallSessionEndedEvent:
		return s.lifecycleService.HandleSessionEnded(ctx, e)
	case *models.CallTranscriptionReadyEvent:
		return s.lifecycleService.HandleTranscriptionReady(ctx, e)
	case *models.CallRecordingReadyEvent:
		return s.lifecycleService.HandleRecordingReady(ctx, e)
	case *models.MessageNewEvent:
		return s.chatService.HandleMessageNew(ctx, e)
	default:
		slog.DebugContext(ctx, "decoded event has no handler", "event_type", eventType)
		return nil
	}
}
