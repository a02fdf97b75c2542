// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// Message represents a domain message interface
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler defines how the service handles incoming messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandlerReady() bool
}

// PipelineEventSender enqueues post-meeting pipeline jobs.
type PipelineEventSender interface {
	SendMeetingProcessing(ctx context.Context, data models.MeetingProcessingMessage) error
}
