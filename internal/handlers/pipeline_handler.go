// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

// Package handlers contains the NATS message handlers for the meeting
// intelligence service.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
	"github.com/convogenius/meeting-intelligence-service/internal/service"
)

// PipelineHandler consumes post-meeting processing jobs from NATS and runs
// them through the pipeline service.
type PipelineHandler struct {
	pipelineService *service.PipelineService
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(pipelineService *service.PipelineService) *PipelineHandler {
	return &PipelineHandler{
		pipelineService: pipelineService,
	}
}

// HandlerReady implements [domain.MessageHandler].
func (h *PipelineHandler) HandlerReady() bool {
	return h.pipelineService != nil && h.pipelineService.ServiceReady()
}

// HandleMessage implements [domain.MessageHandler].
func (h *PipelineHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	handlers := map[string]func(ctx context.Context, msg domain.Message) error{
		models.MeetingProcessingSubject: h.HandleMeetingProcessing,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown subject")
		return
	}

	if err := handler(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "error handling message", logging.ErrKey, err)
		return
	}

	slog.DebugContext(ctx, "handled NATS message")
}

// HandleMeetingProcessing decodes and runs one pipeline job.
func (h *PipelineHandler) HandleMeetingProcessing(ctx context.Context, msg domain.Message) error {
	var job models.MeetingProcessingMessage
	if err := json.Unmarshal(msg.Data(), &job); err != nil {
		slog.ErrorContext(ctx, "invalid meeting processing message", logging.ErrKey, err)
		return domain.NewValidationError("invalid meeting processing message", err)
	}

	return h.pipelineService.ProcessMeeting(ctx, job)
}
