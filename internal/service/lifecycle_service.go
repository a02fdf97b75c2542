// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

// MeetingLifecycleService drives the meeting status state machine from call
// session events: upcoming -> active -> processing -> completed. Transitions
// are conditional writes so duplicate webhook deliveries cannot re-run a
// transition's side effects.
type MeetingLifecycleService struct {
	meetingRepository domain.MeetingRepository
	agentRepository   domain.AgentRepository
	callProvider      domain.CallProvider
	agentBridge       domain.RealtimeAgentBridge
	pipelineSender    domain.PipelineEventSender
}

// NewMeetingLifecycleService creates a new MeetingLifecycleService.
func NewMeetingLifecycleService(
	meetingRepository domain.MeetingRepository,
	agentRepository domain.AgentRepository,
	callProvider domain.CallProvider,
	agentBridge domain.RealtimeAgentBridge,
	pipelineSender domain.PipelineEventSender,
) *MeetingLifecycleService {
	return &MeetingLifecycleService{
		meetingRepository: meetingRepository,
		agentRepository:   agentRepository,
		callProvider:      callProvider,
		agentBridge:       agentBridge,
		pipelineSender:    pipelineSender,
	}
}

// ServiceReady checks if the service is ready to process requests.
func (s *MeetingLifecycleService) ServiceReady() bool {
	return s.meetingRepository != nil &&
		s.agentRepository != nil &&
		s.callProvider != nil &&
		s.agentBridge != nil &&
		s.pipelineSender != nil
}

// HandleSessionStarted activates an upcoming meeting and connects its agent
// to the live call. A meeting that is not in the upcoming status is treated
// the same as a missing one so the caller cannot distinguish the two.
func (s *MeetingLifecycleService) HandleSessionStarted(ctx context.Context, event *models.CallSessionStartedEvent) error {
	meetingUID := event.Call.Custom.MeetingUID
	if meetingUID == "" {
		return domain.NewValidationError("missing meetingId")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	now := time.Now().UTC()
	matched, err := s.meetingRepository.TransitionStatus(ctx, meetingUID, models.MeetingStatusUpcoming, func(m *models.Meeting) {
		m.Start(now)
	})
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return domain.NewNotFoundError("meeting not found or already completed", err)
		}
		return err
	}
	if !matched {
		// Duplicate delivery or a meeting already past the upcoming status.
		return domain.NewNotFoundError("meeting not found or already completed")
	}

	meeting, err := s.meetingRepository.Get(ctx, meetingUID)
	if err != nil {
		return err
	}

	agent, err := s.agentRepository.Get(ctx, meeting.AgentUID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return domain.NewNotFoundError("agent not found", err)
		}
		return err
	}

	session, err := s.agentBridge.Connect(ctx, meetingUID, agent.UID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect agent to call",
			logging.ErrKey, err, "agent_uid", agent.UID)
		return err
	}

	if err := session.UpdateInstructions(ctx, agent.Instructions); err != nil {
		slog.ErrorContext(ctx, "failed to push agent instructions to realtime session",
			logging.ErrKey, err, "agent_uid", agent.UID)
		return err
	}

	slog.InfoContext(ctx, "meeting session started", "agent_uid", agent.UID)

	return nil
}

// HandleParticipantLeft tears down the call once a participant leaves.
// Teardown is best effort: a provider failure is logged but never surfaced,
// since the session_ended event drives the state transition regardless.
func (s *MeetingLifecycleService) HandleParticipantLeft(ctx context.Context, event *models.CallSessionParticipantLeftEvent) error {
	callType, meetingUID, err := splitCallCID(event.CallCID)
	if err != nil {
		return domain.NewValidationError("missing meetingId", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	if err := s.callProvider.EndCall(ctx, callType, meetingUID); err != nil {
		slog.ErrorContext(ctx, "failed to end call after participant left", logging.ErrKey, err)
		return nil
	}

	slog.InfoContext(ctx, "ended call after participant left")

	return nil
}

// HandleSessionEnded moves an active meeting into the processing status. A
// meeting that is missing or not active is left untouched, which makes
// duplicate deliveries harmless.
func (s *MeetingLifecycleService) HandleSessionEnded(ctx context.Context, event *models.CallSessionEndedEvent) error {
	meetingUID := event.Call.Custom.MeetingUID
	if meetingUID == "" {
		return domain.NewValidationError("missing meetingId")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	now := time.Now().UTC()
	matched, err := s.meetingRepository.TransitionStatus(ctx, meetingUID, models.MeetingStatusActive, func(m *models.Meeting) {
		m.EndSession(now)
	})
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			slog.DebugContext(ctx, "session ended for unknown meeting")
			return nil
		}
		return err
	}
	if !matched {
		slog.DebugContext(ctx, "session ended for meeting that is not active")
		return nil
	}

	slog.InfoContext(ctx, "meeting session ended, awaiting transcription")

	return nil
}

// HandleTranscriptionReady records the transcript location and enqueues the
// post-meeting processing pipeline for the meeting.
func (s *MeetingLifecycleService) HandleTranscriptionReady(ctx context.Context, event *models.CallTranscriptionReadyEvent) error {
	_, meetingUID, err := splitCallCID(event.CallCID)
	if err != nil {
		return domain.NewValidationError("missing meetingId", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, err := s.meetingRepository.Mutate(ctx, meetingUID, func(m *models.Meeting) {
		m.TranscriptURL = event.CallTranscription.URL
	})
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return domain.NewNotFoundError("meeting not found", err)
		}
		return err
	}

	if err := s.pipelineSender.SendMeetingProcessing(ctx, models.MeetingProcessingMessage{
		MeetingUID:    meeting.UID,
		TranscriptURL: meeting.TranscriptURL,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue meeting processing job", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "enqueued meeting processing job", "transcript_url", meeting.TranscriptURL)

	return nil
}

// HandleRecordingReady records the recording location and completes the
// meeting. An unknown meeting is ignored.
func (s *MeetingLifecycleService) HandleRecordingReady(ctx context.Context, event *models.CallRecordingReadyEvent) error {
	_, meetingUID, err := splitCallCID(event.CallCID)
	if err != nil {
		return domain.NewValidationError("missing meetingId", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	now := time.Now().UTC()
	if _, err := s.meetingRepository.Mutate(ctx, meetingUID, func(m *models.Meeting) {
		m.CompleteWithRecording(event.CallRecording.URL, now)
	}); err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			slog.DebugContext(ctx, "recording ready for unknown meeting")
			return nil
		}
		return err
	}

	slog.InfoContext(ctx, "meeting completed with recording", "recording_url", event.CallRecording.URL)

	return nil
}

// splitCallCID splits a composite call CID of the form "type:meetingId" into
// its call type and meeting UID.
func splitCallCID(callCID string) (string, string, error) {
	meetingUID, err := models.MeetingUIDFromCallCID(callCID)
	if err != nil {
		return "", "", err
	}
	callType, _, _ := strings.Cut(callCID, ":")
	return callType, meetingUID, nil
}
