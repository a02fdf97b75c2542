// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
	"github.com/convogenius/meeting-intelligence-service/pkg/concurrent"
	"github.com/convogenius/meeting-intelligence-service/pkg/utils"
)

// Pipeline step names. Step results are checkpointed under these names so a
// redelivered job resumes from the first incomplete step.
const (
	stepFetchTranscript = "fetch-transcript"
	stepParseTranscript = "parse-transcript"
	stepAddSpeakers     = "add-speakers"
	stepSummarize       = "summarize"
	stepSaveSummary     = "save-summary"
	stepSendEmail       = "send-email-notification"
)

const defaultTranscriptFetchTimeout = 30 * time.Second

// PipelineService runs the post-meeting processing pipeline: fetch and parse
// the transcript, resolve speakers, summarize with the LLM, persist the
// summary, and email the meeting owner.
type PipelineService struct {
	meetingRepository domain.MeetingRepository
	agentRepository   domain.AgentRepository
	userRepository    domain.UserRepository
	pipelineState     domain.PipelineStateRepository
	llmClient         domain.LLMClient
	emailService      domain.EmailService
	httpClient        *http.Client
}

// NewPipelineService creates a new PipelineService. A nil httpClient falls
// back to a client with a bounded timeout for transcript downloads.
func NewPipelineService(
	meetingRepository domain.MeetingRepository,
	agentRepository domain.AgentRepository,
	userRepository domain.UserRepository,
	pipelineState domain.PipelineStateRepository,
	llmClient domain.LLMClient,
	emailService domain.EmailService,
	httpClient *http.Client,
) *PipelineService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTranscriptFetchTimeout}
	}
	return &PipelineService{
		meetingRepository: meetingRepository,
		agentRepository:   agentRepository,
		userRepository:    userRepository,
		pipelineState:     pipelineState,
		llmClient:         llmClient,
		emailService:      emailService,
		httpClient:        httpClient,
	}
}

// ServiceReady checks if the service is ready to process requests.
func (s *PipelineService) ServiceReady() bool {
	return s.meetingRepository != nil &&
		s.agentRepository != nil &&
		s.userRepository != nil &&
		s.pipelineState != nil &&
		s.llmClient != nil &&
		s.emailService != nil
}

// ProcessMeeting runs the pipeline for one meeting. Each step is memoized
// against the pipeline state store, so a rerun after a mid-pipeline failure
// skips the steps that already completed.
func (s *PipelineService) ProcessMeeting(ctx context.Context, msg models.MeetingProcessingMessage) error {
	if msg.MeetingUID == "" || msg.TranscriptURL == "" {
		return domain.NewValidationError("missing meeting UID or transcript URL")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", msg.MeetingUID))

	rawTranscript, err := runStep(ctx, s.pipelineState, msg.MeetingUID, stepFetchTranscript, func(ctx context.Context) (string, error) {
		return s.fetchTranscript(ctx, msg.TranscriptURL)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", stepFetchTranscript, err)
	}

	transcript, err := runStep(ctx, s.pipelineState, msg.MeetingUID, stepParseTranscript, func(ctx context.Context) ([]models.TranscriptItem, error) {
		return models.ParseTranscriptJSONL(rawTranscript)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", stepParseTranscript, err)
	}

	enriched, err := runStep(ctx, s.pipelineState, msg.MeetingUID, stepAddSpeakers, func(ctx context.Context) ([]models.EnrichedTranscriptItem, error) {
		return s.addSpeakers(ctx, transcript)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", stepAddSpeakers, err)
	}

	summary, err := runStep(ctx, s.pipelineState, msg.MeetingUID, stepSummarize, func(ctx context.Context) (string, error) {
		return s.summarize(ctx, enriched)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", stepSummarize, err)
	}

	if _, err := runStep(ctx, s.pipelineState, msg.MeetingUID, stepSaveSummary, func(ctx context.Context) (bool, error) {
		if _, err := s.meetingRepository.Mutate(ctx, msg.MeetingUID, func(m *models.Meeting) {
			m.Summary = summary
		}); err != nil {
			return false, err
		}
		return true, nil
	}); err != nil {
		return fmt.Errorf("%s: %w", stepSaveSummary, err)
	}

	slog.InfoContext(ctx, "meeting summary saved")

	// The summary is durable at this point. An email failure is retried on
	// redelivery, never rolled back.
	if _, err := runStep(ctx, s.pipelineState, msg.MeetingUID, stepSendEmail, func(ctx context.Context) (bool, error) {
		return s.sendSummaryNotification(ctx, msg.MeetingUID, summary, enriched)
	}); err != nil {
		return fmt.Errorf("%s: %w", stepSendEmail, err)
	}

	return nil
}

// fetchTranscript downloads the raw transcript payload.
func (s *PipelineService) fetchTranscript(ctx context.Context, transcriptURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, transcriptURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating transcript request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching transcript: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading transcript body: %w", err)
	}

	return string(body), nil
}

// addSpeakers resolves each distinct speaker id against the user and agent
// stores and annotates every transcript item with the speaker's display name.
// The two stores use disjoint id namespaces, so the lookups run concurrently
// and merge without conflict. Unresolved speakers fall back to a placeholder.
func (s *PipelineService) addSpeakers(ctx context.Context, transcript []models.TranscriptItem) ([]models.EnrichedTranscriptItem, error) {
	seen := make(map[string]bool)
	speakerIDs := make([]string, 0, len(transcript))
	for _, item := range transcript {
		if !seen[item.SpeakerID] {
			seen[item.SpeakerID] = true
			speakerIDs = append(speakerIDs, item.SpeakerID)
		}
	}

	var (
		users  []*models.User
		agents []*models.Agent
	)
	pool := concurrent.NewWorkerPool(2)
	err := pool.Run(ctx,
		func() error {
			var err error
			users, err = s.userRepository.ListByUIDs(ctx, speakerIDs)
			return err
		},
		func() error {
			var err error
			agents, err = s.agentRepository.ListByUIDs(ctx, speakerIDs)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("resolving speakers: %w", err)
	}

	names := make(map[string]string, len(users)+len(agents))
	for _, user := range users {
		names[user.UID] = user.Name
	}
	for _, agent := range agents {
		names[agent.UID] = agent.Name
	}

	enriched := make([]models.EnrichedTranscriptItem, 0, len(transcript))
	for _, item := range transcript {
		name, ok := names[item.SpeakerID]
		if !ok {
			name = models.UnknownSpeakerName
		}
		enriched = append(enriched, models.EnrichedTranscriptItem{
			TranscriptItem: item,
			User:           models.SpeakerInfo{Name: name},
		})
	}

	return enriched, nil
}

// summarize generates the meeting summary from the enriched transcript.
func (s *PipelineService) summarize(ctx context.Context, enriched []models.EnrichedTranscriptItem) (string, error) {
	transcriptJSON, err := json.Marshal(enriched)
	if err != nil {
		return "", fmt.Errorf("encoding transcript: %w", err)
	}

	summary, err := s.llmClient.ChatCompletion(ctx, "", []domain.LLMMessage{
		{Role: domain.LLMRoleSystem, Content: summarizerSystemPrompt},
		{Role: domain.LLMRoleUser, Content: "Summarize the following transcript: " + string(transcriptJSON)},
	})
	if err != nil {
		return "", err
	}
	if summary == "" {
		return "", fmt.Errorf("summarizer returned no output")
	}

	return summary, nil
}

// sendSummaryNotification emails the summary digest to the meeting owner. An
// owner without an email address is skipped without failing the pipeline.
func (s *PipelineService) sendSummaryNotification(ctx context.Context, meetingUID, summary string, enriched []models.EnrichedTranscriptItem) (bool, error) {
	meeting, err := s.meetingRepository.Get(ctx, meetingUID)
	if err != nil {
		return false, fmt.Errorf("fetching meeting for notification: %w", err)
	}

	owner, err := s.userRepository.Get(ctx, meeting.UserUID)
	if err != nil {
		return false, fmt.Errorf("fetching meeting owner: %w", err)
	}

	if owner.Email == "" {
		slog.DebugContext(ctx, "meeting owner has no email address, skipping notification", "user_uid", owner.UID)
		return false, nil
	}

	notification := domain.EmailSummaryNotification{
		RecipientEmail: owner.Email,
		RecipientName:  owner.Name,
		MeetingTitle:   meeting.Name,
		MeetingDate:    utils.TimeValue(meeting.StartedAt),
		Summary:        summary,
		Transcript:     formatTranscriptText(enriched),
		ActionItems:    ExtractActionItems(summary),
		KeyPoints:      ExtractKeyPoints(summary),
		RecordingURL:   meeting.RecordingURL,
	}

	if err := s.emailService.SendSummaryNotification(ctx, notification); err != nil {
		return false, fmt.Errorf("sending summary notification: %w", err)
	}

	slog.InfoContext(ctx, "sent summary notification", "recipient", owner.Email)

	return true, nil
}

// formatTranscriptText renders the enriched transcript as readable
// "[name]: text" lines for the email digest.
func formatTranscriptText(enriched []models.EnrichedTranscriptItem) string {
	lines := make([]string, 0, len(enriched))
	for _, item := range enriched {
		lines = append(lines, fmt.Sprintf("[%s]: %s", item.User.Name, item.Text))
	}
	return strings.Join(lines, "\n")
}

// runStep executes fn once per run and checkpoints its JSON-encoded result.
// A step that already has a checkpoint returns the stored result without
// re-executing fn. Checkpoint store failures degrade to re-execution rather
// than failing the run.
func runStep[T any](ctx context.Context, state domain.PipelineStateRepository, runUID, step string, fn func(context.Context) (T, error)) (T, error) {
	var result T

	stored, ok, err := state.GetStepResult(ctx, runUID, step)
	if err != nil {
		slog.WarnContext(ctx, "failed to read pipeline step checkpoint", logging.ErrKey, err, "step", step)
	} else if ok {
		if err := json.Unmarshal(stored, &result); err == nil {
			slog.DebugContext(ctx, "reusing pipeline step checkpoint", "step", step)
			return result, nil
		}
		slog.WarnContext(ctx, "discarding unreadable pipeline step checkpoint", "step", step)
	}

	result, err = fn(ctx)
	if err != nil {
		return result, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode pipeline step result", logging.ErrKey, err, "step", step)
		return result, nil
	}
	if err := state.SaveStepResult(ctx, runUID, step, encoded); err != nil {
		slog.WarnContext(ctx, "failed to save pipeline step checkpoint", logging.ErrKey, err, "step", step)
	}

	return result, nil
}
