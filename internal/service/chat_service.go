// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

const (
	// chatChannelType is the provider channel type hosting post-meeting
	// conversations. The channel id is always the meeting UID.
	chatChannelType = "messaging"

	// chatHistoryLimit caps how many recent channel messages are replayed as
	// conversation context for the responder.
	chatHistoryLimit = 5

	// avatarBaseURL generates a deterministic robot avatar from a seed
	// string, so an agent keeps the same face across channels.
	avatarBaseURL = "https://api.dicebear.com/9.x/bottts-neutral/svg"
)

// ChatResponderService answers user messages posted into a completed
// meeting's chat channel, speaking as the meeting's agent with the stored
// summary as context.
type ChatResponderService struct {
	meetingRepository domain.MeetingRepository
	agentRepository   domain.AgentRepository
	chatProvider      domain.ChatProvider
	llmClient         domain.LLMClient
}

// NewChatResponderService creates a new ChatResponderService.
func NewChatResponderService(
	meetingRepository domain.MeetingRepository,
	agentRepository domain.AgentRepository,
	chatProvider domain.ChatProvider,
	llmClient domain.LLMClient,
) *ChatResponderService {
	return &ChatResponderService{
		meetingRepository: meetingRepository,
		agentRepository:   agentRepository,
		chatProvider:      chatProvider,
		llmClient:         llmClient,
	}
}

// ServiceReady checks if the service is ready to process requests.
func (s *ChatResponderService) ServiceReady() bool {
	return s.meetingRepository != nil &&
		s.agentRepository != nil &&
		s.chatProvider != nil &&
		s.llmClient != nil
}

// HandleMessageNew generates and posts the agent's reply to a new channel
// message. Messages authored by the agent itself are ignored so the service
// does not respond to its own replies.
func (s *ChatResponderService) HandleMessageNew(ctx context.Context, event *models.MessageNewEvent) error {
	var userID, text string
	if event.User != nil {
		userID = event.User.ID
	}
	if event.Message != nil {
		text = event.Message.Text
	}
	channelID := event.ChannelID

	if userID == "" || channelID == "" || text == "" {
		return domain.NewValidationError("missing userId, channelId or text")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", channelID))

	meeting, err := s.meetingRepository.Get(ctx, channelID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return domain.NewNotFoundError("meeting not found or not completed", err)
		}
		return err
	}
	if meeting.Status != models.MeetingStatusCompleted {
		return domain.NewNotFoundError("meeting not found or not completed")
	}

	agent, err := s.agentRepository.Get(ctx, meeting.AgentUID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return domain.NewNotFoundError("agent not found", err)
		}
		return err
	}

	if userID == agent.UID {
		return nil
	}

	history, err := s.chatProvider.RecentMessages(ctx, chatChannelType, channelID, chatHistoryLimit)
	if err != nil {
		return err
	}

	messages := make([]domain.LLMMessage, 0, len(history)+2)
	messages = append(messages, domain.LLMMessage{
		Role:    domain.LLMRoleSystem,
		Content: fmt.Sprintf(chatResponderPromptTemplate, meeting.Summary, agent.Instructions),
	})
	for _, msg := range history {
		if msg.Text == "" {
			continue
		}
		role := domain.LLMRoleUser
		if msg.UserID == agent.UID {
			role = domain.LLMRoleAssistant
		}
		messages = append(messages, domain.LLMMessage{Role: role, Content: msg.Text})
	}
	messages = append(messages, domain.LLMMessage{Role: domain.LLMRoleUser, Content: text})

	reply, err := s.llmClient.ChatCompletion(ctx, "", messages)
	if err != nil {
		return err
	}
	if reply == "" {
		return domain.NewValidationError("no response from GPT")
	}

	agentUser := models.ChannelUser{
		ID:    agent.UID,
		Name:  agent.Name,
		Image: generateAvatarURI(agent.Name),
	}

	if err := s.chatProvider.UpsertUser(ctx, agentUser); err != nil {
		return err
	}

	if err := s.chatProvider.SendMessage(ctx, chatChannelType, channelID, models.OutboundChannelMessage{
		ID:   uuid.NewString(),
		Text: reply,
		User: agentUser,
	}); err != nil {
		return err
	}

	slog.InfoContext(ctx, "posted agent chat reply", "agent_uid", agent.UID)

	return nil
}

// generateAvatarURI builds a deterministic avatar URL for the given seed.
func generateAvatarURI(seed string) string {
	return avatarBaseURL + "?seed=" + url.QueryEscape(seed)
}
