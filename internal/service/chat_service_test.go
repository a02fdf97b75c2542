// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/mocks"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

type chatServiceMocks struct {
	meetingRepository *mocks.MockMeetingRepository
	agentRepository   *mocks.MockAgentRepository
	chatProvider      *mocks.MockChatProvider
	llmClient         *mocks.MockLLMClient
}

func setupChatService() (*ChatResponderService, *chatServiceMocks) {
	m := &chatServiceMocks{
		meetingRepository: &mocks.MockMeetingRepository{},
		agentRepository:   &mocks.MockAgentRepository{},
		chatProvider:      &mocks.MockChatProvider{},
		llmClient:         &mocks.MockLLMClient{},
	}
	svc := NewChatResponderService(m.meetingRepository, m.agentRepository, m.chatProvider, m.llmClient)
	return svc, m
}

func messageNewEvent(userID, channelID, text string) *models.MessageNewEvent {
	event := &models.MessageNewEvent{
		Type:      models.EventTypeMessageNew,
		ChannelID: channelID,
	}
	if userID != "" {
		event.User = &struct {
			ID string `json:"id"`
		}{ID: userID}
	}
	if text != "" {
		event.Message = &struct {
			Text string `json:"text"`
		}{Text: text}
	}
	return event
}

func TestChatResponderServiceServiceReady(t *testing.T) {
	svc, _ := setupChatService()
	assert.True(t, svc.ServiceReady())

	svc.llmClient = nil
	assert.False(t, svc.ServiceReady())
}

func TestHandleMessageNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		event *models.MessageNewEvent
	}{
		{name: "missing user", event: messageNewEvent("", "meeting-1", "hello")},
		{name: "missing channel", event: messageNewEvent("user-1", "", "hello")},
		{name: "missing text", event: messageNewEvent("user-1", "meeting-1", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupChatService()

			err := svc.HandleMessageNew(context.Background(), tt.event)

			require.Error(t, err)
			assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
		})
	}
}

func TestHandleMessageNewMeetingChecks(t *testing.T) {
	t.Run("meeting not found", func(t *testing.T) {
		svc, m := setupChatService()
		m.meetingRepository.On("Get", mock.Anything, "meeting-1").
			Return(nil, domain.NewNotFoundError("meeting not found"))

		err := svc.HandleMessageNew(context.Background(), messageNewEvent("user-1", "meeting-1", "hello"))

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})

	t.Run("meeting not completed", func(t *testing.T) {
		svc, m := setupChatService()
		m.meetingRepository.On("Get", mock.Anything, "meeting-1").
			Return(&models.Meeting{UID: "meeting-1", AgentUID: "agent-1", Status: models.MeetingStatusProcessing}, nil)

		err := svc.HandleMessageNew(context.Background(), messageNewEvent("user-1", "meeting-1", "hello"))

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
		m.agentRepository.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("agent not found", func(t *testing.T) {
		svc, m := setupChatService()
		m.meetingRepository.On("Get", mock.Anything, "meeting-1").
			Return(&models.Meeting{UID: "meeting-1", AgentUID: "agent-1", Status: models.MeetingStatusCompleted}, nil)
		m.agentRepository.On("Get", mock.Anything, "agent-1").
			Return(nil, domain.NewNotFoundError("agent not found"))

		err := svc.HandleMessageNew(context.Background(), messageNewEvent("user-1", "meeting-1", "hello"))

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}

func TestHandleMessageNewIgnoresAgentOwnMessages(t *testing.T) {
	svc, m := setupChatService()

	m.meetingRepository.On("Get", mock.Anything, "meeting-1").
		Return(&models.Meeting{UID: "meeting-1", AgentUID: "agent-1", Status: models.MeetingStatusCompleted}, nil)
	m.agentRepository.On("Get", mock.Anything, "agent-1").
		Return(&models.Agent{UID: "agent-1", Name: "Helper"}, nil)

	err := svc.HandleMessageNew(context.Background(), messageNewEvent("agent-1", "meeting-1", "my own reply"))

	require.NoError(t, err)
	m.llmClient.AssertNotCalled(t, "ChatCompletion", mock.Anything, mock.Anything, mock.Anything)
	m.chatProvider.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessageNewPostsAgentReply(t *testing.T) {
	svc, m := setupChatService()

	m.meetingRepository.On("Get", mock.Anything, "meeting-1").
		Return(&models.Meeting{
			UID:      "meeting-1",
			AgentUID: "agent-1",
			Status:   models.MeetingStatusCompleted,
			Summary:  "## Meeting Overview\nWe planned the rollout.",
		}, nil)
	m.agentRepository.On("Get", mock.Anything, "agent-1").
		Return(&models.Agent{UID: "agent-1", Name: "Helper", Instructions: "focus on rollout risks"}, nil)
	m.chatProvider.On("RecentMessages", mock.Anything, "messaging", "meeting-1", 5).
		Return([]models.ChannelMessage{
			{ID: "msg-1", UserID: "user-1", Text: "what did we decide?"},
			{ID: "msg-2", UserID: "agent-1", Text: "the rollout starts Monday"},
			{ID: "msg-3", UserID: "user-1", Text: ""},
		}, nil)
	m.llmClient.On("ChatCompletion", mock.Anything, "", mock.MatchedBy(func(messages []domain.LLMMessage) bool {
		// system prompt, two non-empty history messages, then the new text
		if len(messages) != 4 {
			return false
		}
		return messages[0].Role == domain.LLMRoleSystem &&
			messages[1].Role == domain.LLMRoleUser &&
			messages[2].Role == domain.LLMRoleAssistant &&
			messages[3].Role == domain.LLMRoleUser &&
			messages[3].Content == "who owns the follow-up?"
	})).Return("The follow-up is owned by Dana.", nil)
	m.chatProvider.On("UpsertUser", mock.Anything, mock.MatchedBy(func(user models.ChannelUser) bool {
		return user.ID == "agent-1" && user.Name == "Helper" && user.Image != ""
	})).Return(nil)
	m.chatProvider.On("SendMessage", mock.Anything, "messaging", "meeting-1", mock.MatchedBy(func(msg models.OutboundChannelMessage) bool {
		return msg.Text == "The follow-up is owned by Dana." && msg.User.ID == "agent-1" && msg.ID != ""
	})).Return(nil)

	err := svc.HandleMessageNew(context.Background(), messageNewEvent("user-1", "meeting-1", "who owns the follow-up?"))

	require.NoError(t, err)
	m.chatProvider.AssertExpectations(t)
	m.llmClient.AssertExpectations(t)
}

func TestHandleMessageNewEmptyLLMResponse(t *testing.T) {
	svc, m := setupChatService()

	m.meetingRepository.On("Get", mock.Anything, "meeting-1").
		Return(&models.Meeting{UID: "meeting-1", AgentUID: "agent-1", Status: models.MeetingStatusCompleted}, nil)
	m.agentRepository.On("Get", mock.Anything, "agent-1").
		Return(&models.Agent{UID: "agent-1", Name: "Helper"}, nil)
	m.chatProvider.On("RecentMessages", mock.Anything, "messaging", "meeting-1", 5).
		Return([]models.ChannelMessage{}, nil)
	m.llmClient.On("ChatCompletion", mock.Anything, "", mock.Anything).Return("", nil)

	err := svc.HandleMessageNew(context.Background(), messageNewEvent("user-1", "meeting-1", "hello"))

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	assert.Contains(t, err.Error(), "no response from GPT")
	m.chatProvider.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateAvatarURI(t *testing.T) {
	uri := generateAvatarURI("Helper Bot")
	assert.Equal(t, "https://api.dicebear.com/9.x/bottts-neutral/svg?seed=Helper+Bot", uri)
}
