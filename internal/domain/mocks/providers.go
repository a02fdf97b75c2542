// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// MockWebhookVerifier implements domain.WebhookVerifier for testing
type MockWebhookVerifier struct {
	mock.Mock
}

func (m *MockWebhookVerifier) VerifyWebhook(body []byte, signature string) bool {
	args := m.Called(body, signature)
	return args.Bool(0)
}

// MockCallProvider implements domain.CallProvider for testing
type MockCallProvider struct {
	mock.Mock
}

func (m *MockCallProvider) EndCall(ctx context.Context, callType, callID string) error {
	args := m.Called(ctx, callType, callID)
	return args.Error(0)
}

// MockRealtimeSession implements domain.RealtimeSession for testing
type MockRealtimeSession struct {
	mock.Mock
}

func (m *MockRealtimeSession) UpdateInstructions(ctx context.Context, instructions string) error {
	args := m.Called(ctx, instructions)
	return args.Error(0)
}

// MockRealtimeAgentBridge implements domain.RealtimeAgentBridge for testing
type MockRealtimeAgentBridge struct {
	mock.Mock
}

func (m *MockRealtimeAgentBridge) Connect(ctx context.Context, callID, agentUID string) (domain.RealtimeSession, error) {
	args := m.Called(ctx, callID, agentUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RealtimeSession), args.Error(1)
}

// MockChatProvider implements domain.ChatProvider for testing
type MockChatProvider struct {
	mock.Mock
}

func (m *MockChatProvider) RecentMessages(ctx context.Context, channelType, channelID string, limit int) ([]models.ChannelMessage, error) {
	args := m.Called(ctx, channelType, channelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChannelMessage), args.Error(1)
}

func (m *MockChatProvider) SendMessage(ctx context.Context, channelType, channelID string, message models.OutboundChannelMessage) error {
	args := m.Called(ctx, channelType, channelID, message)
	return args.Error(0)
}

func (m *MockChatProvider) UpsertUser(ctx context.Context, user models.ChannelUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
