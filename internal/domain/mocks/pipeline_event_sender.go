// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// MockPipelineEventSender implements domain.PipelineEventSender for testing
type MockPipelineEventSender struct {
	mock.Mock
}

func (m *MockPipelineEventSender) SendMeetingProcessing(ctx context.Context, data models.MeetingProcessingMessage) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
