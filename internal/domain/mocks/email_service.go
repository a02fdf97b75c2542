// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
)

// MockEmailService implements domain.EmailService for testing
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendSummaryNotification(ctx context.Context, notification domain.EmailSummaryNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
