// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
)

// MockLLMClient implements domain.LLMClient for testing
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) ChatCompletion(ctx context.Context, model string, messages []domain.LLMMessage) (string, error) {
	args := m.Called(ctx, model, messages)
	return args.String(0), args.Error(1)
}
