// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// MockAgentRepository implements domain.AgentRepository for testing
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Get(ctx context.Context, agentUID string) (*models.Agent, error) {
	args := m.Called(ctx, agentUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepository) ListByUIDs(ctx context.Context, agentUIDs []string) ([]*models.Agent, error) {
	args := m.Called(ctx, agentUIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Agent), args.Error(1)
}
