// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPipelineStateRepository implements domain.PipelineStateRepository for testing
type MockPipelineStateRepository struct {
	mock.Mock
}

func (m *MockPipelineStateRepository) GetStepResult(ctx context.Context, runUID, step string) ([]byte, bool, error) {
	args := m.Called(ctx, runUID, step)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockPipelineStateRepository) SaveStepResult(ctx context.Context, runUID, step string, result []byte) error {
	args := m.Called(ctx, runUID, step, result)
	return args.Error(0)
}
