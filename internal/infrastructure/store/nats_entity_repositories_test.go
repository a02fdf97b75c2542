// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

func TestNatsAgentRepositoryListByUIDs(t *testing.T) {
	ctx := context.Background()
	mockKV := newMockNatsKeyValue()
	repo := NewNatsAgentRepository(mockKV)

	for _, uid := range []string{"agent-1", "agent-2"} {
		data, err := repo.Marshal(ctx, &models.Agent{UID: uid, Name: "Notetaker " + uid})
		require.NoError(t, err)
		_, err = mockKV.Put(ctx, uid, data)
		require.NoError(t, err)
	}

	t.Run("skips unknown uids", func(t *testing.T) {
		agents, err := repo.ListByUIDs(ctx, []string{"agent-1", "nope", "agent-2"})
		require.NoError(t, err)
		require.Len(t, agents, 2)
		assert.Equal(t, "agent-1", agents[0].UID)
		assert.Equal(t, "agent-2", agents[1].UID)
	})

	t.Run("empty input", func(t *testing.T) {
		agents, err := repo.ListByUIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, agents)
	})
}

func TestNatsUserRepositoryListByUIDs(t *testing.T) {
	ctx := context.Background()
	mockKV := newMockNatsKeyValue()
	repo := NewNatsUserRepository(mockKV)

	data, err := repo.Marshal(ctx, &models.User{UID: "user-1", Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = mockKV.Put(ctx, "user-1", data)
	require.NoError(t, err)

	users, err := repo.ListByUIDs(ctx, []string{"user-1", "user-2"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
	assert.Equal(t, "ada@example.com", users[0].Email)
}

func TestNatsPipelineStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsPipelineStateRepository(newMockNatsKeyValue())

	t.Run("missing step reports not completed", func(t *testing.T) {
		result, found, err := repo.GetStepResult(ctx, "run-1", "fetch-transcript")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, result)
	})

	t.Run("saved step round-trips", func(t *testing.T) {
		require.NoError(t, repo.SaveStepResult(ctx, "run-1", "fetch-transcript", []byte(`"payload"`)))

		result, found, err := repo.GetStepResult(ctx, "run-1", "fetch-transcript")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte(`"payload"`), result)
	})

	t.Run("runs are isolated", func(t *testing.T) {
		_, found, err := repo.GetStepResult(ctx, "run-2", "fetch-transcript")
		require.NoError(t, err)
		assert.False(t, found)
	})
}
