// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// NatsAgentRepository implements domain.AgentRepository on a NATS KV bucket.
type NatsAgentRepository struct {
	*NatsBaseRepository[models.Agent]
}

// NewNatsAgentRepository creates a new NATS KV agents repository.
func NewNatsAgentRepository(kvStore INatsKeyValue) *NatsAgentRepository {
	return &NatsAgentRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Agent](kvStore, "agent"),
	}
}

func (r *NatsAgentRepository) Get(ctx context.Context, agentUID string) (*models.Agent, error) {
	return r.NatsBaseRepository.Get(ctx, agentUID)
}

// ListByUIDs fetches the agents matching the given UIDs. UIDs with no
// matching agent are skipped rather than treated as errors, since speaker
// ids span two namespaces and misses are expected.
func (r *NatsAgentRepository) ListByUIDs(ctx context.Context, agentUIDs []string) ([]*models.Agent, error) {
	var agents []*models.Agent
	for _, uid := range agentUIDs {
		agent, err := r.Get(ctx, uid)
		if err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
				continue
			}
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}
