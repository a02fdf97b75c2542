// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
)

// stepResult is the stored checkpoint for one completed pipeline step.
type stepResult struct {
	Step   string `json:"step"`
	Result []byte `json:"result,omitempty"`
}

// NatsPipelineStateRepository implements domain.PipelineStateRepository on a
// NATS KV bucket. Each completed step of a pipeline run is checkpointed under
// "<runUID>.<step>" so a redelivered job resumes instead of repeating work.
type NatsPipelineStateRepository struct {
	*NatsBaseRepository[stepResult]
}

// NewNatsPipelineStateRepository creates a new NATS KV pipeline state repository.
func NewNatsPipelineStateRepository(kvStore INatsKeyValue) *NatsPipelineStateRepository {
	return &NatsPipelineStateRepository{
		NatsBaseRepository: NewNatsBaseRepository[stepResult](kvStore, "pipeline step"),
	}
}

func stepKey(runUID, step string) string {
	return fmt.Sprintf("%s.%s", runUID, step)
}

// GetStepResult returns the checkpointed result for a step, with a flag
// reporting whether the step has completed for this run.
func (r *NatsPipelineStateRepository) GetStepResult(ctx context.Context, runUID, step string) ([]byte, bool, error) {
	entity, err := r.NatsBaseRepository.Get(ctx, stepKey(runUID, step))
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entity.Result, true, nil
}

// SaveStepResult checkpoints a completed step's result.
func (r *NatsPipelineStateRepository) SaveStepResult(ctx context.Context, runUID, step string, result []byte) error {
	return r.NatsBaseRepository.Create(ctx, stepKey(runUID, step), &stepResult{
		Step:   step,
		Result: result,
	})
}
