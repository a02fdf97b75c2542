// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// MeetingRepository is the persistence contract for meeting records. All
// lifecycle exclusion is expressed through conditional writes: the repository
// reports whether a transition matched its expected-status predicate so the
// caller can distinguish a benign duplicate delivery from a real transition.
type MeetingRepository interface {
	Get(ctx context.Context, meetingUID string) (*models.Meeting, error)
	GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error)
	Create(ctx context.Context, meeting *models.Meeting) error
	Update(ctx context.Context, meeting *models.Meeting, revision uint64) error

	// TransitionStatus applies mutate to the meeting only when its current
	// status equals expected. It returns true when the transition was applied
	// and false when the meeting exists but its status did not match. A
	// missing meeting is a not-found error.
	TransitionStatus(ctx context.Context, meetingUID string, expected models.MeetingStatus, mutate func(*models.Meeting)) (bool, error)

	// Mutate applies an unconditional field update to an existing meeting.
	Mutate(ctx context.Context, meetingUID string, mutate func(*models.Meeting)) (*models.Meeting, error)
}

// AgentRepository reads agent records. Agents are created and edited through
// the CRUD API, never from the webhook or pipeline paths.
type AgentRepository interface {
	Get(ctx context.Context, agentUID string) (*models.Agent, error)
	ListByUIDs(ctx context.Context, agentUIDs []string) ([]*models.Agent, error)
}

// UserRepository reads user records.
type UserRepository interface {
	Get(ctx context.Context, userUID string) (*models.User, error)
	ListByUIDs(ctx context.Context, userUIDs []string) ([]*models.User, error)
}

// PipelineStateRepository checkpoints pipeline step results so a redelivered
// job invocation resumes from the first incomplete step instead of repeating
// completed ones.
type PipelineStateRepository interface {
	GetStepResult(ctx context.Context, runUID, step string) ([]byte, bool, error)
	SaveStepResult(ctx context.Context, runUID, step string, result []byte) error
}
