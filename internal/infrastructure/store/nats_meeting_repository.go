// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// transitionMaxAttempts bounds the compare-and-swap retry loop when a
// concurrent writer bumps the revision between read and update.
const transitionMaxAttempts = 3

// NatsMeetingRepository implements domain.MeetingRepository on a NATS KV
// bucket. Conditional status transitions are expressed as a read-check-update
// cycle guarded by the entry revision, so two concurrent deliveries for the
// same meeting race safely: at most one performs the transition.
type NatsMeetingRepository struct {
	*NatsBaseRepository[models.Meeting]
}

// NewNatsMeetingRepository creates a new NATS KV meetings repository.
func NewNatsMeetingRepository(kvStore INatsKeyValue) *NatsMeetingRepository {
	return &NatsMeetingRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Meeting](kvStore, "meeting"),
	}
}

func (r *NatsMeetingRepository) Get(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	return r.NatsBaseRepository.Get(ctx, meetingUID)
}

func (r *NatsMeetingRepository) GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, meetingUID)
}

func (r *NatsMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	now := time.Now().UTC()
	if meeting.CreatedAt == nil {
		meeting.CreatedAt = &now
	}
	meeting.UpdatedAt = &now
	return r.NatsBaseRepository.Create(ctx, meeting.UID, meeting)
}

func (r *NatsMeetingRepository) Update(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	now := time.Now().UTC()
	meeting.UpdatedAt = &now
	return r.NatsBaseRepository.Update(ctx, meeting.UID, meeting, revision)
}

// TransitionStatus applies mutate to the meeting only when its current status
// equals expected. Returns false without error when the status predicate does
// not match, which callers treat as "zero rows affected".
func (r *NatsMeetingRepository) TransitionStatus(
	ctx context.Context,
	meetingUID string,
	expected models.MeetingStatus,
	mutate func(*models.Meeting),
) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < transitionMaxAttempts; attempt++ {
		meeting, revision, err := r.GetWithRevision(ctx, meetingUID)
		if err != nil {
			return false, err
		}

		if meeting.Status != expected {
			return false, nil
		}

		mutate(meeting)

		err = r.Update(ctx, meeting, revision)
		if err == nil {
			return true, nil
		}
		if domain.GetErrorType(err) != domain.ErrorTypeConflict {
			return false, err
		}
		// Lost the revision race; re-read and re-check the predicate.
		lastErr = err
	}
	return false, lastErr
}

// Mutate applies an unconditional field update to an existing meeting and
// returns the updated record.
func (r *NatsMeetingRepository) Mutate(
	ctx context.Context,
	meetingUID string,
	mutate func(*models.Meeting),
) (*models.Meeting, error) {
	var lastErr error
	for attempt := 0; attempt < transitionMaxAttempts; attempt++ {
		meeting, revision, err := r.GetWithRevision(ctx, meetingUID)
		if err != nil {
			return nil, err
		}

		mutate(meeting)

		err = r.Update(ctx, meeting, revision)
		if err == nil {
			return meeting, nil
		}
		if domain.GetErrorType(err) != domain.ErrorTypeConflict {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
