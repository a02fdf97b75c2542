// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

// NatsUserRepository implements domain.UserRepository on a NATS KV bucket.
type NatsUserRepository struct {
	*NatsBaseRepository[models.User]
}

// NewNatsUserRepository creates a new NATS KV users repository.
func NewNatsUserRepository(kvStore INatsKeyValue) *NatsUserRepository {
	return &NatsUserRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.User](kvStore, "user"),
	}
}

func (r *NatsUserRepository) Get(ctx context.Context, userUID string) (*models.User, error) {
	return r.NatsBaseRepository.Get(ctx, userUID)
}

// ListByUIDs fetches the users matching the given UIDs, skipping misses.
func (r *NatsUserRepository) ListByUIDs(ctx context.Context, userUIDs []string) ([]*models.User, error) {
	var users []*models.User
	for _, uid := range userUIDs {
		user, err := r.Get(ctx, uid)
		if err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
