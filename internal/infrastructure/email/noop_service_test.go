// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoOpService(t *testing.T) {
	service := NewNoOpService()
	assert.NotNil(t, service)

	err := service.SendSummaryNotification(context.Background(), testNotification())
	assert.NoError(t, err)
}
