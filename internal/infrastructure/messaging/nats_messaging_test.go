// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
)

type mockNatsConn struct {
	mock.Mock
}

func (m *mockNatsConn) IsConnected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockNatsConn) Publish(subj string, data []byte) error {
	args := m.Called(subj, data)
	return args.Error(0)
}

func TestMessageBuilderSendMeetingProcessing(t *testing.T) {
	tests := []struct {
		name         string
		publishError error
		expectError  bool
	}{
		{
			name:        "successful send",
			expectError: false,
		},
		{
			name:         "publish error",
			publishError: errors.New("publish failed"),
			expectError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &mockNatsConn{}
			builder := NewMessageBuilder(conn)

			message := models.MeetingProcessingMessage{
				MeetingUID:    "meeting-1",
				TranscriptURL: "https://cdn.example.com/transcript.jsonl",
			}

			var published []byte
			conn.On("Publish", models.MeetingProcessingSubject, mock.Anything).
				Run(func(args mock.Arguments) {
					published = args.Get(1).([]byte)
				}).
				Return(tt.publishError)

			err := builder.SendMeetingProcessing(context.Background(), message)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var decoded models.MeetingProcessingMessage
			require.NoError(t, json.Unmarshal(published, &decoded))
			assert.Equal(t, message, decoded)
			conn.AssertExpectations(t)
		})
	}
}

func TestNatsMsg(t *testing.T) {
	msg := NewNatsMsg(&nats.Msg{
		Subject: "convogenius.meetings.processing",
		Data:    []byte("payload"),
		Reply:   "inbox.1",
	})

	assert.Equal(t, "convogenius.meetings.processing", msg.Subject())
	assert.Equal(t, []byte("payload"), msg.Data())
	assert.True(t, msg.HasReply())

	noReply := NewNatsMsg(&nats.Msg{Subject: "x"})
	assert.False(t, noReply.HasReply())
}
