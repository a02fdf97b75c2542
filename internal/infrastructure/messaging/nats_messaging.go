// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

// Package messaging publishes the service's internal NATS messages.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

// INatsConn is the subset of the NATS connection interface the message
// builder needs.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder constructs messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// SendMeetingProcessing enqueues a post-meeting processing job. Delivery is
// fan-out to a queue group, so exactly one worker instance picks it up.
func (m *MessageBuilder) SendMeetingProcessing(ctx context.Context, message models.MeetingProcessingMessage) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling processing message into JSON", logging.ErrKey, err)
		return err
	}

	slog.DebugContext(ctx, "publishing meeting processing job to NATS",
		"subject", models.MeetingProcessingSubject,
		"meeting_uid", message.MeetingUID,
	)

	return m.sendMessage(ctx, models.MeetingProcessingSubject, messageBytes)
}

// NatsMsg adapts a *nats.Msg to the domain message interface consumed by the
// NATS handlers.
type NatsMsg struct {
	msg *nats.Msg
}

// NewNatsMsg creates a new NatsMsg wrapping the given NATS message.
func NewNatsMsg(msg *nats.Msg) *NatsMsg {
	return &NatsMsg{msg: msg}
}

// Subject returns the subject of the message.
func (n *NatsMsg) Subject() string {
	return n.msg.Subject
}

// Data returns the payload of the message.
func (n *NatsMsg) Data() []byte {
	return n.msg.Data
}

// HasReply reports whether the message has a reply inbox.
func (n *NatsMsg) HasReply() bool {
	return n.msg.Reply != ""
}

// Respond sends a response on the message's reply inbox.
func (n *NatsMsg) Respond(data []byte) error {
	return n.msg.Respond(data)
}
