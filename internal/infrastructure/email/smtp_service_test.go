// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPService(t *testing.T) {
	config := SMTPConfig{
		Host: "localhost",
		Port: 1025,
		From: "noreply@convogenius.io",
	}

	service, err := NewSMTPService(config)
	require.NoError(t, err)
	assert.Equal(t, config, service.config)
	assert.NotNil(t, service.templates.SummaryNotification.HTML)
	assert.NotNil(t, service.templates.SummaryNotification.Text)
}

func TestSMTPServiceSendSummaryNotification(t *testing.T) {
	t.Run("successful send", func(t *testing.T) {
		server := NewMockSMTPServer(t, SuccessfulSMTPResponses())
		defer func() { _ = server.Close() }()

		host, err := server.Host()
		require.NoError(t, err)
		port, err := server.Port()
		require.NoError(t, err)

		service, err := NewSMTPService(SMTPConfig{
			Host: host,
			Port: port,
			From: "noreply@convogenius.io",
		})
		require.NoError(t, err)

		err = service.SendSummaryNotification(context.Background(), testNotification())
		assert.NoError(t, err)
	})

	t.Run("server rejects sender", func(t *testing.T) {
		server := NewMockSMTPServer(t, FailureSMTPResponses())
		defer func() { _ = server.Close() }()

		host, err := server.Host()
		require.NoError(t, err)
		port, err := server.Port()
		require.NoError(t, err)

		service, err := NewSMTPService(SMTPConfig{
			Host: host,
			Port: port,
			From: "noreply@convogenius.io",
		})
		require.NoError(t, err)

		err = service.SendSummaryNotification(context.Background(), testNotification())
		assert.Error(t, err)
	})
}

func TestBuildEmailMessage(t *testing.T) {
	config := SMTPConfig{From: "noreply@convogenius.io"}
	message := buildEmailMessage("ada@example.com", "Meeting Summary: Q3 Planning", "<p>html</p>", "text", config)

	assert.Contains(t, message, "From: noreply@convogenius.io\r\n")
	assert.Contains(t, message, "To: ada@example.com\r\n")
	assert.Contains(t, message, "Subject: Meeting Summary: Q3 Planning\r\n")
	assert.Contains(t, message, "Content-Type: multipart/alternative")
	assert.Contains(t, message, "<p>html</p>")
	assert.Contains(t, message, "text")

	// Distinct boundary per message
	other := buildEmailMessage("ada@example.com", "s", "h", "t", config)
	boundary := func(msg string) string {
		idx := strings.Index(msg, "boundary=")
		return msg[idx : idx+40]
	}
	assert.NotEqual(t, boundary(message), boundary(other))
}
