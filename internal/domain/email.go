// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"
)

// EmailService defines the interface for sending emails
type EmailService interface {
	SendSummaryNotification(ctx context.Context, notification EmailSummaryNotification) error
}

// EmailSummaryNotification contains the data needed to send a post-meeting
// summary email to the meeting owner.
type EmailSummaryNotification struct {
	RecipientEmail string
	RecipientName  string
	MeetingTitle   string
	MeetingDate    time.Time
	Summary        string
	Transcript     string
	ActionItems    []string
	KeyPoints      []string
	RecordingURL   string // optional
}
