// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

// SMTPService implements the EmailService interface using SMTP
type SMTPService struct {
	config    SMTPConfig
	templates Templates
}

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string // Optional for authenticated SMTP
	Password string // Optional for authenticated SMTP
}

// Ensure SMTPService implements the email contract
var _ domain.EmailService = (*SMTPService)(nil)

// NewSMTPService creates a new SMTP email service
func NewSMTPService(config SMTPConfig) (*SMTPService, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	return &SMTPService{
		config:    config,
		templates: templates,
	}, nil
}

// SendSummaryNotification sends the post-meeting summary email to the
// meeting owner.
func (s *SMTPService) SendSummaryNotification(ctx context.Context, notification domain.EmailSummaryNotification) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", notification.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", notification.MeetingTitle))

	htmlContent, err := renderTemplate(s.templates.SummaryNotification.HTML, notification)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render HTML template", logging.ErrKey, err)
		return fmt.Errorf("failed to render HTML template: %w", err)
	}

	textContent, err := renderTemplate(s.templates.SummaryNotification.Text, notification)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render text template", logging.ErrKey, err)
		return fmt.Errorf("failed to render text template: %w", err)
	}

	subject := fmt.Sprintf("Meeting Summary: %s", notification.MeetingTitle)
	message := buildEmailMessage(notification.RecipientEmail, subject, htmlContent, textContent, s.config)
	err = sendEmailMessage(notification.RecipientEmail, message, s.config)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send summary notification email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "summary notification email sent successfully")
	return nil
}
