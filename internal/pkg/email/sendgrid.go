package email

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendTimeout = 15 * time.Second

// SendGridConfig holds configuration for the SendGrid mail provider
type SendGridConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// sendgridService delivers mail through the SendGrid v3 API
type sendgridService struct {
	client *sendgrid.Client
	from   *sgmail.Email
	logger zerolog.Logger
}

// NewSendGridService creates a SendGrid-backed email Service. When no API key
// is configured it falls back to a console service that only logs messages,
// so development setups work without credentials.
func NewSendGridService(config SendGridConfig, logger zerolog.Logger) Service {
	if config.APIKey == "" {
		logger.Warn().Msg("Mail API key not configured - emails will be logged, not sent")
		return NewConsoleService(logger)
	}

	return &sendgridService{
		client: sendgrid.NewSendClient(config.APIKey),
		from:   sgmail.NewEmail(config.FromName, config.FromEmail),
		logger: logger,
	}
}

// Send delivers a single message. The call is bounded by a timeout so a slow
// provider cannot hang a request indefinitely.
func (s *sendgridService) Send(ctx context.Context, msg *Message) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)
	m := sgmail.NewSingleEmail(s.from, msg.Subject, to, msg.TextBody, msg.HTMLBody)

	res, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		s.logger.Error().Err(err).Str("toEmail", msg.ToEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		s.logger.Error().Int("statusCode", res.StatusCode).Str("toEmail", msg.ToEmail).Msg("Mail provider rejected message")
		return fmt.Errorf("mail provider rejected message: status %d", res.StatusCode)
	}

	s.logger.Debug().Str("toEmail", msg.ToEmail).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}
