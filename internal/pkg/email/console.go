package email

import (
	"context"

	"github.com/rs/zerolog"
)

// consoleService logs messages instead of sending them. Used in development
// when no mail API key is configured.
type consoleService struct {
	logger zerolog.Logger
}

// NewConsoleService creates an email Service that only logs
func NewConsoleService(logger zerolog.Logger) Service {
	return &consoleService{logger: logger}
}

func (s *consoleService) Send(_ context.Context, msg *Message) error {
	s.logger.Info().
		Str("toEmail", msg.ToEmail).
		Str("subject", msg.Subject).
		Str("body", msg.TextBody).
		Msg("Email (console delivery)")
	return nil
}
