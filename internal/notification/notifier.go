package notification

import (
	"context"
	"log/slog"

	"github.com/guardforce/workforce-management/internal"
)

// Mailer delivers outbound messages. Delivery is best-effort everywhere it is
// used; callers must not fail their own work on a mailer error.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes messages to the structured log instead of delivering
// them. It stands in for a real provider in development and tests.
type LogMailer struct {
	cfg    internal.NotificationConfig
	logger *slog.Logger
}

func NewLogMailer(cfg internal.NotificationConfig, logger *slog.Logger) *LogMailer {
	return &LogMailer{
		cfg:    cfg,
		logger: logger,
	}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.cfg.Enabled {
		m.logger.Debug("notifications disabled, dropping message", "to", to, "subject", subject)
		return nil
	}

	m.logger.InfoContext(ctx, "outbound notification",
		"from", m.cfg.FromEmail,
		"to", to,
		"subject", subject,
		"body_length", len(body))
	return nil
}
