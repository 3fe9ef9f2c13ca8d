package mailer

import (
	"context"
	"log/slog"
)

// NoOpMailer logs instead of sending. It is used when SMTP is not configured
// so the dispatch flow stays unchanged in development.
type NoOpMailer struct{}

// NewNoOpMailer creates a new NoOpMailer instance.
func NewNoOpMailer() *NoOpMailer {
	return &NoOpMailer{}
}

// Send logs the message and returns nil.
func (n *NoOpMailer) Send(ctx context.Context, msg Message) error {
	slog.Info("email delivery skipped (mailer disabled)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject))
	return nil
}
