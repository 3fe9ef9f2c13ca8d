package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"newsdesk/pkg/config"
)

// SMTPConfig contains configuration for SMTP delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the envelope sender and From header.
	From string
	// Timeout bounds one delivery attempt.
	Timeout time.Duration
}

// SMTPConfigFromEnv reads SMTP settings from environment variables.
func SMTPConfigFromEnv() SMTPConfig {
	return SMTPConfig{
		Host:     config.GetEnvString("SMTP_HOST", "localhost"),
		Port:     config.GetEnvInt("SMTP_PORT", 587),
		Username: config.GetEnvString("SMTP_USERNAME", ""),
		Password: config.GetEnvString("SMTP_PASSWORD", ""),
		From:     config.GetEnvString("SMTP_FROM", "no-reply@newsdesk.local"),
		Timeout:  config.GetEnvDuration("SMTP_TIMEOUT", 10*time.Second),
	}
}

// SMTPMailer delivers email over SMTP with a token bucket keeping sends
// under the provider's rate limit.
type SMTPMailer struct {
	config      SMTPConfig
	rateLimiter *RateLimiter
	// sendMail is swapped in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates an SMTPMailer with a 5 msg/s, burst 10 token bucket.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config:      cfg,
		rateLimiter: NewRateLimiter(5.0, 10),
		sendMail:    smtp.SendMail,
	}
}

// Send delivers the message over SMTP. The rate limiter blocks before the
// delivery attempt; the configured timeout bounds the attempt itself.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := m.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	payload := m.buildPayload(msg)

	ctx, cancel := context.WithTimeout(ctx, m.config.Timeout)
	defer cancel()

	// smtp.SendMail has no context support, so the attempt runs in a
	// goroutine and the caller stops waiting on timeout. The connection is
	// abandoned, not torn down; the timeout keeps the dispatcher moving.
	done := make(chan error, 1)
	go func() {
		done <- m.sendMail(addr, auth, m.config.From, []string{msg.To}, payload)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		slog.Debug("email delivered",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

func (m *SMTPMailer) buildPayload(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.config.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
