// Package mailer provides abstraction for sending notification email.
// It defines the Mailer interface so SMTP delivery and the no-op mailer
// used in development can be swapped through dependency injection.
package mailer

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends email to a single recipient.
// Implementations handle rate limiting and error logging internally.
type Mailer interface {
	// Send delivers the message. It respects context cancellation and
	// returns a non-nil error when delivery failed.
	Send(ctx context.Context, msg Message) error
}
