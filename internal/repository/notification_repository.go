package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// Delivery statuses recorded in the notification log.
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// NotificationRepository is the append-only delivery log keyed by
// (article, reader). The claim/mark protocol makes the published-article
// fan-out idempotent: a recipient is claimed exactly once, so re-dispatching
// a published article never duplicates a send.
type NotificationRepository interface {
	// Claim inserts the (article, reader) row if absent and reports whether
	// this call inserted it. A false result means the recipient was already
	// claimed by an earlier dispatch.
	Claim(ctx context.Context, articleID, readerID int64) (bool, error)
	// MarkResult records the delivery outcome for a claimed recipient.
	MarkResult(ctx context.Context, articleID, readerID int64, status, detail string) error
	// CountByStatus returns the number of log rows for an article with the
	// given delivery status.
	CountByStatus(ctx context.Context, articleID int64, status string) (int64, error)
}

type ResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	// GetByToken returns (nil, nil) when the token value is unknown.
	GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64) error
	// PurgeExpired deletes used tokens and tokens older than the TTL,
	// returning the number of rows removed.
	PurgeExpired(ctx context.Context) (int64, error)
}
