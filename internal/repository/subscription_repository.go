package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

type SubscriptionRepository interface {
	Get(ctx context.Context, id int64) (*entity.Subscription, error)
	ListByReader(ctx context.Context, readerID int64) ([]*entity.Subscription, error)
	// Exists reports whether the reader already holds a subscription to the
	// given target (publisher xor journalist).
	Exists(ctx context.Context, readerID int64, publisherID, journalistID *int64) (bool, error)
	// Create returns ErrDuplicateKey when the (reader, target) pair already exists.
	Create(ctx context.Context, sub *entity.Subscription) error
	Delete(ctx context.Context, id int64) error
	// ResolveSubscribers returns the deduplicated set of readers subscribed
	// to the article's publisher or to its author.
	ResolveSubscribers(ctx context.Context, publisherID *int64, authorID int64) ([]*entity.User, error)
}
