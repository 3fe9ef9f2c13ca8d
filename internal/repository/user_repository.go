package repository

import (
	"context"
	"errors"

	"newsdesk/internal/domain/entity"
)

// ErrDuplicateKey is returned by Create methods when a unique constraint
// (username, email, publisher name, subscription pair) is violated.
var ErrDuplicateKey = errors.New("duplicate key")

type UserRepository interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsername returns (nil, nil) when no such user exists.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByEmail returns (nil, nil) when no such user exists.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListJournalists retrieves active journalists, optionally scoped to a publisher.
	ListJournalists(ctx context.Context, publisherID *int64) ([]*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type PublisherRepository interface {
	Get(ctx context.Context, id int64) (*entity.Publisher, error)
	List(ctx context.Context) ([]*entity.Publisher, error)
	Create(ctx context.Context, publisher *entity.Publisher) error
}

type CategoryRepository interface {
	Get(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
}

type NewsletterRepository interface {
	Get(ctx context.Context, id int64) (*entity.Newsletter, error)
	List(ctx context.Context) ([]*entity.Newsletter, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Newsletter, error)
	Create(ctx context.Context, newsletter *entity.Newsletter) error
	Update(ctx context.Context, newsletter *entity.Newsletter) error
	Delete(ctx context.Context, id int64) error
}
