// Package repository defines the persistence interfaces consumed by the use
// case layer. Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"errors"
	"time"

	"newsdesk/internal/domain/entity"
)

// ErrStatusConflict is returned by guarded status transitions when the
// article was not in the expected state at write time. The lifecycle use
// case maps it to an invalid-transition error. Guarding in SQL keeps
// concurrent transitions safe without row locks.
var ErrStatusConflict = errors.New("article status changed concurrently")

// ArticleFilters contains optional filters for article listing.
type ArticleFilters struct {
	PublisherID *int64
	CategoryID  *int64
}

// ArticleWithAuthor pairs an article with the author's username and the
// publisher name for list views.
type ArticleWithAuthor struct {
	Article       *entity.Article
	AuthorName    string
	PublisherName string
}

// TransitionStamp carries the fields written alongside a status transition.
type TransitionStamp struct {
	ReviewNote string
	At         time.Time
}

type ArticleRepository interface {
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// ListPublished retrieves published articles newest first, with optional
	// publisher and category filters.
	ListPublished(ctx context.Context, filters ArticleFilters) ([]ArticleWithAuthor, error)
	// ListByAuthor retrieves all articles authored by the given journalist,
	// regardless of status.
	ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Article, error)
	// ListPendingForPublisher retrieves pending articles an editor of the
	// given publisher may moderate. A nil publisherID selects pending
	// articles with no publisher.
	ListPendingForPublisher(ctx context.Context, publisherID *int64) ([]*entity.Article, error)
	// Search finds published articles whose title or summary matches the keyword.
	Search(ctx context.Context, keyword string) ([]*entity.Article, error)
	Create(ctx context.Context, article *entity.Article) error
	// UpdateContent writes the editable content fields (title, body, summary,
	// category, publisher) without touching the status columns.
	UpdateContent(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id int64) error
	// TransitionStatus performs a guarded status change: the UPDATE only
	// applies while the row is still in the from status. Returns
	// ErrStatusConflict when the guard fails.
	TransitionStatus(ctx context.Context, id int64, from, to entity.ArticleStatus, stamp TransitionStamp) error
	// MarkPublished transitions a pending article to published and records
	// the notification dispatch marker in the same database transaction, so
	// the status change and the dispatch record persist or fail as a unit.
	// Returns ErrStatusConflict when the article is no longer pending.
	MarkPublished(ctx context.Context, id, editorID int64, at time.Time) error
}
