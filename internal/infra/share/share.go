// Package share posts published-article announcements to an external chat
// webhook. The post is best-effort: the dispatcher logs failures and moves
// on, and a circuit breaker stops hammering a broken endpoint.
package share

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// Announcement carries the article fields rendered into the webhook payload.
type Announcement struct {
	Article       *entity.Article
	AuthorName    string
	PublisherName string
}

// Poster publishes an article announcement to an external channel.
type Poster interface {
	// PostArticle sends one announcement. Implementations apply rate
	// limiting and circuit breaking internally.
	PostArticle(ctx context.Context, announcement Announcement) error
}
