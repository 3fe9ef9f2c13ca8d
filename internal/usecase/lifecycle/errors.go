// Package lifecycle implements the article approval workflow. It is the only
// writer of the article status field: drafts are submitted for review,
// editors approve or reject, and approval triggers the notification
// dispatcher.
package lifecycle

import "errors"

// Sentinel errors for lifecycle operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrPermissionDenied indicates the acting user may not perform the
	// operation on this article: not the author, not an editor, or an editor
	// of a different publisher.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidTransition indicates the article is not in a status the
	// operation accepts. It also surfaces lost transition races.
	ErrInvalidTransition = errors.New("invalid status transition")
)
