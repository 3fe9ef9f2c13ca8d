// Package article provides use cases for browsing and managing articles
// outside the status workflow: drafting, visibility-checked reads, listing,
// search, and deletion. Status changes live in usecase/lifecycle.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrPermissionDenied indicates the acting user may not see or change the
	// article: unpublished articles are visible to the author and moderating
	// editors only.
	ErrPermissionDenied = errors.New("permission denied")
)
