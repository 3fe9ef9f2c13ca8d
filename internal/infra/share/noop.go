package share

import "context"

// NoOpPoster does nothing. It is used when the share webhook is disabled.
type NoOpPoster struct{}

// NewNoOpPoster creates a new NoOpPoster instance.
func NewNoOpPoster() *NoOpPoster {
	return &NoOpPoster{}
}

// PostArticle does nothing and returns nil immediately.
func (n *NoOpPoster) PostArticle(ctx context.Context, announcement Announcement) error {
	return nil
}
