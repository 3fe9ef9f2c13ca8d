package entity

import "time"

// ArticleStatus is the approval workflow state of an article.
type ArticleStatus string

// Article approval states. The lifecycle use case is the only writer of the
// status field; see usecase/lifecycle for the permitted transitions.
const (
	StatusDraft     ArticleStatus = "draft"
	StatusPending   ArticleStatus = "pending"
	StatusPublished ArticleStatus = "published"
	StatusRejected  ArticleStatus = "rejected"
)

// Valid reports whether s is one of the known article statuses.
func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// Article represents a news article moving through the approval workflow.
// AuthorID always references a journalist. PublisherID is nil for independent
// articles and must match the author's affiliation otherwise.
type Article struct {
	ID          int64
	Title       string
	Body        string
	Summary     string
	AuthorID    int64
	PublisherID *int64
	CategoryID  *int64
	Status      ArticleStatus
	ReviewNote  string
	ApprovedBy  *int64
	ApprovedAt  *time.Time
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the Article content fields. Workflow invariants (status,
// approver affiliation) are enforced by the lifecycle use case.
func (a *Article) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(a.Title) > 200 {
		return &ValidationError{Field: "title", Message: "must not exceed 200 characters"}
	}
	if a.Body == "" {
		return &ValidationError{Field: "body", Message: "is required"}
	}
	if len(a.Summary) > 500 {
		return &ValidationError{Field: "summary", Message: "must not exceed 500 characters"}
	}
	if a.AuthorID <= 0 {
		return &ValidationError{Field: "author_id", Message: "must be positive"}
	}
	if !a.Status.Valid() {
		return &ValidationError{Field: "status", Message: "is not a valid article status"}
	}
	return nil
}

// Newsletter is a journalist-authored mailing that bypasses the approval
// workflow entirely.
type Newsletter struct {
	ID          int64
	Title       string
	Body        string
	AuthorID    int64
	PublisherID *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the Newsletter fields.
func (n *Newsletter) Validate() error {
	if n.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(n.Title) > 200 {
		return &ValidationError{Field: "title", Message: "must not exceed 200 characters"}
	}
	if n.Body == "" {
		return &ValidationError{Field: "body", Message: "is required"}
	}
	if n.AuthorID <= 0 {
		return &ValidationError{Field: "author_id", Message: "must be positive"}
	}
	return nil
}
