package article

import (
	"context"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// CreateInput represents the input parameters for drafting a new article.
type CreateInput struct {
	Title       string
	Body        string
	Summary     string
	CategoryID  *int64
	PublisherID *int64
}

// Service provides article management use cases around the status workflow.
// It handles drafting, visibility rules, listing, search, and deletion, and
// delegates persistence to the repository.
type Service struct {
	Repo repository.ArticleRepository
	// Now is swapped in tests.
	Now func() time.Time
}

// NewService creates an article service.
func NewService(repo repository.ArticleRepository) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Create drafts a new article authored by the acting journalist. The
// publisher defaults to the author's affiliation; an explicit publisher must
// match it.
// Returns ErrPermissionDenied when the actor is not a journalist.
func (s *Service) Create(ctx context.Context, actor *entity.User, in CreateInput) (*entity.Article, error) {
	if !actor.IsJournalist() {
		return nil, fmt.Errorf("create article: %w", ErrPermissionDenied)
	}

	publisherID := in.PublisherID
	if publisherID == nil {
		publisherID = actor.PublisherID
	} else if !actor.AffiliatedWith(*publisherID) {
		return nil, &entity.ValidationError{
			Field: "publisher_id", Message: "must match the author's affiliation",
		}
	}

	now := s.Now()
	art := &entity.Article{
		Title:       in.Title,
		Body:        in.Body,
		Summary:     in.Summary,
		AuthorID:    actor.ID,
		PublisherID: publisherID,
		CategoryID:  in.CategoryID,
		Status:      entity.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := art.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Get retrieves a single article by its ID, enforcing visibility: published
// articles are visible to everyone, unpublished ones to the author and to
// editors allowed to moderate them.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64, actor *entity.User) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	if !visibleTo(art, actor) {
		return nil, fmt.Errorf("get article %d: %w", id, ErrPermissionDenied)
	}
	return art, nil
}

// ListPublished retrieves published articles newest first, optionally
// filtered by publisher or category.
func (s *Service) ListPublished(ctx context.Context, filters repository.ArticleFilters) ([]repository.ArticleWithAuthor, error) {
	articles, err := s.Repo.ListPublished(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	return articles, nil
}

// ListOwn retrieves all of the actor's articles regardless of status.
func (s *Service) ListOwn(ctx context.Context, actor *entity.User) ([]*entity.Article, error) {
	articles, err := s.Repo.ListByAuthor(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list own articles: %w", err)
	}
	return articles, nil
}

// ListPendingReview retrieves the actor's moderation queue: pending articles
// of the editor's publisher plus pending articles without a publisher, oldest
// update first.
// Returns ErrPermissionDenied when the actor is not an editor.
func (s *Service) ListPendingReview(ctx context.Context, actor *entity.User) ([]*entity.Article, error) {
	if !actor.IsEditor() {
		return nil, fmt.Errorf("list pending review: %w", ErrPermissionDenied)
	}

	queue := make([]*entity.Article, 0, 50)
	if actor.PublisherID != nil {
		articles, err := s.Repo.ListPendingForPublisher(ctx, actor.PublisherID)
		if err != nil {
			return nil, fmt.Errorf("list pending review: %w", err)
		}
		queue = append(queue, articles...)
	}

	// publisherless articles accept any editor
	unaffiliated, err := s.Repo.ListPendingForPublisher(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list pending review: %w", err)
	}
	return append(queue, unaffiliated...), nil
}

// Search finds published articles matching the given keyword.
// The search is performed against article titles and summaries.
func (s *Service) Search(ctx context.Context, kw string) ([]*entity.Article, error) {
	articles, err := s.Repo.Search(ctx, kw)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return articles, nil
}

// Delete removes an article. The author may delete while the article is
// draft or rejected; a moderating editor may delete at any status.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Delete(ctx context.Context, id int64, actor *entity.User) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return ErrArticleNotFound
	}

	editable := art.Status == entity.StatusDraft || art.Status == entity.StatusRejected
	switch {
	case moderates(art, actor):
	case art.AuthorID == actor.ID && editable:
	default:
		return fmt.Errorf("delete article %d: %w", id, ErrPermissionDenied)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// visibleTo reports whether the actor may read the article.
func visibleTo(art *entity.Article, actor *entity.User) bool {
	if art.Status == entity.StatusPublished {
		return true
	}
	return art.AuthorID == actor.ID || moderates(art, actor)
}

// moderates reports whether the actor is an editor allowed to moderate the
// article.
func moderates(art *entity.Article, actor *entity.User) bool {
	if !actor.IsEditor() {
		return false
	}
	return art.PublisherID == nil || actor.AffiliatedWith(*art.PublisherID)
}
