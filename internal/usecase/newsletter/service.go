// Package newsletter provides use cases for journalist-authored newsletters.
// Newsletters bypass the article approval workflow entirely: the authoring
// journalist creates, updates, and deletes them directly.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// Sentinel errors for newsletter use case operations.
var (
	// ErrNewsletterNotFound indicates that the requested newsletter was not found.
	ErrNewsletterNotFound = errors.New("newsletter not found")

	// ErrPermissionDenied indicates the acting user may not perform the
	// operation: only journalists write newsletters, and only the author may
	// change or delete one.
	ErrPermissionDenied = errors.New("permission denied")
)

// Input represents the writable newsletter fields.
type Input struct {
	Title string
	Body  string
}

// Service provides newsletter management use cases.
type Service struct {
	Repo repository.NewsletterRepository
	// Now is swapped in tests.
	Now func() time.Time
}

// NewService creates a newsletter service.
func NewService(repo repository.NewsletterRepository) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// List retrieves all newsletters.
func (s *Service) List(ctx context.Context) ([]*entity.Newsletter, error) {
	newsletters, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list newsletters: %w", err)
	}
	return newsletters, nil
}

// ListOwn retrieves the acting journalist's newsletters.
func (s *Service) ListOwn(ctx context.Context, actor *entity.User) ([]*entity.Newsletter, error) {
	newsletters, err := s.Repo.ListByAuthor(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list own newsletters: %w", err)
	}
	return newsletters, nil
}

// Get retrieves a single newsletter by its ID.
// Returns ErrNewsletterNotFound if the newsletter does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Newsletter, error) {
	newsletter, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	if newsletter == nil {
		return nil, ErrNewsletterNotFound
	}
	return newsletter, nil
}

// Create writes a new newsletter authored by the acting journalist.
func (s *Service) Create(ctx context.Context, actor *entity.User, in Input) (*entity.Newsletter, error) {
	if !actor.IsJournalist() {
		return nil, fmt.Errorf("create newsletter: %w", ErrPermissionDenied)
	}

	now := s.Now()
	newsletter := &entity.Newsletter{
		Title:       in.Title,
		Body:        in.Body,
		AuthorID:    actor.ID,
		PublisherID: actor.PublisherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := newsletter.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, newsletter); err != nil {
		return nil, fmt.Errorf("create newsletter: %w", err)
	}
	return newsletter, nil
}

// Update rewrites the newsletter content. Only the author may update.
func (s *Service) Update(ctx context.Context, id int64, actor *entity.User, in Input) (*entity.Newsletter, error) {
	newsletter, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if newsletter.AuthorID != actor.ID {
		return nil, fmt.Errorf("update newsletter %d: %w", id, ErrPermissionDenied)
	}

	newsletter.Title = in.Title
	newsletter.Body = in.Body
	newsletter.UpdatedAt = s.Now()
	if err := newsletter.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, newsletter); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrNewsletterNotFound
		}
		return nil, fmt.Errorf("update newsletter: %w", err)
	}
	return newsletter, nil
}

// Delete removes the newsletter. Only the author may delete.
func (s *Service) Delete(ctx context.Context, id int64, actor *entity.User) error {
	newsletter, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if newsletter.AuthorID != actor.ID {
		return fmt.Errorf("delete newsletter %d: %w", id, ErrPermissionDenied)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete newsletter: %w", err)
	}
	return nil
}
