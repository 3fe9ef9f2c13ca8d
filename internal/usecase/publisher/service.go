// Package publisher provides use cases for managing publishers.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// Sentinel errors for publisher use case operations.
var (
	// ErrPublisherNotFound indicates that the requested publisher was not found.
	ErrPublisherNotFound = errors.New("publisher not found")

	// ErrPermissionDenied indicates the acting user may not create publishers.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDuplicatePublisher indicates a publisher with the same name exists.
	ErrDuplicatePublisher = errors.New("publisher with this name already exists")
)

// CreateInput represents the input parameters for creating a publisher.
type CreateInput struct {
	Name        string
	Description string
	Website     string
}

// Service provides publisher management use cases.
type Service struct {
	Repo repository.PublisherRepository
	// Now is swapped in tests.
	Now func() time.Time
}

// NewService creates a publisher service.
func NewService(repo repository.PublisherRepository) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// List retrieves all publishers.
func (s *Service) List(ctx context.Context) ([]*entity.Publisher, error) {
	publishers, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	return publishers, nil
}

// Get retrieves a single publisher by its ID.
// Returns ErrPublisherNotFound if the publisher does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Publisher, error) {
	publisher, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get publisher: %w", err)
	}
	if publisher == nil {
		return nil, ErrPublisherNotFound
	}
	return publisher, nil
}

// Create registers a new publisher. Only editors create publishers.
// Returns ErrDuplicatePublisher when the name is taken.
func (s *Service) Create(ctx context.Context, actor *entity.User, in CreateInput) (*entity.Publisher, error) {
	if !actor.IsEditor() {
		return nil, fmt.Errorf("create publisher: %w", ErrPermissionDenied)
	}

	publisher := &entity.Publisher{
		Name:        in.Name,
		Description: in.Description,
		Website:     in.Website,
		CreatedAt:   s.Now(),
	}
	if err := publisher.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, publisher); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicatePublisher
		}
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	return publisher, nil
}
