// Package category provides use cases for managing article categories.
package category

import (
	"context"
	"errors"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// Sentinel errors for category use case operations.
var (
	// ErrCategoryNotFound indicates that the requested category was not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrPermissionDenied indicates the acting user may not create categories.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDuplicateCategory indicates a category with the same name exists.
	ErrDuplicateCategory = errors.New("category with this name already exists")
)

// Service provides category management use cases.
type Service struct {
	Repo repository.CategoryRepository
}

// NewService creates a category service.
func NewService(repo repository.CategoryRepository) *Service {
	return &Service{Repo: repo}
}

// List retrieves all categories.
func (s *Service) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get retrieves a single category by its ID.
// Returns ErrCategoryNotFound if the category does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create registers a new category. Only editors create categories.
// Returns ErrDuplicateCategory when the name is taken.
func (s *Service) Create(ctx context.Context, actor *entity.User, name, description string) (*entity.Category, error) {
	if !actor.IsEditor() {
		return nil, fmt.Errorf("create category: %w", ErrPermissionDenied)
	}

	category := &entity.Category{Name: name, Description: description}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}
