package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

func (repo *CategoryRepo) Get(ctx context.Context, id int64) (*entity.Category, error) {
	const query = `
SELECT id, name, description
FROM categories
WHERE id = $1
LIMIT 1`
	var category entity.Category
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&category.ID, &category.Name, &category.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &category, nil
}

func (repo *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	const query = `
SELECT id, name, description
FROM categories
ORDER BY name ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*entity.Category, 0, 20)
	for rows.Next() {
		var category entity.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

func (repo *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	const query = `
INSERT INTO categories (name, description)
VALUES ($1, $2)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		category.Name, category.Description,
	).Scan(&category.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", repository.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
