package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type PublisherRepo struct {
	db *sql.DB
}

func NewPublisherRepo(db *sql.DB) repository.PublisherRepository {
	return &PublisherRepo{db: db}
}

func (repo *PublisherRepo) Get(ctx context.Context, id int64) (*entity.Publisher, error) {
	const query = `
SELECT id, name, description, website, created_at
FROM publishers
WHERE id = $1
LIMIT 1`
	var publisher entity.Publisher
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&publisher.ID, &publisher.Name, &publisher.Description,
			&publisher.Website, &publisher.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &publisher, nil
}

func (repo *PublisherRepo) List(ctx context.Context) ([]*entity.Publisher, error) {
	const query = `
SELECT id, name, description, website, created_at
FROM publishers
ORDER BY name ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	publishers := make([]*entity.Publisher, 0, 20)
	for rows.Next() {
		var publisher entity.Publisher
		if err := rows.Scan(&publisher.ID, &publisher.Name, &publisher.Description,
			&publisher.Website, &publisher.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		publishers = append(publishers, &publisher)
	}
	return publishers, rows.Err()
}

func (repo *PublisherRepo) Create(ctx context.Context, publisher *entity.Publisher) error {
	const query = `
INSERT INTO publishers (name, description, website, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		publisher.Name, publisher.Description, publisher.Website, publisher.CreatedAt,
	).Scan(&publisher.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", repository.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
