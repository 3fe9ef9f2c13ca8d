package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type NewsletterRepo struct {
	db *sql.DB
}

func NewNewsletterRepo(db *sql.DB) repository.NewsletterRepository {
	return &NewsletterRepo{db: db}
}

const newsletterColumns = `id, title, body, author_id, publisher_id, created_at, updated_at`

func scanNewsletter(scanner interface{ Scan(...any) error }, newsletter *entity.Newsletter) error {
	return scanner.Scan(&newsletter.ID, &newsletter.Title, &newsletter.Body,
		&newsletter.AuthorID, &newsletter.PublisherID,
		&newsletter.CreatedAt, &newsletter.UpdatedAt)
}

func (repo *NewsletterRepo) Get(ctx context.Context, id int64) (*entity.Newsletter, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM newsletters
WHERE id = $1
LIMIT 1`, newsletterColumns)
	var newsletter entity.Newsletter
	err := scanNewsletter(repo.db.QueryRowContext(ctx, query, id), &newsletter)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &newsletter, nil
}

func (repo *NewsletterRepo) List(ctx context.Context) ([]*entity.Newsletter, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM newsletters
ORDER BY created_at DESC`, newsletterColumns)
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	newsletters := make([]*entity.Newsletter, 0, 50)
	for rows.Next() {
		var newsletter entity.Newsletter
		if err := scanNewsletter(rows, &newsletter); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		newsletters = append(newsletters, &newsletter)
	}
	return newsletters, rows.Err()
}

func (repo *NewsletterRepo) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Newsletter, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM newsletters
WHERE author_id = $1
ORDER BY created_at DESC`, newsletterColumns)
	rows, err := repo.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ListByAuthor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	newsletters := make([]*entity.Newsletter, 0, 20)
	for rows.Next() {
		var newsletter entity.Newsletter
		if err := scanNewsletter(rows, &newsletter); err != nil {
			return nil, fmt.Errorf("ListByAuthor: Scan: %w", err)
		}
		newsletters = append(newsletters, &newsletter)
	}
	return newsletters, rows.Err()
}

func (repo *NewsletterRepo) Create(ctx context.Context, newsletter *entity.Newsletter) error {
	const query = `
INSERT INTO newsletters (title, body, author_id, publisher_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		newsletter.Title, newsletter.Body, newsletter.AuthorID,
		newsletter.PublisherID, newsletter.CreatedAt, newsletter.UpdatedAt,
	).Scan(&newsletter.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *NewsletterRepo) Update(ctx context.Context, newsletter *entity.Newsletter) error {
	const query = `
UPDATE newsletters SET
       title      = $1,
       body       = $2,
       updated_at = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query,
		newsletter.Title, newsletter.Body, newsletter.UpdatedAt, newsletter.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *NewsletterRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM newsletters WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}
