package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type SubscriptionRepo struct {
	db *sql.DB
}

func NewSubscriptionRepo(db *sql.DB) repository.SubscriptionRepository {
	return &SubscriptionRepo{db: db}
}

func (repo *SubscriptionRepo) Get(ctx context.Context, id int64) (*entity.Subscription, error) {
	const query = `
SELECT id, reader_id, publisher_id, journalist_id, created_at
FROM subscriptions
WHERE id = $1
LIMIT 1`
	var sub entity.Subscription
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&sub.ID, &sub.ReaderID, &sub.PublisherID, &sub.JournalistID, &sub.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &sub, nil
}

func (repo *SubscriptionRepo) ListByReader(ctx context.Context, readerID int64) ([]*entity.Subscription, error) {
	const query = `
SELECT id, reader_id, publisher_id, journalist_id, created_at
FROM subscriptions
WHERE reader_id = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, readerID)
	if err != nil {
		return nil, fmt.Errorf("ListByReader: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := make([]*entity.Subscription, 0, 20)
	for rows.Next() {
		var sub entity.Subscription
		if err := rows.Scan(&sub.ID, &sub.ReaderID, &sub.PublisherID,
			&sub.JournalistID, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListByReader: Scan: %w", err)
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func (repo *SubscriptionRepo) Exists(ctx context.Context, readerID int64, publisherID, journalistID *int64) (bool, error) {
	var query string
	var target int64
	switch {
	case publisherID != nil:
		query = `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE reader_id = $1 AND publisher_id = $2)`
		target = *publisherID
	case journalistID != nil:
		query = `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE reader_id = $1 AND journalist_id = $2)`
		target = *journalistID
	default:
		return false, fmt.Errorf("Exists: %w", entity.ErrInvalidInput)
	}

	var existsFlag bool
	if err := repo.db.QueryRowContext(ctx, query, readerID, target).Scan(&existsFlag); err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return existsFlag, nil
}

func (repo *SubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	const query = `
INSERT INTO subscriptions (reader_id, publisher_id, journalist_id, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		sub.ReaderID, sub.PublisherID, sub.JournalistID, sub.CreatedAt,
	).Scan(&sub.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", repository.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *SubscriptionRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM subscriptions WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *SubscriptionRepo) ResolveSubscribers(ctx context.Context, publisherID *int64, authorID int64) ([]*entity.User, error) {
	// UNION deduplicates readers subscribed to both the publisher and the
	// author, so each recipient appears once.
	var query string
	var args []any
	if publisherID != nil {
		query = `
SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash,
       u.role, u.publisher_id, u.active, u.created_at
FROM users u
WHERE u.active = TRUE AND u.id IN (
    SELECT reader_id FROM subscriptions WHERE publisher_id = $1
    UNION
    SELECT reader_id FROM subscriptions WHERE journalist_id = $2
)
ORDER BY u.id ASC`
		args = []any{*publisherID, authorID}
	} else {
		query = `
SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash,
       u.role, u.publisher_id, u.active, u.created_at
FROM users u
WHERE u.active = TRUE AND u.id IN (
    SELECT reader_id FROM subscriptions WHERE journalist_id = $1
)
ORDER BY u.id ASC`
		args = []any{authorID}
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ResolveSubscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	readers := make([]*entity.User, 0, 100)
	for rows.Next() {
		var user entity.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("ResolveSubscribers: Scan: %w", err)
		}
		readers = append(readers, &user)
	}
	return readers, rows.Err()
}
