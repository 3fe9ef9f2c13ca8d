package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/repository"
)

type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) repository.NotificationRepository {
	return &NotificationRepo{db: db}
}

func (repo *NotificationRepo) Claim(ctx context.Context, articleID, readerID int64) (bool, error) {
	// ON CONFLICT DO NOTHING makes the claim atomic: exactly one dispatcher
	// wins the (article, reader) pair even under concurrent re-dispatch.
	const query = `
INSERT INTO notifications (article_id, reader_id, status)
VALUES ($1, $2, 'claimed')
ON CONFLICT (article_id, reader_id) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query, articleID, readerID)
	if err != nil {
		return false, fmt.Errorf("Claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Claim: %w", err)
	}
	return n > 0, nil
}

func (repo *NotificationRepo) MarkResult(ctx context.Context, articleID, readerID int64, status, detail string) error {
	const query = `
UPDATE notifications SET
       status     = $1,
       detail     = $2,
       updated_at = now()
WHERE article_id = $3 AND reader_id = $4`
	res, err := repo.db.ExecContext(ctx, query, status, detail, articleID, readerID)
	if err != nil {
		return fmt.Errorf("MarkResult: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("MarkResult: no claim for article %d reader %d", articleID, readerID)
	}
	return nil
}

func (repo *NotificationRepo) CountByStatus(ctx context.Context, articleID int64, status string) (int64, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE article_id = $1 AND status = $2`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, articleID, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByStatus: %w", err)
	}
	return count, nil
}
