package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type ResetTokenRepo struct {
	db *sql.DB
}

func NewResetTokenRepo(db *sql.DB) repository.ResetTokenRepository {
	return &ResetTokenRepo{db: db}
}

func (repo *ResetTokenRepo) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	const query = `
INSERT INTO password_reset_tokens (user_id, token, used, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		token.UserID, token.Token, token.Used, token.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ResetTokenRepo) GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	const query = `
SELECT id, user_id, token, used, created_at
FROM password_reset_tokens
WHERE token = $1
LIMIT 1`
	var resetToken entity.PasswordResetToken
	err := repo.db.QueryRowContext(ctx, query, token).
		Scan(&resetToken.ID, &resetToken.UserID, &resetToken.Token,
			&resetToken.Used, &resetToken.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByToken: %w", err)
	}
	return &resetToken, nil
}

func (repo *ResetTokenRepo) MarkUsed(ctx context.Context, id int64) error {
	// The used guard keeps the token single-use even when two resets race.
	const query = `UPDATE password_reset_tokens SET used = TRUE WHERE id = $1 AND used = FALSE`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("MarkUsed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("MarkUsed: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ResetTokenRepo) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `
DELETE FROM password_reset_tokens
WHERE used = TRUE OR created_at < now() - $1::interval`
	res, err := repo.db.ExecContext(ctx, query, entity.ResetTokenTTL.String())
	if err != nil {
		return 0, fmt.Errorf("PurgeExpired: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("PurgeExpired: %w", err)
	}
	return n, nil
}
