package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id, username, email, first_name, last_name, password_hash, role, publisher_id, active, created_at`

func scanUser(scanner interface{ Scan(...any) error }, user *entity.User) error {
	return scanner.Scan(&user.ID, &user.Username, &user.Email, &user.FirstName,
		&user.LastName, &user.PasswordHash, &user.Role, &user.PublisherID,
		&user.Active, &user.CreatedAt)
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM users
WHERE id = $1
LIMIT 1`, userColumns)
	var user entity.User
	err := scanUser(repo.db.QueryRowContext(ctx, query, id), &user)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &user, nil
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM users
WHERE username = $1
LIMIT 1`, userColumns)
	var user entity.User
	err := scanUser(repo.db.QueryRowContext(ctx, query, username), &user)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	return &user, nil
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM users
WHERE email = $1
LIMIT 1`, userColumns)
	var user entity.User
	err := scanUser(repo.db.QueryRowContext(ctx, query, email), &user)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByEmail: %w", err)
	}
	return &user, nil
}

func (repo *UserRepo) ListJournalists(ctx context.Context, publisherID *int64) ([]*entity.User, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM users
WHERE role = $1 AND active = TRUE`, userColumns)
	args := []any{entity.RoleJournalist}
	if publisherID != nil {
		args = append(args, *publisherID)
		query += fmt.Sprintf(" AND publisher_id = $%d", len(args))
	}
	query += "\nORDER BY username ASC"

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListJournalists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 50)
	for rows.Next() {
		var user entity.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("ListJournalists: Scan: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users
       (username, email, first_name, last_name, password_hash, role, publisher_id, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName,
		user.PasswordHash, user.Role, user.PublisherID, user.Active, user.CreatedAt,
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", repository.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1 WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("UpdatePassword: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdatePassword: %w", entity.ErrNotFound)
	}
	return nil
}
