package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

const articleColumns = `id, title, body, summary, author_id, publisher_id, category_id,
       status, review_note, approved_by, approved_at, published_at, created_at, updated_at`

func scanArticle(scanner interface{ Scan(...any) error }, article *entity.Article) error {
	return scanner.Scan(&article.ID, &article.Title, &article.Body, &article.Summary,
		&article.AuthorID, &article.PublisherID, &article.CategoryID,
		&article.Status, &article.ReviewNote, &article.ApprovedBy,
		&article.ApprovedAt, &article.PublishedAt, &article.CreatedAt, &article.UpdatedAt)
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM articles
WHERE id = $1
LIMIT 1`, articleColumns)
	var article entity.Article
	err := scanArticle(repo.db.QueryRowContext(ctx, query, id), &article)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &article, nil
}

func (repo *ArticleRepo) ListPublished(ctx context.Context, filters repository.ArticleFilters) ([]repository.ArticleWithAuthor, error) {
	query := fmt.Sprintf(`
SELECT a.id, a.title, a.body, a.summary, a.author_id, a.publisher_id, a.category_id,
       a.status, a.review_note, a.approved_by, a.approved_at, a.published_at, a.created_at, a.updated_at,
       u.username AS author_name, COALESCE(p.name, '') AS publisher_name
FROM articles a
INNER JOIN users u ON a.author_id = u.id
LEFT JOIN publishers p ON a.publisher_id = p.id
WHERE a.status = '%s'`, entity.StatusPublished)

	args := make([]any, 0, 2)
	if filters.PublisherID != nil {
		args = append(args, *filters.PublisherID)
		query += fmt.Sprintf(" AND a.publisher_id = $%d", len(args))
	}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		query += fmt.Sprintf(" AND a.category_id = $%d", len(args))
	}
	query += "\nORDER BY a.published_at DESC"

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPublished: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithAuthor, 0, 100)
	for rows.Next() {
		var article entity.Article
		var authorName, publisherName string
		if err := rows.Scan(&article.ID, &article.Title, &article.Body, &article.Summary,
			&article.AuthorID, &article.PublisherID, &article.CategoryID,
			&article.Status, &article.ReviewNote, &article.ApprovedBy,
			&article.ApprovedAt, &article.PublishedAt, &article.CreatedAt, &article.UpdatedAt,
			&authorName, &publisherName); err != nil {
			return nil, fmt.Errorf("ListPublished: Scan: %w", err)
		}
		result = append(result, repository.ArticleWithAuthor{
			Article:       &article,
			AuthorName:    authorName,
			PublisherName: publisherName,
		})
	}
	return result, rows.Err()
}

func (repo *ArticleRepo) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Article, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM articles
WHERE author_id = $1
ORDER BY updated_at DESC`, articleColumns)
	rows, err := repo.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ListByAuthor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		var article entity.Article
		if err := scanArticle(rows, &article); err != nil {
			return nil, fmt.Errorf("ListByAuthor: Scan: %w", err)
		}
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) ListPendingForPublisher(ctx context.Context, publisherID *int64) ([]*entity.Article, error) {
	var query string
	var args []any
	if publisherID != nil {
		query = fmt.Sprintf(`
SELECT %s
FROM articles
WHERE status = $1 AND publisher_id = $2
ORDER BY updated_at ASC`, articleColumns)
		args = []any{entity.StatusPending, *publisherID}
	} else {
		query = fmt.Sprintf(`
SELECT %s
FROM articles
WHERE status = $1 AND publisher_id IS NULL
ORDER BY updated_at ASC`, articleColumns)
		args = []any{entity.StatusPending}
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPendingForPublisher: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		var article entity.Article
		if err := scanArticle(rows, &article); err != nil {
			return nil, fmt.Errorf("ListPendingForPublisher: Scan: %w", err)
		}
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Search(ctx context.Context, keyword string) ([]*entity.Article, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM articles
WHERE status = $1
  AND (title ILIKE $2 OR summary ILIKE $2)
ORDER BY published_at DESC`, articleColumns)
	param := "%" + keyword + "%"
	rows, err := repo.db.QueryContext(ctx, query, entity.StatusPublished, param)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 100)
	for rows.Next() {
		var article entity.Article
		if err := scanArticle(rows, &article); err != nil {
			return nil, fmt.Errorf("Search: Scan: %w", err)
		}
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
       (title, body, summary, author_id, publisher_id, category_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Body, article.Summary,
		article.AuthorID, article.PublisherID, article.CategoryID,
		article.Status, article.CreatedAt, article.UpdatedAt,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) UpdateContent(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles SET
       title        = $1,
       body         = $2,
       summary      = $3,
       publisher_id = $4,
       category_id  = $5,
       updated_at   = $6
WHERE id = $7`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Body, article.Summary,
		article.PublisherID, article.CategoryID, article.UpdatedAt, article.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateContent: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdateContent: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) TransitionStatus(ctx context.Context, id int64, from, to entity.ArticleStatus, stamp repository.TransitionStamp) error {
	// The status guard in the WHERE clause makes concurrent transitions
	// race-free: the losing writer affects zero rows.
	const query = `
UPDATE articles SET
       status      = $1,
       review_note = $2,
       updated_at  = $3
WHERE id = $4 AND status = $5`
	res, err := repo.db.ExecContext(ctx, query, to, stamp.ReviewNote, stamp.At, id, from)
	if err != nil {
		return fmt.Errorf("TransitionStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("TransitionStatus: %w", repository.ErrStatusConflict)
	}
	return nil
}

func (repo *ArticleRepo) MarkPublished(ctx context.Context, id, editorID int64, at time.Time) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("MarkPublished: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const updateQuery = `
UPDATE articles SET
       status       = $1,
       review_note  = '',
       approved_by  = $2,
       approved_at  = $3,
       published_at = $3,
       updated_at   = $3
WHERE id = $4 AND status = $5`
	res, err := tx.ExecContext(ctx, updateQuery,
		entity.StatusPublished, editorID, at, id, entity.StatusPending)
	if err != nil {
		return fmt.Errorf("MarkPublished: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("MarkPublished: %w", repository.ErrStatusConflict)
	}

	// The dispatch marker persists with the status change or not at all, so
	// an approved article always has a matching dispatch record.
	const dispatchQuery = `
INSERT INTO article_dispatches (article_id, dispatched_by, created_at)
VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, dispatchQuery, id, editorID, at); err != nil {
		return fmt.Errorf("MarkPublished: dispatch record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("MarkPublished: commit: %w", err)
	}
	return nil
}
