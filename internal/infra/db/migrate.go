package db

import (
	"database/sql"
)

// MigrateUp creates the schema. Every statement is idempotent so the
// migration can run at every startup.
func MigrateUp(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS publishers (
    id          SERIAL PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    website     TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS categories (
    id          SERIAL PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT ''
)`,
		`CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL UNIQUE,
    first_name    TEXT NOT NULL DEFAULT '',
    last_name     TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    role          VARCHAR(20) NOT NULL,
    publisher_id  INTEGER REFERENCES publishers(id),
    active        BOOLEAN NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    CHECK (role IN ('reader', 'journalist', 'editor'))
)`,
		`CREATE TABLE IF NOT EXISTS articles (
    id           SERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    body         TEXT NOT NULL,
    summary      TEXT NOT NULL DEFAULT '',
    author_id    INTEGER NOT NULL REFERENCES users(id),
    publisher_id INTEGER REFERENCES publishers(id),
    category_id  INTEGER REFERENCES categories(id),
    status       VARCHAR(20) NOT NULL DEFAULT 'draft',
    review_note  TEXT NOT NULL DEFAULT '',
    approved_by  INTEGER REFERENCES users(id),
    approved_at  TIMESTAMPTZ,
    published_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    CHECK (status IN ('draft', 'pending', 'published', 'rejected'))
)`,
		`CREATE TABLE IF NOT EXISTS newsletters (
    id           SERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    body         TEXT NOT NULL,
    author_id    INTEGER NOT NULL REFERENCES users(id),
    publisher_id INTEGER REFERENCES publishers(id),
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
    id            SERIAL PRIMARY KEY,
    reader_id     INTEGER NOT NULL REFERENCES users(id),
    publisher_id  INTEGER REFERENCES publishers(id),
    journalist_id INTEGER REFERENCES users(id),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    CHECK ((publisher_id IS NULL) <> (journalist_id IS NULL))
)`,
		`CREATE TABLE IF NOT EXISTS notifications (
    id         SERIAL PRIMARY KEY,
    article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    reader_id  INTEGER NOT NULL REFERENCES users(id),
    status     VARCHAR(20) NOT NULL DEFAULT 'claimed',
    detail     TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (article_id, reader_id)
)`,
		`CREATE TABLE IF NOT EXISTS article_dispatches (
    article_id    INTEGER PRIMARY KEY REFERENCES articles(id) ON DELETE CASCADE,
    dispatched_by INTEGER NOT NULL REFERENCES users(id),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS password_reset_tokens (
    id         SERIAL PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    token      TEXT NOT NULL UNIQUE,
    used       BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	}
	for _, stmt := range tables {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		// published feed is ordered newest first
		`CREATE INDEX IF NOT EXISTS idx_articles_status_published_at ON articles(status, published_at DESC)`,
		// journalist dashboard
		`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
		// editor review queue
		`CREATE INDEX IF NOT EXISTS idx_articles_publisher_status ON articles(publisher_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_reader_id ON subscriptions(reader_id)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_publisher_id ON subscriptions(publisher_id)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_journalist_id ON subscriptions(journalist_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_article_id ON notifications(article_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reset_tokens_user_id ON password_reset_tokens(user_id)`,
		// duplicate-subscription guard: partial unique indexes because a plain
		// UNIQUE over nullable columns would not reject repeats
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_subscriptions_reader_publisher
    ON subscriptions(reader_id, publisher_id) WHERE publisher_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_subscriptions_reader_journalist
    ON subscriptions(reader_id, journalist_id) WHERE journalist_id IS NOT NULL`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up ILIKE search over titles and summaries. Ignore errors:
	// the extension may already exist or the role may lack the privilege.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_summary_gin ON articles USING gin(summary gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		// fails without pg_trgm, search falls back to sequential scans
		_, _ = db.Exec(idx)
	}

	return nil
}

// MigrateDown drops the schema in reverse dependency order.
// Use with caution: this deletes all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS password_reset_tokens`,
		`DROP TABLE IF EXISTS article_dispatches`,
		`DROP TABLE IF EXISTS notifications`,
		`DROP TABLE IF EXISTS subscriptions`,
		`DROP TABLE IF EXISTS newsletters`,
		`DROP TABLE IF EXISTS articles`,
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS categories`,
		`DROP TABLE IF EXISTS publishers`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
