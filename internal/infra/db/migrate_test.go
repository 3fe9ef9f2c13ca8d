package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var migrateTables = []string{
	"CREATE TABLE IF NOT EXISTS publishers",
	"CREATE TABLE IF NOT EXISTS categories",
	"CREATE TABLE IF NOT EXISTS users",
	"CREATE TABLE IF NOT EXISTS articles",
	"CREATE TABLE IF NOT EXISTS newsletters",
	"CREATE TABLE IF NOT EXISTS subscriptions",
	"CREATE TABLE IF NOT EXISTS notifications",
	"CREATE TABLE IF NOT EXISTS article_dispatches",
	"CREATE TABLE IF NOT EXISTS password_reset_tokens",
}

var migrateIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_articles_status_published_at",
	"CREATE INDEX IF NOT EXISTS idx_articles_author_id",
	"CREATE INDEX IF NOT EXISTS idx_articles_publisher_status",
	"CREATE INDEX IF NOT EXISTS idx_subscriptions_reader_id",
	"CREATE INDEX IF NOT EXISTS idx_subscriptions_publisher_id",
	"CREATE INDEX IF NOT EXISTS idx_subscriptions_journalist_id",
	"CREATE INDEX IF NOT EXISTS idx_notifications_article_id",
	"CREATE INDEX IF NOT EXISTS idx_reset_tokens_user_id",
	"CREATE UNIQUE INDEX IF NOT EXISTS uq_subscriptions_reader_publisher",
	"CREATE UNIQUE INDEX IF NOT EXISTS uq_subscriptions_reader_journalist",
}

func TestMigrateUp_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, stmt := range migrateTables {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for _, idx := range migrateIndexes {
		mock.ExpectExec(idx).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_articles_title_gin").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_articles_summary_gin").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = MigrateUp(db)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_TableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS publishers").
		WillReturnError(sql.ErrConnDone)

	err = MigrateUp(db)
	assert.Error(t, err)
	assert.Equal(t, sql.ErrConnDone, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_IndexError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, stmt := range migrateTables {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_articles_status_published_at").
		WillReturnError(sql.ErrTxDone)

	err = MigrateUp(db)
	assert.Error(t, err)
	assert.Equal(t, sql.ErrTxDone, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_SearchIndexFailureIgnored(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, stmt := range migrateTables {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for _, idx := range migrateIndexes {
		mock.ExpectExec(idx).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	// pg_trgm unavailable: extension and GIN index creation fail, migration
	// still succeeds
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").
		WillReturnError(errors.New("permission denied to create extension"))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_articles_title_gin").
		WillReturnError(errors.New("operator class gin_trgm_ops does not exist"))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_articles_summary_gin").
		WillReturnError(errors.New("operator class gin_trgm_ops does not exist"))

	err = MigrateUp(db)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDown_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	drops := []string{
		"DROP TABLE IF EXISTS password_reset_tokens",
		"DROP TABLE IF EXISTS article_dispatches",
		"DROP TABLE IF EXISTS notifications",
		"DROP TABLE IF EXISTS subscriptions",
		"DROP TABLE IF EXISTS newsletters",
		"DROP TABLE IF EXISTS articles",
		"DROP TABLE IF EXISTS users",
		"DROP TABLE IF EXISTS categories",
		"DROP TABLE IF EXISTS publishers",
	}
	for _, stmt := range drops {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	err = MigrateDown(db)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
