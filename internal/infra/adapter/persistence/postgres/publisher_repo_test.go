package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"newsdesk/internal/domain/entity"
	pg "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/repository"
)

func TestPublisherRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.Publisher{
		ID: 4, Name: "Daily Planet", Description: "metro news",
		Website: "https://planet.example.com", CreatedAt: now,
	}

	mock.ExpectQuery("FROM publishers").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "website", "created_at",
		}).AddRow(want.ID, want.Name, want.Description, want.Website, want.CreatedAt))

	repo := pg.NewPublisherRepo(db)
	got, err := repo.Get(context.Background(), 4)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPublisherRepo_Create_DuplicateName(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO publishers")).
		WithArgs("Daily Planet", "", "", now).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "publishers_name_key"})

	repo := pg.NewPublisherRepo(db)
	err := repo.Create(context.Background(), &entity.Publisher{Name: "Daily Planet", CreatedAt: now})
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("want ErrDuplicateKey, got %v", err)
	}
}

func TestCategoryRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
			AddRow(int64(1), "politics", "").
			AddRow(int64(2), "sports", ""))

	repo := pg.NewCategoryRepo(db)
	got, err := repo.List(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
}

func TestNewsletterRepo_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectExec("UPDATE newsletters").
		WithArgs("t", "b", now, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewNewsletterRepo(db)
	err := repo.Update(context.Background(), &entity.Newsletter{
		ID: 99, Title: "t", Body: "b", UpdatedAt: now,
	})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestNewsletterRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO newsletters")).
		WithArgs("weekly roundup", "body", int64(7), nil, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	repo := pg.NewNewsletterRepo(db)
	newsletter := &entity.Newsletter{
		Title: "weekly roundup", Body: "body", AuthorID: 7,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := repo.Create(context.Background(), newsletter); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if newsletter.ID != 3 {
		t.Fatalf("Create did not set ID, got %d", newsletter.ID)
	}
}
