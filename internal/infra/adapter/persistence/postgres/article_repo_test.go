package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"newsdesk/internal/domain/entity"
	pg "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/repository"
)

var articleCols = []string{
	"id", "title", "body", "summary", "author_id", "publisher_id", "category_id",
	"status", "review_note", "approved_by", "approved_at", "published_at",
	"created_at", "updated_at",
}

func articleRow(a *entity.Article) *sqlmock.Rows {
	return sqlmock.NewRows(articleCols).AddRow(
		a.ID, a.Title, a.Body, a.Summary, a.AuthorID, a.PublisherID, a.CategoryID,
		a.Status, a.ReviewNote, a.ApprovedBy, a.ApprovedAt, a.PublishedAt,
		a.CreatedAt, a.UpdatedAt,
	)
}

func TestArticleRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.Article{
		ID: 1, Title: "Council approves budget", Body: "body", Summary: "sum",
		AuthorID: 7, Status: entity.StatusDraft,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("FROM articles").
		WithArgs(int64(1)).
		WillReturnRows(articleRow(want))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM articles").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("want nil for missing article, got %+v", got)
	}
}

func TestArticleRepo_ListPublished(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	rows := sqlmock.NewRows(append(articleCols, "author_name", "publisher_name")).
		AddRow(int64(1), "t", "b", "s", int64(7), nil, nil,
			entity.StatusPublished, "", int64(3), now, now, now, now,
			"lois", "Daily Planet")

	mock.ExpectQuery("INNER JOIN users").
		WillReturnRows(rows)

	repo := pg.NewArticleRepo(db)
	got, err := repo.ListPublished(context.Background(), repository.ArticleFilters{})
	if err != nil || len(got) != 1 {
		t.Fatalf("ListPublished err=%v len=%d", err, len(got))
	}
	if got[0].AuthorName != "lois" || got[0].PublisherName != "Daily Planet" {
		t.Fatalf("unexpected names: %+v", got[0])
	}
}

func TestArticleRepo_ListPublished_WithFilters(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("a.publisher_id = \\$1 AND a.category_id = \\$2").
		WithArgs(int64(4), int64(9)).
		WillReturnRows(sqlmock.NewRows(append(articleCols, "author_name", "publisher_name")))

	publisherID, categoryID := int64(4), int64(9)
	repo := pg.NewArticleRepo(db)
	_, err := repo.ListPublished(context.Background(), repository.ArticleFilters{
		PublisherID: &publisherID,
		CategoryID:  &categoryID,
	})
	if err != nil {
		t.Fatalf("ListPublished err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_ListByAuthor(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("WHERE author_id").
		WithArgs(int64(7)).
		WillReturnRows(articleRow(&entity.Article{
			ID: 1, Title: "t", Body: "b", AuthorID: 7,
			Status: entity.StatusDraft, CreatedAt: now, UpdatedAt: now,
		}))

	repo := pg.NewArticleRepo(db)
	got, err := repo.ListByAuthor(context.Background(), 7)
	if err != nil || len(got) != 1 {
		t.Fatalf("ListByAuthor err=%v len=%d", err, len(got))
	}
}

func TestArticleRepo_ListPendingForPublisher(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("publisher_id = \\$2").
		WithArgs(string(entity.StatusPending), int64(4)).
		WillReturnRows(sqlmock.NewRows(articleCols))

	publisherID := int64(4)
	repo := pg.NewArticleRepo(db)
	if _, err := repo.ListPendingForPublisher(context.Background(), &publisherID); err != nil {
		t.Fatalf("ListPendingForPublisher err=%v", err)
	}
}

func TestArticleRepo_ListPendingForPublisher_Independent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("publisher_id IS NULL").
		WithArgs(string(entity.StatusPending)).
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(db)
	if _, err := repo.ListPendingForPublisher(context.Background(), nil); err != nil {
		t.Fatalf("ListPendingForPublisher err=%v", err)
	}
}

func TestArticleRepo_Search(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("ILIKE").
		WithArgs(string(entity.StatusPublished), "%budget%").
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(db)
	if _, err := repo.Search(context.Background(), "budget"); err != nil {
		t.Fatalf("Search err=%v", err)
	}
}

func TestArticleRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs("title", "body", "sum", int64(7), nil, nil,
			string(entity.StatusDraft), now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	repo := pg.NewArticleRepo(db)
	article := &entity.Article{
		Title: "title", Body: "body", Summary: "sum", AuthorID: 7,
		Status: entity.StatusDraft, CreatedAt: now, UpdatedAt: now,
	}
	if err := repo.Create(context.Background(), article); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if article.ID != 42 {
		t.Fatalf("Create did not set ID, got %d", article.ID)
	}
}

func TestArticleRepo_UpdateContent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectExec("UPDATE articles").
		WithArgs("new", "body", "sum", nil, nil, now, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewArticleRepo(db)
	err := repo.UpdateContent(context.Background(), &entity.Article{
		ID: 1, Title: "new", Body: "body", Summary: "sum", UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("UpdateContent err=%v", err)
	}
}

func TestArticleRepo_UpdateContent_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectExec("UPDATE articles").
		WithArgs("new", "body", "", nil, nil, now, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewArticleRepo(db)
	err := repo.UpdateContent(context.Background(), &entity.Article{
		ID: 99, Title: "new", Body: "body", UpdatedAt: now,
	})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestArticleRepo_TransitionStatus(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectExec("UPDATE articles").
		WithArgs(string(entity.StatusPending), "", now, int64(1), string(entity.StatusDraft)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewArticleRepo(db)
	err := repo.TransitionStatus(context.Background(), 1,
		entity.StatusDraft, entity.StatusPending,
		repository.TransitionStamp{At: now})
	if err != nil {
		t.Fatalf("TransitionStatus err=%v", err)
	}
}

func TestArticleRepo_TransitionStatus_Conflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	// guard fails: the article already left the draft status
	mock.ExpectExec("UPDATE articles").
		WithArgs(string(entity.StatusPending), "", now, int64(1), string(entity.StatusDraft)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewArticleRepo(db)
	err := repo.TransitionStatus(context.Background(), 1,
		entity.StatusDraft, entity.StatusPending,
		repository.TransitionStamp{At: now})
	if !errors.Is(err, repository.ErrStatusConflict) {
		t.Fatalf("want ErrStatusConflict, got %v", err)
	}
}

func TestArticleRepo_MarkPublished(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE articles").
		WithArgs(string(entity.StatusPublished), int64(3), now, int64(1), string(entity.StatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO article_dispatches").
		WithArgs(int64(1), int64(3), now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	if err := repo.MarkPublished(context.Background(), 1, 3, now); err != nil {
		t.Fatalf("MarkPublished err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_MarkPublished_Conflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE articles").
		WithArgs(string(entity.StatusPublished), int64(3), now, int64(1), string(entity.StatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := pg.NewArticleRepo(db)
	err := repo.MarkPublished(context.Background(), 1, 3, now)
	if !errors.Is(err, repository.ErrStatusConflict) {
		t.Fatalf("want ErrStatusConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DELETE FROM articles").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewArticleRepo(db)
	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
}
