package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/repository"
	artUC "newsdesk/internal/usecase/article"
	"newsdesk/internal/usecase/lifecycle"
)

type stubRepo struct {
	mu      sync.Mutex
	data    map[int64]*entity.Article
	nextID  int64
	deleted []int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Article{}, nextID: 1}
}

func (r *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	art, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	cp := *art
	return &cp, nil
}

func (r *stubRepo) ListPublished(_ context.Context, filters repository.ArticleFilters) ([]repository.ArticleWithAuthor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.ArticleWithAuthor
	for _, art := range r.data {
		if art.Status != entity.StatusPublished {
			continue
		}
		if filters.PublisherID != nil &&
			(art.PublisherID == nil || *art.PublisherID != *filters.PublisherID) {
			continue
		}
		if filters.CategoryID != nil &&
			(art.CategoryID == nil || *art.CategoryID != *filters.CategoryID) {
			continue
		}
		cp := *art
		out = append(out, repository.ArticleWithAuthor{
			Article: &cp, AuthorName: "clark", PublisherName: "Daily Planet",
		})
	}
	return out, nil
}

func (r *stubRepo) ListByAuthor(_ context.Context, authorID int64) ([]*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Article
	for _, art := range r.data {
		if art.AuthorID == authorID {
			cp := *art
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubRepo) ListPendingForPublisher(_ context.Context, publisherID *int64) ([]*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Article
	for _, art := range r.data {
		if art.Status != entity.StatusPending {
			continue
		}
		switch {
		case publisherID == nil && art.PublisherID == nil:
		case publisherID != nil && art.PublisherID != nil && *art.PublisherID == *publisherID:
		default:
			continue
		}
		cp := *art
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubRepo) Search(_ context.Context, _ string) ([]*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Article
	for _, art := range r.data {
		if art.Status == entity.StatusPublished {
			cp := *art
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubRepo) Create(_ context.Context, art *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	art.ID = r.nextID
	r.nextID++
	cp := *art
	r.data[art.ID] = &cp
	return nil
}

func (r *stubRepo) UpdateContent(_ context.Context, art *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.data[art.ID]
	if !ok {
		return entity.ErrNotFound
	}
	cur.Title, cur.Body, cur.Summary = art.Title, art.Body, art.Summary
	cur.CategoryID, cur.PublisherID = art.CategoryID, art.PublisherID
	cur.UpdatedAt = art.UpdatedAt
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubRepo) TransitionStatus(_ context.Context, id int64, from, to entity.ArticleStatus, stamp repository.TransitionStamp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	art, ok := r.data[id]
	if !ok || art.Status != from {
		return repository.ErrStatusConflict
	}
	art.Status = to
	art.ReviewNote = stamp.ReviewNote
	art.UpdatedAt = stamp.At
	return nil
}

func (r *stubRepo) MarkPublished(_ context.Context, id, editorID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	art, ok := r.data[id]
	if !ok || art.Status != entity.StatusPending {
		return repository.ErrStatusConflict
	}
	art.Status = entity.StatusPublished
	art.ReviewNote = ""
	art.ApprovedBy = &editorID
	art.ApprovedAt = &at
	art.PublishedAt = &at
	return nil
}

type noopDispatcher struct {
	mu       sync.Mutex
	articles []*entity.Article
}

func (d *noopDispatcher) NotifyPublished(_ context.Context, art *entity.Article) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.articles = append(d.articles, art)
	return nil
}

type fixture struct {
	repo       *stubRepo
	dispatcher *noopDispatcher
	mux        *http.ServeMux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newStubRepo()
	dispatcher := &noopDispatcher{}
	svc := artUC.NewService(repo)
	wf := lifecycle.NewService(repo, dispatcher)
	mux := http.NewServeMux()
	Register(mux, svc, wf)
	return &fixture{repo: repo, dispatcher: dispatcher, mux: mux}
}

// do serves a request through the mux with the actor on the context, the way
// the authorization middleware provides it.
func (f *fixture) do(req *http.Request, actor *entity.User) *httptest.ResponseRecorder {
	if actor != nil {
		req = req.WithContext(auth.ContextWithUser(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func ptr[T any](v T) *T { return &v }

func journalist(id int64, publisherID *int64) *entity.User {
	return &entity.User{ID: id, Username: "journalist", Role: entity.RoleJournalist,
		PublisherID: publisherID, Active: true}
}

func editor(id int64, publisherID *int64) *entity.User {
	return &entity.User{ID: id, Username: "editor", Role: entity.RoleEditor,
		PublisherID: publisherID, Active: true}
}

func reader(id int64) *entity.User {
	return &entity.User{ID: id, Username: "reader", Role: entity.RoleReader, Active: true}
}

func (f *fixture) seed(t *testing.T, art *entity.Article) int64 {
	t.Helper()
	if art.Title == "" {
		art.Title = "seeded title"
	}
	if art.Body == "" {
		art.Body = "seeded body"
	}
	if err := f.repo.Create(context.Background(), art); err != nil {
		t.Fatalf("seed article err=%v", err)
	}
	return art.ID
}
