package category

import (
	"context"
	"errors"
	"testing"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type stubRepo struct {
	data      map[int64]*entity.Category
	nextID    int64
	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{data: make(map[int64]*entity.Category), nextID: 1}
}

func (r *stubRepo) Get(_ context.Context, id int64) (*entity.Category, error) {
	return r.data[id], nil
}

func (r *stubRepo) List(context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.data))
	for _, c := range r.data {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubRepo) Create(_ context.Context, category *entity.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	category.ID = r.nextID
	r.nextID++
	r.data[category.ID] = category
	return nil
}

func testEditor() *entity.User {
	return &entity.User{ID: 7, Username: "editor", Role: entity.RoleEditor, Active: true}
}

func TestCreate_Category(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)

	category, err := svc.Create(context.Background(), testEditor(), "Politics", "Local and national politics")
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if category.ID != 1 || category.Name != "Politics" {
		t.Fatalf("category=%+v", category)
	}
}

func TestCreate_NonEditorDenied(t *testing.T) {
	svc := NewService(newStubRepo())
	actor := &entity.User{ID: 9, Role: entity.RoleReader}

	_, err := svc.Create(context.Background(), actor, "Politics", "")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = repository.ErrDuplicateKey
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), testEditor(), "Politics", "")
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("want ErrDuplicateCategory, got %v", err)
	}
}

func TestCreate_NameRequired(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.Create(context.Background(), testEditor(), "", "")
	var verr *entity.ValidationError
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("want name validation error, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound, got %v", err)
	}
}
