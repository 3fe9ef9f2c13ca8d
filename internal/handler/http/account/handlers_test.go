package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/repository"
	accUC "newsdesk/internal/usecase/account"
)

// cheap hash parameters keep the tests fast
var testHashParams = &argon2id.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type stubUserRepo struct {
	byUsername map[string]*entity.User
	byEmail    map[string]*entity.User
	nextID     int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byUsername: map[string]*entity.User{},
		byEmail:    map[string]*entity.User{},
		nextID:     1,
	}
}

func (r *stubUserRepo) Get(context.Context, int64) (*entity.User, error) { return nil, nil }

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.byUsername[username], nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *stubUserRepo) ListJournalists(context.Context, *int64) ([]*entity.User, error) {
	return nil, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, exists := r.byUsername[user.Username]; exists {
		return repository.ErrDuplicateKey
	}
	user.ID = r.nextID
	r.nextID++
	r.byUsername[user.Username] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	for _, u := range r.byUsername {
		if u.ID == id {
			u.PasswordHash = hash
		}
	}
	return nil
}

type stubTokenRepo struct {
	tokens map[string]*entity.PasswordResetToken
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: map[string]*entity.PasswordResetToken{}}
}

func (r *stubTokenRepo) Create(_ context.Context, token *entity.PasswordResetToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *stubTokenRepo) GetByToken(_ context.Context, value string) (*entity.PasswordResetToken, error) {
	return r.tokens[value], nil
}

func (r *stubTokenRepo) MarkUsed(_ context.Context, id int64) error {
	for _, t := range r.tokens {
		if t.ID == id {
			if t.Used {
				return entity.ErrNotFound
			}
			t.Used = true
			return nil
		}
	}
	return entity.ErrNotFound
}

func (r *stubTokenRepo) PurgeExpired(context.Context) (int64, error) { return 0, nil }

type recordingMailer struct {
	sent []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type fixture struct {
	users  *stubUserRepo
	tokens *stubTokenRepo
	mail   *recordingMailer
	mux    *http.ServeMux
}

func newFixture() *fixture {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	mail := &recordingMailer{}
	svc := accUC.NewService(users, tokens, mail, mailer.DefaultTemplates())
	svc.HashParams = testHashParams
	svc.NewToken = func() string { return "fixed-token" }
	mux := http.NewServeMux()
	Register(mux, svc)
	return &fixture{users: users, tokens: tokens, mail: mail, mux: mux}
}

func (f *fixture) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestRegisterHandler_CreatesReader(t *testing.T) {
	f := newFixture()

	rec := f.post("/auth/register",
		`{"username":"lois","email":"lois@example.com","password":"correct-horse"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var out UserDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode err=%v", err)
	}
	if out.Role != "reader" {
		t.Errorf("role=%q want reader", out.Role)
	}
	if strings.Contains(rec.Body.String(), "correct-horse") {
		t.Error("response leaks the password")
	}
	stored := f.users.byUsername["lois"]
	if stored == nil || stored.PasswordHash == "" || stored.PasswordHash == "correct-horse" {
		t.Fatalf("password not hashed: %+v", stored)
	}
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	f := newFixture()

	rec := f.post("/auth/register",
		`{"username":"lois","email":"lois@example.com","password":"correct-horse"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register status=%d", rec.Code)
	}

	rec = f.post("/auth/register",
		`{"username":"lois","email":"other@example.com","password":"correct-horse"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second register status=%d", rec.Code)
	}
}

func TestRegisterHandler_ShortPassword(t *testing.T) {
	f := newFixture()

	rec := f.post("/auth/register",
		`{"username":"lois","email":"lois@example.com","password":"short"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestPasswordResetHandler_SendsMail(t *testing.T) {
	f := newFixture()
	f.users.byEmail["lois@example.com"] = &entity.User{
		ID: 1, Username: "lois", Email: "lois@example.com",
		Role: entity.RoleReader, Active: true,
	}

	rec := f.post("/auth/password-reset", `{"email":"lois@example.com"}`)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if len(f.mail.sent) != 1 {
		t.Fatalf("sent=%d want 1", len(f.mail.sent))
	}
	if !strings.Contains(f.mail.sent[0].Body, "fixed-token") {
		t.Errorf("mail body lacks the token: %q", f.mail.sent[0].Body)
	}
}

func TestPasswordResetHandler_UnknownEmailSameResponse(t *testing.T) {
	f := newFixture()

	rec := f.post("/auth/password-reset", `{"email":"ghost@example.com"}`)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status=%d", rec.Code)
	}
	if len(f.mail.sent) != 0 {
		t.Errorf("sent=%d want 0", len(f.mail.sent))
	}
}

func TestPasswordResetConfirmHandler_SetsNewPassword(t *testing.T) {
	f := newFixture()
	f.users.byEmail["lois@example.com"] = &entity.User{
		ID: 1, Username: "lois", Email: "lois@example.com",
		Role: entity.RoleReader, Active: true,
	}
	f.users.byUsername["lois"] = f.users.byEmail["lois@example.com"]

	rec := f.post("/auth/password-reset", `{"email":"lois@example.com"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("request status=%d", rec.Code)
	}

	rec = f.post("/auth/password-reset/confirm",
		`{"token":"fixed-token","password":"brand-new-password"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("confirm status=%d body=%s", rec.Code, rec.Body.String())
	}

	match, err := argon2id.ComparePasswordAndHash("brand-new-password",
		f.users.byUsername["lois"].PasswordHash)
	if err != nil || !match {
		t.Fatalf("new password does not verify: match=%v err=%v", match, err)
	}

	// a token redeems once
	rec = f.post("/auth/password-reset/confirm",
		`{"token":"fixed-token","password":"another-password"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reuse status=%d", rec.Code)
	}
}

func TestPasswordResetConfirmHandler_UnknownToken(t *testing.T) {
	f := newFixture()

	rec := f.post("/auth/password-reset/confirm",
		`{"token":"bogus","password":"brand-new-password"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
}
