// Package newsletter provides HTTP handlers for newsletter endpoints.
// Newsletters are journalist-authored bulletins published directly, outside
// the article approval workflow.
package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	nlUC "newsdesk/internal/usecase/newsletter"
)

// DTO represents the JSON structure for newsletter data transfer.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	AuthorID    int64     `json:"author_id"`
	PublisherID *int64    `json:"publisher_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toDTO(n *entity.Newsletter) DTO {
	return DTO{
		ID:          n.ID,
		Title:       n.Title,
		Body:        n.Body,
		AuthorID:    n.AuthorID,
		PublisherID: n.PublisherID,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func toDTOs(newsletters []*entity.Newsletter) []DTO {
	out := make([]DTO, 0, len(newsletters))
	for _, n := range newsletters {
		out = append(out, toDTO(n))
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr), errors.Is(err, pathutil.ErrInvalidID):
		respond.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, nlUC.ErrNewsletterNotFound):
		respond.Error(w, http.StatusNotFound, err)
	case errors.Is(err, nlUC.ErrPermissionDenied):
		respond.Error(w, http.StatusForbidden, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

func actorFrom(w http.ResponseWriter, r *http.Request) *entity.User {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.Error(w, http.StatusUnauthorized, errors.New("authentication required"))
	}
	return actor
}

type ListHandler struct{ Svc *nlUC.Service }

// ServeHTTP lists newsletters. mine=true restricts the list to the caller's
// own newsletters.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("mine") == "true" {
		actor := actorFrom(w, r)
		if actor == nil {
			return
		}
		newsletters, err := h.Svc.ListOwn(r.Context(), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDTOs(newsletters))
		return
	}

	newsletters, err := h.Svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(newsletters))
}

type GetHandler struct{ Svc *nlUC.Service }

// ServeHTTP retrieves a single newsletter by ID.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	n, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(n))
}

type CreateHandler struct{ Svc *nlUC.Service }

// ServeHTTP publishes a newsletter authored by the acting journalist.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(w, r)
	if actor == nil {
		return
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	n, err := h.Svc.Create(r.Context(), actor, nlUC.Input{Title: req.Title, Body: req.Body})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(n))
}

type UpdateHandler struct{ Svc *nlUC.Service }

// ServeHTTP updates a newsletter. Authors only.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(w, r)
	if actor == nil {
		return
	}

	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	n, err := h.Svc.Update(r.Context(), id, actor, nlUC.Input{Title: req.Title, Body: req.Body})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(n))
}

type DeleteHandler struct{ Svc *nlUC.Service }

// ServeHTTP deletes a newsletter. Authors only.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(w, r)
	if actor == nil {
		return
	}

	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register registers all newsletter routes with the given mux.
func Register(mux *http.ServeMux, svc *nlUC.Service) {
	mux.Handle("GET /newsletters", ListHandler{svc})
	mux.Handle("GET /newsletters/{id}", GetHandler{svc})
	mux.Handle("POST /newsletters", CreateHandler{svc})
	mux.Handle("PUT /newsletters/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /newsletters/{id}", DeleteHandler{svc})
}
