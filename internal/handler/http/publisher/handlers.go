// Package publisher provides HTTP handlers for publisher endpoints.
package publisher

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	pubUC "newsdesk/internal/usecase/publisher"
)

// DTO represents the JSON structure for publisher data transfer.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	Name        string    `json:"name" example:"Daily Planet"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(p *entity.Publisher) DTO {
	return DTO{ID: p.ID, Name: p.Name, Description: p.Description,
		Website: p.Website, CreatedAt: p.CreatedAt}
}

type ListHandler struct{ Svc *pubUC.Service }

// ServeHTTP lists all publishers.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]DTO, 0, len(publishers))
	for _, p := range publishers {
		out = append(out, toDTO(p))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc *pubUC.Service }

// ServeHTTP retrieves a single publisher by ID.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, pubUC.ErrPublisherNotFound) {
			respond.Error(w, http.StatusNotFound, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(p))
}

type CreateHandler struct{ Svc *pubUC.Service }

// ServeHTTP creates a publisher. Editors only.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.Error(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Website     string `json:"website"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := h.Svc.Create(r.Context(), actor, pubUC.CreateInput{
		Name: req.Name, Description: req.Description, Website: req.Website,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(p))
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, pubUC.ErrPermissionDenied):
		respond.Error(w, http.StatusForbidden, err)
	case errors.Is(err, pubUC.ErrDuplicatePublisher):
		respond.Error(w, http.StatusConflict, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// Register registers all publisher routes with the given mux.
func Register(mux *http.ServeMux, svc *pubUC.Service) {
	mux.Handle("GET /publishers", ListHandler{svc})
	mux.Handle("GET /publishers/{id}", GetHandler{svc})
	mux.Handle("POST /publishers", CreateHandler{svc})
}
