// Package category provides HTTP handlers for category endpoints.
package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	catUC "newsdesk/internal/usecase/category"
)

// DTO represents the JSON structure for category data transfer.
type DTO struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"Politics"`
	Description string `json:"description,omitempty"`
}

func toDTO(c *entity.Category) DTO {
	return DTO{ID: c.ID, Name: c.Name, Description: c.Description}
}

type ListHandler struct{ Svc *catUC.Service }

// ServeHTTP lists all categories.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]DTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc *catUC.Service }

// ServeHTTP retrieves a single category by ID.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catUC.ErrCategoryNotFound) {
			respond.Error(w, http.StatusNotFound, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(c))
}

type CreateHandler struct{ Svc *catUC.Service }

// ServeHTTP creates a category. Editors only.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.Error(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := h.Svc.Create(r.Context(), actor, req.Name, req.Description)
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.As(err, &vErr):
			respond.Error(w, http.StatusBadRequest, err)
		case errors.Is(err, catUC.ErrPermissionDenied):
			respond.Error(w, http.StatusForbidden, err)
		case errors.Is(err, catUC.ErrDuplicateCategory):
			respond.Error(w, http.StatusConflict, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(c))
}

// Register registers all category routes with the given mux.
func Register(mux *http.ServeMux, svc *catUC.Service) {
	mux.Handle("GET /categories", ListHandler{svc})
	mux.Handle("GET /categories/{id}", GetHandler{svc})
	mux.Handle("POST /categories", CreateHandler{svc})
}
