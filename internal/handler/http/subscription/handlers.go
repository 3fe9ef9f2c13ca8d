// Package subscription provides HTTP handlers for reader subscriptions to
// publishers and journalists.
package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	subUC "newsdesk/internal/usecase/subscription"
)

// DTO represents the JSON structure for subscription data transfer.
type DTO struct {
	ID           int64     `json:"id" example:"1"`
	ReaderID     int64     `json:"reader_id"`
	PublisherID  *int64    `json:"publisher_id,omitempty"`
	JournalistID *int64    `json:"journalist_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toDTO(s *entity.Subscription) DTO {
	return DTO{
		ID:           s.ID,
		ReaderID:     s.ReaderID,
		PublisherID:  s.PublisherID,
		JournalistID: s.JournalistID,
		CreatedAt:    s.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, subUC.ErrPermissionDenied):
		respond.Error(w, http.StatusForbidden, err)
	case errors.Is(err, subUC.ErrDuplicateSubscription):
		respond.Error(w, http.StatusConflict, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

type ListHandler struct{ Svc *subUC.Service }

// ServeHTTP lists the caller's subscriptions.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.Error(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	subscriptions, err := h.Svc.List(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]DTO, 0, len(subscriptions))
	for _, s := range subscriptions {
		out = append(out, toDTO(s))
	}
	respond.JSON(w, http.StatusOK, out)
}

type CreateHandler struct{ Svc *subUC.Service }

// ServeHTTP subscribes the acting reader to a publisher or a journalist.
// Exactly one target must be given.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.Error(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var req struct {
		PublisherID  *int64 `json:"publisher_id"`
		JournalistID *int64 `json:"journalist_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	sub, err := h.Svc.Subscribe(r.Context(), actor, subUC.Target{
		PublisherID: req.PublisherID, JournalistID: req.JournalistID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(sub))
}

type DeleteHandler struct{ Svc *subUC.Service }

// ServeHTTP removes one of the caller's subscriptions. Unsubscribing an
// already-removed subscription succeeds.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.Error(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Unsubscribe(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register registers all subscription routes with the given mux.
func Register(mux *http.ServeMux, svc *subUC.Service) {
	mux.Handle("GET /subscriptions", ListHandler{svc})
	mux.Handle("POST /subscriptions", CreateHandler{svc})
	mux.Handle("DELETE /subscriptions/{id}", DeleteHandler{svc})
}
