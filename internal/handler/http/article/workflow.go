package article

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/usecase/lifecycle"
)

type SubmitHandler struct{ Svc *lifecycle.Service }

// ServeHTTP submits the author's draft or rejected article for review.
// @Summary      Submit article for review
// @Tags         articles
// @Security     BearerAuth
// @Param        id path int true "Article ID"
// @Success      204 "No Content"
// @Failure      400 {string} string "Bad request - invalid ID"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - not the author"
// @Failure      404 {string} string "Not found"
// @Failure      409 {string} string "Conflict - article not in a submittable status"
// @Router       /articles/{id}/submit [post]
func (h SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	runTransition(w, r, h.Svc.Submit)
}

type ApproveHandler struct{ Svc *lifecycle.Service }

// ServeHTTP approves a pending article, publishing it and triggering the
// subscriber notification fan-out.
// @Summary      Approve article
// @Tags         articles
// @Security     BearerAuth
// @Param        id path int true "Article ID"
// @Success      204 "No Content"
// @Failure      400 {string} string "Bad request - invalid ID"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - not a moderating editor"
// @Failure      404 {string} string "Not found"
// @Failure      409 {string} string "Conflict - article not pending"
// @Router       /articles/{id}/approve [post]
func (h ApproveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	runTransition(w, r, h.Svc.Approve)
}

type RejectHandler struct{ Svc *lifecycle.Service }

// ServeHTTP rejects a pending article with a reason for the author.
// @Summary      Reject article
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Param        id path int true "Article ID"
// @Param        body body object true "Rejection reason"
// @Success      204 "No Content"
// @Failure      400 {string} string "Bad request - reason required"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - not a moderating editor"
// @Failure      404 {string} string "Not found"
// @Failure      409 {string} string "Conflict - article not pending"
// @Router       /articles/{id}/reject [post]
func (h RejectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Reject(r.Context(), id, actor, req.Reason); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// runTransition handles the shared shape of the body-less workflow actions.
func runTransition(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, articleID int64, actor *entity.User) error,
) {
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

	if err := op(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
