package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/usecase/lifecycle"
)

type UpdateHandler struct{ Svc *lifecycle.Service }

// ServeHTTP edits an article's content fields. Omitted fields are left
// unchanged; the status never changes through this endpoint.
// @Summary      Update article
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Article ID"
// @Param        article body object true "Fields to change"
// @Success      200 {object} DTO "Updated article"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - not the author or a moderating editor"
// @Failure      404 {string} string "Not found"
// @Failure      409 {string} string "Conflict - publisher change not allowed at this status"
// @Router       /articles/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
		Title          *string `json:"title"`
		Body           *string `json:"body"`
		Summary        *string `json:"summary"`
		CategoryID     *int64  `json:"category_id"`
		PublisherID    *int64  `json:"publisher_id"`
		ClearPublisher bool    `json:"clear_publisher"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Edit(r.Context(), id, actor, lifecycle.EditInput{
		Title:          req.Title,
		Body:           req.Body,
		Summary:        req.Summary,
		CategoryID:     req.CategoryID,
		PublisherID:    req.PublisherID,
		ClearPublisher: req.ClearPublisher,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(art))
}
