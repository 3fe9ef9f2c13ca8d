package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP drafts a new article for the authenticated journalist.
// @Summary      Create article draft
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        article body object true "Article content"
// @Success      201 {object} DTO "Created draft"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - journalist role required"
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.Error(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var req struct {
		Title       string `json:"title"`
		Body        string `json:"body"`
		Summary     string `json:"summary"`
		CategoryID  *int64 `json:"category_id"`
		PublisherID *int64 `json:"publisher_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Create(r.Context(), actor, artUC.CreateInput{
		Title:       req.Title,
		Body:        req.Body,
		Summary:     req.Summary,
		CategoryID:  req.CategoryID,
		PublisherID: req.PublisherID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(art))
}
