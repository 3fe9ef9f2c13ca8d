package article

import (
	"errors"
	"net/http"
	"strconv"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/repository"
	artUC "newsdesk/internal/usecase/article"
)

type ListHandler struct{ Svc *artUC.Service }

// ServeHTTP lists articles. The default view is the published feed, newest
// first, optionally filtered by publisher_id or category_id. Two scoped
// views are selected by query parameter: mine=true returns the caller's own
// articles at any status, and status=pending returns an editor's moderation
// queue.
// @Summary      List articles
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        publisher_id query int false "Filter the published feed by publisher"
// @Param        category_id query int false "Filter the published feed by category"
// @Param        mine query bool false "Return the caller's own articles"
// @Param        status query string false "pending selects the editor review queue"
// @Success      200 {array} DTO "Articles"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - editor role required for the review queue"
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.Error(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	q := r.URL.Query()

	if q.Get("mine") == "true" {
		articles, err := h.Svc.ListOwn(r.Context(), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDTOs(articles))
		return
	}

	if status := q.Get("status"); status != "" {
		if status != string(entity.StatusPending) {
			respond.Error(w, http.StatusBadRequest,
				errors.New("invalid status filter: only pending is supported"))
			return
		}
		articles, err := h.Svc.ListPendingReview(r.Context(), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDTOs(articles))
		return
	}

	var filters repository.ArticleFilters
	var err error
	if filters.PublisherID, err = parseIDParam(q.Get("publisher_id")); err != nil {
		respond.Error(w, http.StatusBadRequest,
			errors.New("invalid publisher_id: must be a positive integer"))
		return
	}
	if filters.CategoryID, err = parseIDParam(q.Get("category_id")); err != nil {
		respond.Error(w, http.StatusBadRequest,
			errors.New("invalid category_id: must be a positive integer"))
		return
	}

	list, err := h.Svc.ListPublished(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]DTO, 0, len(list))
	for _, item := range list {
		out = append(out, toListDTO(item))
	}
	respond.JSON(w, http.StatusOK, out)
}

func toDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}

// parseIDParam parses an optional positive-integer query parameter.
func parseIDParam(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, errors.New("must be a positive integer")
	}
	return &id, nil
}
