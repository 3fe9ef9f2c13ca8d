package article

import (
	"errors"
	"net/http"
	"strings"

	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

const maxKeywordLength = 100

type SearchHandler struct{ Svc *artUC.Service }

// ServeHTTP searches published articles by keyword against title and summary.
// @Summary      Search articles
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        keyword query string true "Search keyword"
// @Success      200 {array} DTO "Search results"
// @Failure      400 {string} string "Bad request"
// @Failure      401 {string} string "Authentication required"
// @Router       /articles/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kw := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if kw == "" {
		respond.Error(w, http.StatusBadRequest,
			errors.New("keyword query param required"))
		return
	}
	if len(kw) > maxKeywordLength {
		respond.Error(w, http.StatusBadRequest,
			errors.New("keyword too long"))
		return
	}

	list, err := h.Svc.Search(r.Context(), kw)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list))
}
