// Package article provides HTTP handlers for article endpoints: drafting,
// browsing, searching, editing, deletion, and the approval workflow actions.
package article

import (
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/repository"
	artUC "newsdesk/internal/usecase/article"
	"newsdesk/internal/usecase/lifecycle"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID            int64      `json:"id" example:"1"`
	Title         string     `json:"title" example:"City council approves budget"`
	Body          string     `json:"body,omitempty"`
	Summary       string     `json:"summary"`
	AuthorID      int64      `json:"author_id" example:"3"`
	AuthorName    string     `json:"author_name,omitempty"`
	PublisherID   *int64     `json:"publisher_id,omitempty"`
	PublisherName string     `json:"publisher_name,omitempty"`
	CategoryID    *int64     `json:"category_id,omitempty"`
	Status        string     `json:"status" example:"published"`
	ReviewNote    string     `json:"review_note,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at" example:"2025-10-26T12:00:00Z"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Summary:     a.Summary,
		AuthorID:    a.AuthorID,
		PublisherID: a.PublisherID,
		CategoryID:  a.CategoryID,
		Status:      string(a.Status),
		ReviewNote:  a.ReviewNote,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toListDTO(item repository.ArticleWithAuthor) DTO {
	out := toDTO(item.Article)
	out.Body = "" // list views carry the summary only
	out.AuthorName = item.AuthorName
	out.PublisherName = item.PublisherName
	return out
}

// writeError maps use case errors to HTTP status codes. Known sentinel and
// validation errors carry messages safe to show users; anything else is
// sanitized as an internal error.
func writeError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, artUC.ErrInvalidArticleID),
		errors.Is(err, pathutil.ErrInvalidID):
		respond.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, artUC.ErrArticleNotFound),
		errors.Is(err, lifecycle.ErrArticleNotFound):
		respond.Error(w, http.StatusNotFound, err)
	case errors.Is(err, artUC.ErrPermissionDenied),
		errors.Is(err, lifecycle.ErrPermissionDenied):
		respond.Error(w, http.StatusForbidden, err)
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		respond.Error(w, http.StatusConflict, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
