package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// Dispatcher receives the published article for subscriber fan-out.
// Implementations must be non-blocking.
type Dispatcher interface {
	NotifyPublished(ctx context.Context, article *entity.Article) error
}

// EditInput carries the editable content fields. Nil fields are not changed.
type EditInput struct {
	Title       *string
	Body        *string
	Summary     *string
	CategoryID  *int64
	PublisherID *int64
	// ClearPublisher detaches the article from its publisher.
	ClearPublisher bool
}

// Service implements the approval workflow operations.
type Service struct {
	Articles   repository.ArticleRepository
	Dispatcher Dispatcher
	// Now is swapped in tests.
	Now func() time.Time
}

// NewService creates a lifecycle service.
func NewService(articles repository.ArticleRepository, dispatcher Dispatcher) *Service {
	return &Service{Articles: articles, Dispatcher: dispatcher, Now: time.Now}
}

// Submit moves an article the actor authored from draft or rejected to
// pending, clearing any previous rejection note.
// Returns ErrPermissionDenied when the actor is not the author and
// ErrInvalidTransition when the article is in any other status.
func (s *Service) Submit(ctx context.Context, articleID int64, actor *entity.User) error {
	article, err := s.load(ctx, articleID)
	if err != nil {
		return err
	}
	if article.AuthorID != actor.ID {
		return fmt.Errorf("submit article %d: %w", articleID, ErrPermissionDenied)
	}
	if article.Status != entity.StatusDraft && article.Status != entity.StatusRejected {
		return fmt.Errorf("submit article %d from %s: %w", articleID, article.Status, ErrInvalidTransition)
	}

	err = s.Articles.TransitionStatus(ctx, articleID, article.Status, entity.StatusPending,
		repository.TransitionStamp{At: s.Now()})
	if err != nil {
		return s.mapTransitionErr("submit", articleID, err)
	}

	slog.Info("article submitted for review",
		slog.Int64("article_id", articleID),
		slog.Int64("author_id", actor.ID))
	return nil
}

// Approve publishes a pending article. The status change and the dispatch
// record persist in one transaction; the subscriber fan-out is then handed to
// the dispatcher exactly once, fire-and-forget.
func (s *Service) Approve(ctx context.Context, articleID int64, actor *entity.User) error {
	article, err := s.load(ctx, articleID)
	if err != nil {
		return err
	}
	if err := s.checkModerator(article, actor); err != nil {
		return fmt.Errorf("approve article %d: %w", articleID, err)
	}
	if article.Status != entity.StatusPending {
		return fmt.Errorf("approve article %d from %s: %w", articleID, article.Status, ErrInvalidTransition)
	}

	now := s.Now()
	if err := s.Articles.MarkPublished(ctx, articleID, actor.ID, now); err != nil {
		return s.mapTransitionErr("approve", articleID, err)
	}

	article.Status = entity.StatusPublished
	article.ReviewNote = ""
	article.ApprovedBy = &actor.ID
	article.ApprovedAt = &now
	article.PublishedAt = &now

	slog.Info("article approved",
		slog.Int64("article_id", articleID),
		slog.Int64("editor_id", actor.ID))

	if err := s.Dispatcher.NotifyPublished(ctx, article); err != nil {
		// dispatch failures never roll back the publish
		slog.Error("notification dispatch failed",
			slog.Int64("article_id", articleID),
			slog.Any("error", err))
	}
	return nil
}

// Reject moves a pending article to rejected, storing the reason for the
// author. The reason is required.
func (s *Service) Reject(ctx context.Context, articleID int64, actor *entity.User, reason string) error {
	if reason == "" {
		return &entity.ValidationError{Field: "reason", Message: "is required"}
	}

	article, err := s.load(ctx, articleID)
	if err != nil {
		return err
	}
	if err := s.checkModerator(article, actor); err != nil {
		return fmt.Errorf("reject article %d: %w", articleID, err)
	}
	if article.Status != entity.StatusPending {
		return fmt.Errorf("reject article %d from %s: %w", articleID, article.Status, ErrInvalidTransition)
	}

	err = s.Articles.TransitionStatus(ctx, articleID, entity.StatusPending, entity.StatusRejected,
		repository.TransitionStamp{ReviewNote: reason, At: s.Now()})
	if err != nil {
		return s.mapTransitionErr("reject", articleID, err)
	}

	slog.Info("article rejected",
		slog.Int64("article_id", articleID),
		slog.Int64("editor_id", actor.ID))
	return nil
}

// Edit updates the content fields without touching the status. The author
// may edit while the article is draft or rejected; a moderating editor may
// edit at any status. Publisher changes are only allowed while draft or
// rejected and must match the author's affiliation.
func (s *Service) Edit(ctx context.Context, articleID int64, actor *entity.User, in EditInput) (*entity.Article, error) {
	article, err := s.load(ctx, articleID)
	if err != nil {
		return nil, err
	}

	editable := article.Status == entity.StatusDraft || article.Status == entity.StatusRejected
	switch {
	case actor.IsEditor() && s.checkModerator(article, actor) == nil:
		// editors moderate content at any status
	case article.AuthorID == actor.ID && editable:
		// authors rework drafts and rejected articles
	default:
		return nil, fmt.Errorf("edit article %d: %w", articleID, ErrPermissionDenied)
	}

	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Body != nil {
		article.Body = *in.Body
	}
	if in.Summary != nil {
		article.Summary = *in.Summary
	}
	if in.CategoryID != nil {
		article.CategoryID = in.CategoryID
	}
	if in.PublisherID != nil || in.ClearPublisher {
		if !editable {
			return nil, fmt.Errorf("edit article %d: publisher change from %s: %w",
				articleID, article.Status, ErrInvalidTransition)
		}
		if in.ClearPublisher {
			article.PublisherID = nil
		} else {
			if actor.ID == article.AuthorID && !actor.AffiliatedWith(*in.PublisherID) {
				return nil, &entity.ValidationError{
					Field: "publisher_id", Message: "must match the author's affiliation",
				}
			}
			article.PublisherID = in.PublisherID
		}
	}

	if err := article.Validate(); err != nil {
		return nil, err
	}

	article.UpdatedAt = s.Now()
	if err := s.Articles.UpdateContent(ctx, article); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("edit article %d: %w", articleID, err)
	}
	return article, nil
}

func (s *Service) load(ctx context.Context, articleID int64) (*entity.Article, error) {
	article, err := s.Articles.Get(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", articleID, err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// checkModerator verifies the actor is an editor allowed to moderate the
// article. Publisher articles need an editor of that publisher; articles
// without a publisher accept any editor.
func (s *Service) checkModerator(article *entity.Article, actor *entity.User) error {
	if !actor.IsEditor() {
		return ErrPermissionDenied
	}
	if article.PublisherID != nil && !actor.AffiliatedWith(*article.PublisherID) {
		return ErrPermissionDenied
	}
	return nil
}

func (s *Service) mapTransitionErr(op string, articleID int64, err error) error {
	if errors.Is(err, repository.ErrStatusConflict) {
		return fmt.Errorf("%s article %d: %w", op, articleID, ErrInvalidTransition)
	}
	return fmt.Errorf("%s article %d: %w", op, articleID, err)
}
