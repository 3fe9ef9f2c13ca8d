// Package notify fans a published article out to its subscribers. For each
// subscriber it claims a row in the notification log, sends one email, and
// records the outcome, so re-dispatching an article never duplicates a send.
// After the fan-out the article is announced on the share webhook.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/infra/share"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

const (
	defaultMaxConcurrent = 10
	// recipientTimeout bounds one email delivery.
	recipientTimeout = 30 * time.Second
	// dispatchTimeout bounds the whole fan-out of one article.
	dispatchTimeout = 5 * time.Minute
)

// ErrShuttingDown is returned when a dispatch arrives after Shutdown started.
var ErrShuttingDown = errors.New("notification dispatcher is shutting down")

// Service dispatches published-article notifications in the background.
// The caller never blocks on subscriber delivery.
type Service struct {
	subscriptions repository.SubscriptionRepository
	notifications repository.NotificationRepository
	users         repository.UserRepository
	publishers    repository.PublisherRepository
	mailer        mailer.Mailer
	templates     mailer.Templates
	poster        share.Poster
	maxConcurrent int

	wg             sync.WaitGroup
	stopping       chan struct{}
	stopOnce       sync.Once
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewService creates a dispatcher. maxConcurrent bounds the number of
// simultaneous email deliveries per article; values below 1 fall back to the
// default.
func NewService(
	subscriptions repository.SubscriptionRepository,
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	publishers repository.PublisherRepository,
	m mailer.Mailer,
	templates mailer.Templates,
	poster share.Poster,
	maxConcurrent int,
) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = defaultMaxConcurrent
	}
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	return &Service{
		subscriptions:  subscriptions,
		notifications:  notifications,
		users:          users,
		publishers:     publishers,
		mailer:         m,
		templates:      templates,
		poster:         poster,
		maxConcurrent:  maxConcurrent,
		stopping:       make(chan struct{}),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}
}

// articleMailData feeds the article_published mail template.
type articleMailData struct {
	Reader    string
	Author    string
	Title     string
	Publisher string
	Summary   string
}

// NotifyPublished starts the subscriber fan-out for a published article and
// returns immediately. Delivery failures are recorded in the notification log
// and logged, never propagated.
func (s *Service) NotifyPublished(ctx context.Context, article *entity.Article) error {
	if article == nil {
		slog.Warn("notification dispatch skipped: nil article")
		return nil
	}
	select {
	case <-s.stopping:
		return ErrShuttingDown
	default:
	}

	slog.Info("dispatching article notifications",
		slog.Int64("article_id", article.ID),
		slog.String("title", article.Title))

	s.wg.Add(1)
	go s.dispatch(article)
	return nil
}

// dispatch runs the whole fan-out for one article in the background.
func (s *Service) dispatch(article *entity.Article) {
	defer s.wg.Done()
	defer metrics.DispatchStarted()()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic during article fan-out",
				slog.Int64("article_id", article.ID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	ctx, cancel := context.WithTimeout(s.shutdownCtx, dispatchTimeout)
	defer cancel()

	authorName := s.lookupAuthorName(ctx, article.AuthorID)
	publisherName := s.lookupPublisherName(ctx, article.PublisherID)

	readers, err := s.subscriptions.ResolveSubscribers(ctx, article.PublisherID, article.AuthorID)
	if err != nil {
		slog.Error("resolve subscribers failed",
			slog.Int64("article_id", article.ID),
			slog.Any("error", err))
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for _, reader := range readers {
		g.Go(func() error {
			s.deliver(gctx, article, reader, authorName, publisherName)
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("article fan-out complete",
		slog.Int64("article_id", article.ID),
		slog.Int("recipients", len(readers)))

	s.announce(ctx, article, authorName, publisherName)
}

// deliver sends one subscriber notification following the claim/mark
// protocol. An already-claimed recipient was handled by an earlier dispatch
// and is skipped.
func (s *Service) deliver(ctx context.Context, article *entity.Article, reader *entity.User, authorName, publisherName string) {
	claimed, err := s.notifications.Claim(ctx, article.ID, reader.ID)
	if err != nil {
		slog.Warn("notification claim failed",
			slog.Int64("article_id", article.ID),
			slog.Int64("reader_id", reader.ID),
			slog.Any("error", err))
		return
	}
	if !claimed {
		metrics.RecordNotification("skipped", 0)
		return
	}

	subject, body, err := s.templates.ArticlePublished.Render(articleMailData{
		Reader:    reader.Username,
		Author:    authorName,
		Title:     article.Title,
		Publisher: publisherName,
		Summary:   article.Summary,
	})
	if err != nil {
		s.markResult(ctx, article.ID, reader.ID, repository.DeliveryFailed, err.Error())
		metrics.RecordNotification("failed", 0)
		slog.Error("mail template render failed",
			slog.Int64("article_id", article.ID),
			slog.Any("error", err))
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, recipientTimeout)
	defer cancel()

	start := time.Now()
	err = s.mailer.Send(sendCtx, mailer.Message{To: reader.Email, Subject: subject, Body: body})
	duration := time.Since(start)

	if err != nil {
		s.markResult(ctx, article.ID, reader.ID, repository.DeliveryFailed, err.Error())
		metrics.RecordNotification("failed", duration)
		slog.Warn("notification email failed",
			slog.Int64("article_id", article.ID),
			slog.Int64("reader_id", reader.ID),
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
		return
	}

	s.markResult(ctx, article.ID, reader.ID, repository.DeliverySent, "")
	metrics.RecordNotification("sent", duration)
}

func (s *Service) markResult(ctx context.Context, articleID, readerID int64, status, detail string) {
	if err := s.notifications.MarkResult(ctx, articleID, readerID, status, detail); err != nil {
		slog.Error("notification result not recorded",
			slog.Int64("article_id", articleID),
			slog.Int64("reader_id", readerID),
			slog.String("status", status),
			slog.Any("error", err))
	}
}

// announce posts the published article to the share webhook.
func (s *Service) announce(ctx context.Context, article *entity.Article, authorName, publisherName string) {
	announcement := share.Announcement{
		Article:       article,
		AuthorName:    authorName,
		PublisherName: publisherName,
	}
	if err := s.poster.PostArticle(ctx, announcement); err != nil {
		metrics.RecordSharePost(false)
		slog.Warn("share post failed",
			slog.Int64("article_id", article.ID),
			slog.Any("error", err))
		return
	}
	metrics.RecordSharePost(true)
}

func (s *Service) lookupAuthorName(ctx context.Context, authorID int64) string {
	author, err := s.users.Get(ctx, authorID)
	if err != nil || author == nil {
		slog.Warn("author lookup failed", slog.Int64("author_id", authorID), slog.Any("error", err))
		return "unknown"
	}
	return author.Username
}

func (s *Service) lookupPublisherName(ctx context.Context, publisherID *int64) string {
	if publisherID == nil {
		return ""
	}
	publisher, err := s.publishers.Get(ctx, *publisherID)
	if err != nil || publisher == nil {
		slog.Warn("publisher lookup failed", slog.Int64("publisher_id", *publisherID), slog.Any("error", err))
		return ""
	}
	return publisher.Name
}

// Shutdown stops accepting dispatches and waits for in-flight deliveries to
// drain. When the context expires first, the remaining deliveries are
// canceled.
func (s *Service) Shutdown(ctx context.Context) error {
	slog.Info("shutting down notification dispatcher")
	s.stopOnce.Do(func() { close(s.stopping) })

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("notification dispatcher drained")
		return nil
	case <-ctx.Done():
		s.shutdownCancel()
		slog.Warn("notification dispatcher shutdown timeout")
		return ctx.Err()
	}
}
