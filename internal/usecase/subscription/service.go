package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// Target names what a reader subscribes to: a publisher xor a journalist.
type Target struct {
	PublisherID  *int64
	JournalistID *int64
}

// Service provides subscription management use cases.
type Service struct {
	Subscriptions repository.SubscriptionRepository
	Users         repository.UserRepository
	Publishers    repository.PublisherRepository
	// Now is swapped in tests.
	Now func() time.Time
}

// NewService creates a subscription service.
func NewService(subscriptions repository.SubscriptionRepository, users repository.UserRepository, publishers repository.PublisherRepository) *Service {
	return &Service{Subscriptions: subscriptions, Users: users, Publishers: publishers, Now: time.Now}
}

// Subscribe creates a subscription from the acting reader to the target.
// The target must exist, a journalist target must hold the journalist role,
// and a reader subscribes to each target at most once.
// Returns ErrPermissionDenied when the actor is not a reader and
// ErrDuplicateSubscription when the pair already exists.
func (s *Service) Subscribe(ctx context.Context, actor *entity.User, target Target) (*entity.Subscription, error) {
	if !actor.IsReader() {
		return nil, fmt.Errorf("subscribe: %w", ErrPermissionDenied)
	}

	sub := &entity.Subscription{
		ReaderID:     actor.ID,
		PublisherID:  target.PublisherID,
		JournalistID: target.JournalistID,
		CreatedAt:    s.Now(),
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkTarget(ctx, target); err != nil {
		return nil, err
	}

	exists, err := s.Subscriptions.Exists(ctx, actor.ID, target.PublisherID, target.JournalistID)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	if exists {
		return nil, ErrDuplicateSubscription
	}

	if err := s.Subscriptions.Create(ctx, sub); err != nil {
		// the unique constraint catches races past the pre-check
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateSubscription
		}
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return sub, nil
}

// Unsubscribe removes the reader's subscription. Removing a subscription that
// does not exist is a no-op.
// Returns ErrPermissionDenied when the subscription belongs to another reader.
func (s *Service) Unsubscribe(ctx context.Context, actor *entity.User, id int64) error {
	sub, err := s.Subscriptions.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if sub == nil {
		return nil
	}
	if sub.ReaderID != actor.ID {
		return fmt.Errorf("unsubscribe %d: %w", id, ErrPermissionDenied)
	}

	if err := s.Subscriptions.Delete(ctx, id); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

// List retrieves the acting reader's subscriptions.
func (s *Service) List(ctx context.Context, actor *entity.User) ([]*entity.Subscription, error) {
	subs, err := s.Subscriptions.ListByReader(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// ResolveSubscribers returns the deduplicated readers subscribed to the
// article's publisher or to its author.
func (s *Service) ResolveSubscribers(ctx context.Context, article *entity.Article) ([]*entity.User, error) {
	readers, err := s.Subscriptions.ResolveSubscribers(ctx, article.PublisherID, article.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("resolve subscribers: %w", err)
	}
	return readers, nil
}

// checkTarget verifies the subscription target exists and carries the right
// role.
func (s *Service) checkTarget(ctx context.Context, target Target) error {
	if target.PublisherID != nil {
		publisher, err := s.Publishers.Get(ctx, *target.PublisherID)
		if err != nil {
			return fmt.Errorf("check publisher target: %w", err)
		}
		if publisher == nil {
			return &entity.ValidationError{Field: "publisher_id", Message: "publisher does not exist"}
		}
		return nil
	}

	journalist, err := s.Users.Get(ctx, *target.JournalistID)
	if err != nil {
		return fmt.Errorf("check journalist target: %w", err)
	}
	if journalist == nil {
		return &entity.ValidationError{Field: "journalist_id", Message: "journalist does not exist"}
	}
	if !journalist.IsJournalist() {
		return &entity.ValidationError{Field: "journalist_id", Message: "user is not a journalist"}
	}
	return nil
}
