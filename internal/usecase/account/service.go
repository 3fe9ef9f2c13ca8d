// Package account provides use cases for the account surface: registration
// and the password reset flow.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

// minPasswordLength applies to registration and password resets.
const minPasswordLength = 8

// Sentinel errors for account use case operations.
var (
	// ErrDuplicateAccount indicates the username or email is already taken.
	ErrDuplicateAccount = errors.New("username or email already taken")

	// ErrInvalidResetToken indicates the reset token is unknown, expired, or
	// already used.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// RegisterInput represents the input parameters for creating an account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        entity.Role
	PublisherID *int64
}

// Service provides account management use cases.
type Service struct {
	Users       repository.UserRepository
	ResetTokens repository.ResetTokenRepository
	Mailer      mailer.Mailer
	Templates   mailer.Templates
	// Now is swapped in tests.
	Now func() time.Time
	// NewToken is swapped in tests.
	NewToken func() string
	// HashParams tune the argon2id cost.
	HashParams *argon2id.Params
}

// NewService creates an account service.
func NewService(users repository.UserRepository, tokens repository.ResetTokenRepository, m mailer.Mailer, templates mailer.Templates) *Service {
	return &Service{
		Users:       users,
		ResetTokens: tokens,
		Mailer:      m,
		Templates:   templates,
		Now:         time.Now,
		NewToken:    func() string { return uuid.New().String() },
		HashParams:  argon2id.DefaultParams,
	}
}

// Register creates an account with the role chosen at signup. The password
// is stored as an argon2id hash.
// Returns ErrDuplicateAccount when the username or email is taken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if len(in.Password) < minPasswordLength {
		return nil, &entity.ValidationError{
			Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}

	user := &entity.User{
		Username:    in.Username,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Role:        in.Role,
		PublisherID: in.PublisherID,
		Active:      true,
		CreatedAt:   s.Now(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, err := argon2id.CreateHash(in.Password, s.HashParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("register account: %w", err)
	}

	metrics.RecordUserRegistered(string(user.Role))
	slog.Info("account registered",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)))
	return user, nil
}

// RequestPasswordReset issues a single-use reset token and emails it to the
// account. An unknown email returns nil without sending anything, so the
// response never reveals whether an account exists.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	if user == nil {
		slog.Info("password reset requested for unknown email")
		return nil
	}

	token := &entity.PasswordResetToken{
		UserID:    user.ID,
		Token:     s.NewToken(),
		CreatedAt: s.Now(),
	}
	if err := s.ResetTokens.Create(ctx, token); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}

	subject, body, err := s.Templates.PasswordReset.Render(struct {
		Reader string
		Token  string
	}{Reader: user.Username, Token: token.Token})
	if err != nil {
		return fmt.Errorf("render reset mail: %w", err)
	}
	if err := s.Mailer.Send(ctx, mailer.Message{To: user.Email, Subject: subject, Body: body}); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	slog.Info("password reset token issued", slog.Int64("user_id", user.ID))
	return nil
}

// ConfirmPasswordReset redeems a reset token and replaces the password. The
// token is consumed even when racing: a second redemption fails.
// Returns ErrInvalidResetToken when the token is unknown, expired, or used.
func (s *Service) ConfirmPasswordReset(ctx context.Context, tokenValue, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return &entity.ValidationError{
			Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}

	token, err := s.ResetTokens.GetByToken(ctx, tokenValue)
	if err != nil {
		return fmt.Errorf("confirm password reset: %w", err)
	}
	if token == nil || !token.IsValid(s.Now()) {
		return ErrInvalidResetToken
	}

	// consume first so a concurrent redemption of the same token loses
	if err := s.ResetTokens.MarkUsed(ctx, token.ID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("confirm password reset: %w", err)
	}

	hash, err := argon2id.CreateHash(newPassword, s.HashParams)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Users.UpdatePassword(ctx, token.UserID, hash); err != nil {
		return fmt.Errorf("confirm password reset: %w", err)
	}

	slog.Info("password reset completed", slog.Int64("user_id", token.UserID))
	return nil
}
