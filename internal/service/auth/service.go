// Package auth validates credentials against the identity store. It is
// framework-agnostic; token issuing and the HTTP middleware live in
// handler/http/auth.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// Sentinel errors for credential validation.
var (
	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled indicates the password matched but the account is
	// deactivated.
	ErrAccountDisabled = errors.New("account disabled")
)

// dummyHash keeps the unknown-username path doing the same argon2id work as
// the known-username path, so response timing does not leak which usernames
// exist.
const dummyHash = "$argon2id$v=19$m=65536,t=1,p=2$fDmDpdpq3RqrttJxLYO0bA$P3RFuXGszGM0g6sKpYOMP/K05G5RNl7JvQW3fNPAIbc"

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// Service handles authentication business logic against the user store.
type Service struct {
	users           repository.UserRepository
	publicEndpoints []string
}

// NewService creates an authentication service. publicEndpoints lists path
// prefixes that skip bearer-token checks.
func NewService(users repository.UserRepository, publicEndpoints []string) *Service {
	return &Service{users: users, publicEndpoints: publicEndpoints}
}

// Authenticate validates the credentials and returns the matching user.
// Returns ErrInvalidCredentials for an unknown username or wrong password and
// ErrAccountDisabled for a deactivated account.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*entity.User, error) {
	user, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if user == nil {
		_, _ = argon2id.ComparePasswordAndHash(creds.Password, dummyHash)
		return nil, ErrInvalidCredentials
	}

	match, err := argon2id.ComparePasswordAndHash(creds.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// LoadUser fetches the user record for an authenticated subject ID.
// Returns ErrInvalidCredentials when the subject no longer exists and
// ErrAccountDisabled when the account is deactivated.
func (s *Service) LoadUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// IsPublicEndpoint checks if a path is publicly accessible.
// Returns true if the path matches any configured public endpoint prefix.
func (s *Service) IsPublicEndpoint(path string) bool {
	for _, endpoint := range s.publicEndpoints {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	return false
}
