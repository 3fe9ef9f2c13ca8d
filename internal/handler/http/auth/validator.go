package auth

import (
	"fmt"
	"os"
	"strings"
)

// minSecretLength is the minimum required length for the JWT signing secret.
const minSecretLength = 32

// weakSecretList contains common placeholder secrets that must be rejected.
var weakSecretList = []string{
	"secret",
	"password",
	"changeme",
	"default",
	"jwtsecret",
	"jwt-secret",
	"supersecret",
	"test",
	"dev",
}

// ValidateJWTSecret validates the JWT signing secret from the environment at
// application startup. This function must be called before the server starts:
// an empty or guessable secret makes every issued token forgeable.
//
// Security requirements:
//   - JWT_SECRET must not be empty
//   - the secret must be at least 32 bytes
//   - the secret must not be a common placeholder or a single repeated byte
//
// Returns an error if validation fails with a clear description of the issue.
// The error message is safe to log and never echoes the secret itself.
func ValidateJWTSecret() error {
	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be empty")
	}

	if len(secret) < minSecretLength {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must be at least %d bytes (current length: %d)", minSecretLength, len(secret))
	}

	if isRepeatedChar(secret) {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be a single repeated character")
	}

	lower := strings.ToLower(secret)
	for _, weak := range weakSecretList {
		if strings.HasPrefix(lower, weak) {
			return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be based on a common placeholder")
		}
	}

	return nil
}

// isRepeatedChar checks if the secret consists of a single repeated character.
// Example: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
func isRepeatedChar(s string) bool {
	if len(s) == 0 {
		return false
	}

	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}
