package entity

import "time"

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = 24 * time.Hour

// PasswordResetToken is a single-use token for the password reset flow.
// A token is consumed on a successful reset and expires after ResetTokenTTL.
type PasswordResetToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
	Used      bool
}

// IsValid reports whether the token can still be redeemed at time now.
func (t *PasswordResetToken) IsValid(now time.Time) bool {
	if t.Used {
		return false
	}
	return now.Before(t.CreatedAt.Add(ResetTokenTTL))
}

// IsExpired reports whether the token has passed its expiry time,
// independent of whether it has been used.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return !now.Before(t.CreatedAt.Add(ResetTokenTTL))
}
