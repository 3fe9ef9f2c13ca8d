// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business objects such as User,
// Publisher, Article and Subscription, along with their validation rules and
// domain-specific errors.
package entity

import "time"

// Role identifies what a user is allowed to do in the system.
type Role string

// Available user roles. Permissions are derived from the role plus the
// publisher affiliation, never from subclassing.
const (
	RoleReader     Role = "reader"
	RoleJournalist Role = "journalist"
	RoleEditor     Role = "editor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleJournalist, RoleEditor:
		return true
	}
	return false
}

// User represents an account in the identity store. Journalists and editors
// may be affiliated with a publisher; readers never are.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	PublisherID  *int64
	Active       bool
	CreatedAt    time.Time
}

// IsReader reports whether the user holds the reader role.
func (u *User) IsReader() bool { return u.Role == RoleReader }

// IsJournalist reports whether the user holds the journalist role.
func (u *User) IsJournalist() bool { return u.Role == RoleJournalist }

// IsEditor reports whether the user holds the editor role.
func (u *User) IsEditor() bool { return u.Role == RoleEditor }

// AffiliatedWith reports whether the user is affiliated with the given
// publisher.
func (u *User) AffiliatedWith(publisherID int64) bool {
	return u.PublisherID != nil && *u.PublisherID == publisherID
}

// Validate checks the User fields against the identity store invariants.
func (u *User) Validate() error {
	if u.Username == "" {
		return &ValidationError{Field: "username", Message: "is required"}
	}
	if len(u.Username) > 150 {
		return &ValidationError{Field: "username", Message: "must not exceed 150 characters"}
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return &ValidationError{Field: "role", Message: "must be reader, journalist, or editor"}
	}
	// Readers have no publisher affiliation.
	if u.Role == RoleReader && u.PublisherID != nil {
		return &ValidationError{Field: "publisher_id", Message: "readers cannot be affiliated with a publisher"}
	}
	return nil
}
