// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user.
type User struct {
	// ID is the system-generated unique identifier.
	ID uuid.UUID

	// Username is unique (case-sensitive) and at least 3 characters long.
	Username string

	// Name is the optional display name.
	Name string

	// PasswordHash is the bcrypt hash of the password. The plaintext is never stored.
	PasswordHash string

	// BlogIDs is the back-reference set of blogs owned by this user.
	// Every id here references a blog whose owner is this user.
	BlogIDs []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnsBlog reports whether id is in the user's blog set.
func (u *User) OwnsBlog(id uuid.UUID) bool {
	for _, b := range u.BlogIDs {
		if b == id {
			return true
		}
	}
	return false
}
