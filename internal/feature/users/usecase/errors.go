// Package usecase implements the business logic for the users feature.
package usecase

import (
	"errors"
	"fmt"

	"blog_backend/internal/shared/apperr"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = fmt.Errorf("user: %w", apperr.ErrNotFound)

	// ErrUsernameTaken is returned by the repository when the unique constraint on username is violated.
	ErrUsernameTaken = errors.New("username already exists")
)
