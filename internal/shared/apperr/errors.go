// Package apperr defines the error taxonomy shared by every feature.
// Features wrap these kinds so the HTTP boundary can classify failures with errors.Is / errors.As.
package apperr

import "errors"

var (
	// ErrNotFound indicates that a referenced entity does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrMalformedID indicates that an identifier is not in the expected shape.
	// It is distinct from ErrNotFound, which is reserved for well-formed but absent identifiers.
	ErrMalformedID = errors.New("malformatted id")

	// ErrForbidden indicates that an authenticated user tried to mutate a resource owned by someone else.
	ErrForbidden = errors.New("target blog belongs to another user")

	// ErrInvalidCredentials is returned by login for an unknown username or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTokenMissingOrInvalid covers an absent token, a bad signature and a token whose user no longer exists.
	ErrTokenMissingOrInvalid = errors.New("token missing or invalid")

	// ErrTokenExpired is returned when a correctly signed token is past its expiry instant.
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError reports malformed or missing input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
