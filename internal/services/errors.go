package services

import "errors"

// Typed failures surfaced to the handler layer. Locally detected format
// problems never escalate this far; they are resolved by the validation
// package and the availability checker.
var (
	// ErrInvalidCredentials deliberately collapses unknown-identifier and
	// wrong-password so that login responses cannot be used to enumerate
	// usernames. The underlying cause is logged, never returned.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotFound reports that a username lookup matched no account.
	ErrAccountNotFound = errors.New("no account matches this username")

	// ErrDirectoryUnavailable reports that the account directory could not
	// be queried. Distinct from ErrAccountNotFound so callers never treat
	// a backend outage as a missing account.
	ErrDirectoryUnavailable = errors.New("account directory unavailable")

	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")

	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidUsername = errors.New("invalid username")
	ErrWeakPassword    = errors.New("password must be at least 6 characters")

	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
