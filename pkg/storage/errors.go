package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when no account exists for an identity.
	ErrNotFound = errors.New("account not found")

	// ErrConflict is returned when an account with the given identity already exists.
	ErrConflict = errors.New("account already exists")
)
