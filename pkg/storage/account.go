package storage

import (
	"context"
	"time"
)

// Account is a registered user. Identity is unique across the store.
type Account struct {
	Identity       string
	CredentialHash string
	CreatedAt      time.Time
}

// AccountStore persists accounts. Implementations must be safe for
// concurrent use.
type AccountStore interface {
	// Insert stores acct if no account with the same identity exists.
	// The check and the write are atomic; a duplicate returns ErrConflict
	// and leaves the stored account untouched.
	Insert(ctx context.Context, acct Account) error

	// Lookup returns the account for identity, or ErrNotFound.
	Lookup(ctx context.Context, identity string) (*Account, error)

	// HealthCheck reports whether the backend can serve requests.
	HealthCheck(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
