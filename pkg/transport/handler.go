package transport

import (
	"context"

	"github.com/rhuss/clauselens/pkg/accounts"
)

// AccountService is the account contract the HTTP handlers depend on.
// *accounts.Service implements it.
type AccountService interface {
	// Signup registers a new account.
	Signup(ctx context.Context, identity, secret string) error

	// Login checks credentials and issues a bearer token.
	Login(ctx context.Context, identity, secret string) (*accounts.Token, error)

	// Ready reports whether the account store is usable.
	Ready(ctx context.Context) error
}

// Ensure accounts.Service satisfies AccountService at compile time.
var _ AccountService = (*accounts.Service)(nil)
