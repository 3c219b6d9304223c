// Package memory provides an in-memory storage.AccountStore for tests and
// single-process deployments. Accounts are lost when the process restarts.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rhuss/clauselens/pkg/storage"
)

// Store is an in-memory AccountStore keyed by identity.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]storage.Account
	now      func() time.Time
}

// Ensure Store implements storage.AccountStore at compile time.
var _ storage.AccountStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts: make(map[string]storage.Account),
		now:      time.Now,
	}
}

// Insert adds acct unless its identity is already present. The existence
// check and the write happen under one lock.
func (s *Store) Insert(_ context.Context, acct storage.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[acct.Identity]; exists {
		return storage.ErrConflict
	}

	if acct.CreatedAt.IsZero() {
		acct.CreatedAt = s.now()
	}
	s.accounts[acct.Identity] = acct
	return nil
}

// Lookup returns a copy of the account for identity.
func (s *Store) Lookup(_ context.Context, identity string) (*storage.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[identity]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &acct, nil
}

// Len returns the number of stored accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
