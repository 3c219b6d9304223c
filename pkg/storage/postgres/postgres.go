// Package postgres provides a PostgreSQL implementation of storage.AccountStore.
// It uses pgx/v5 for connection pooling; the primary key on identity makes
// insert-if-absent atomic across processes.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rhuss/clauselens/pkg/debug"
	"github.com/rhuss/clauselens/pkg/storage"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Store is a PostgreSQL-backed AccountStore.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements storage.AccountStore at compile time.
var _ storage.AccountStore = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// Insert stores a new account. A duplicate identity returns storage.ErrConflict.
func (s *Store) Insert(ctx context.Context, acct storage.Account) error {
	if acct.CreatedAt.IsZero() {
		acct.CreatedAt = time.Now()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (identity, credential_hash, created_at)
		VALUES ($1, $2, $3)
	`, acct.Identity, acct.CredentialHash, acct.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			debug.Log("storage", "duplicate identity rejected", "backend", "postgres", "identity", acct.Identity)
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

// Lookup retrieves an account by identity.
func (s *Store) Lookup(ctx context.Context, identity string) (*storage.Account, error) {
	var acct storage.Account
	err := s.pool.QueryRow(ctx, `
		SELECT identity, credential_hash, created_at
		FROM accounts
		WHERE identity = $1
	`, identity).Scan(&acct.Identity, &acct.CredentialHash, &acct.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying account: %w", err)
	}
	debug.Log("storage", "account found", "backend", "postgres", "identity", identity)
	return &acct, nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// isDuplicateKey reports whether err is a PostgreSQL unique violation.
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
