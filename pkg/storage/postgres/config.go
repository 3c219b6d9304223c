package postgres

import "time"

// Config holds PostgreSQL connection and pool settings for the account store.
type Config struct {
	// DSN is the connection string, e.g. "postgres://clauselens:secret@db:5432/clauselens?sslmode=require".
	DSN string

	// MaxConns caps the pool size (default: 25).
	MaxConns int32

	// MinConns is the number of idle connections kept open (default: 2).
	MinConns int32

	// MaxConnLifetime recycles connections older than this (default: 30 minutes).
	MaxConnLifetime time.Duration

	// MigrateOnStart creates or upgrades the accounts schema at startup.
	MigrateOnStart bool
}

// defaults applies default values for unset configuration fields.
func (c *Config) defaults() {
	if c.MaxConns == 0 {
		c.MaxConns = 25
	}
	if c.MinConns == 0 {
		c.MinConns = 2
	}
	if c.MinConns > c.MaxConns {
		c.MinConns = c.MaxConns
	}
	if c.MaxConnLifetime == 0 {
		c.MaxConnLifetime = 30 * time.Minute
	}
}
