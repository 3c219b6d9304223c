// Package password hashes and verifies account secrets with bcrypt.
//
// bcrypt only consumes the first 72 bytes of its input, and
// golang.org/x/crypto/bcrypt rejects anything longer. Secrets are therefore
// truncated to MaxSecretLength bytes on both the hash and the verify path:
// two secrets that differ only after byte 72 are the same credential.
package password

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// MaxSecretLength is the number of secret bytes bcrypt takes into account.
const MaxSecretLength = 72

// Config holds the hasher settings.
type Config struct {
	// Cost is the bcrypt work factor. Default: bcrypt.DefaultCost.
	Cost int

	// MaxConcurrent bounds the number of hash/compare operations running at
	// once. Default: GOMAXPROCS.
	MaxConcurrent int
}

func (c *Config) applyDefaults() {
	if c.Cost == 0 {
		c.Cost = bcrypt.DefaultCost
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = runtime.GOMAXPROCS(0)
	}
}

// Hasher produces and checks bcrypt credential hashes.
// It is safe for concurrent use.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// New creates a Hasher. It returns an error if the cost is outside the
// range bcrypt accepts.
func New(cfg Config) (*Hasher, error) {
	cfg.applyDefaults()
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, cfg.Cost)
	}
	return &Hasher{
		cost: cfg.Cost,
		sem:  semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
	}, nil
}

// Hash returns the bcrypt hash of secret. It blocks while MaxConcurrent
// operations are in flight and returns ctx.Err() if the context ends first.
func (h *Hasher) Hash(ctx context.Context, secret string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	b, err := bcrypt.GenerateFromPassword(truncate(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing secret: %w", err)
	}
	return string(b), nil
}

// Verify reports whether secret matches hash. A mismatch, a malformed or
// foreign hash, and a cancelled context all report false.
func (h *Hasher) Verify(ctx context.Context, secret, hash string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(secret)) == nil
}

// Cost returns the work factor encoded in a hash produced by Hash.
func Cost(hash string) (int, error) {
	return bcrypt.Cost([]byte(hash))
}

func truncate(secret string) []byte {
	b := []byte(secret)
	if len(b) > MaxSecretLength {
		b = b[:MaxSecretLength]
	}
	return b
}
