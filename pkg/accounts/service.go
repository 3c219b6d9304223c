// Package accounts implements signup, login and token guarding on top of
// an account store, the credential hasher and the token issuer/verifier.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rhuss/clauselens/pkg/auth/jwt"
	"github.com/rhuss/clauselens/pkg/auth/password"
	"github.com/rhuss/clauselens/pkg/observability"
	"github.com/rhuss/clauselens/pkg/storage"
)

// Sentinel errors returned by Service.
var (
	// ErrInvalidInput is returned when identity or secret is empty.
	ErrInvalidInput = errors.New("identity and secret are required")

	// ErrAccountExists is returned when signing up an identity that is
	// already registered. It wraps storage.ErrConflict.
	ErrAccountExists = fmt.Errorf("account exists: %w", storage.ErrConflict)

	// ErrInvalidCredentials is returned for an unknown identity and for a
	// wrong secret alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned by Guard for any token that does not verify.
	ErrUnauthorized = errors.New("unauthorized")
)

// Token is the result of a successful login.
type Token struct {
	AccessToken string
	TokenType   string
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64
}

// Service coordinates the account store, hasher, issuer and verifier.
// It is safe for concurrent use.
type Service struct {
	store    storage.AccountStore
	hasher   *password.Hasher
	issuer   *jwt.Issuer
	verifier *jwt.Verifier

	// dummyHash is compared against when the identity is unknown so that
	// login latency does not depend on whether the account exists.
	dummyHash string
}

// NewService creates a Service. It computes one throwaway hash up front for
// the unknown-identity login path.
func NewService(ctx context.Context, store storage.AccountStore, hasher *password.Hasher, issuer *jwt.Issuer, verifier *jwt.Verifier) (*Service, error) {
	dummy, err := hasher.Hash(ctx, "clauselens-dummy-secret")
	if err != nil {
		return nil, fmt.Errorf("preparing dummy hash: %w", err)
	}
	return &Service{
		store:     store,
		hasher:    hasher,
		issuer:    issuer,
		verifier:  verifier,
		dummyHash: dummy,
	}, nil
}

// Signup registers identity with the given secret. The duplicate check is
// the store's atomic insert, so two concurrent signups for one identity
// produce exactly one success.
func (s *Service) Signup(ctx context.Context, identity, secret string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" || secret == "" {
		authEvent("signup", "invalid")
		return ErrInvalidInput
	}

	hash, err := s.hasher.Hash(ctx, secret)
	if err != nil {
		authEvent("signup", "error")
		return fmt.Errorf("signup: %w", err)
	}

	err = s.store.Insert(ctx, storage.Account{Identity: identity, CredentialHash: hash})
	switch {
	case errors.Is(err, storage.ErrConflict):
		slog.Info("signup rejected, identity exists", "identity", identity)
		authEvent("signup", "conflict")
		return ErrAccountExists
	case err != nil:
		slog.Error("signup failed", "identity", identity, "error", err)
		authEvent("signup", "error")
		return fmt.Errorf("signup: %w", err)
	}

	slog.Info("account created", "identity", identity)
	authEvent("signup", "success")
	return nil
}

// Login checks the secret for identity and issues a bearer token.
func (s *Service) Login(ctx context.Context, identity, secret string) (*Token, error) {
	identity = strings.TrimSpace(identity)

	acct, err := s.store.Lookup(ctx, identity)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.hasher.Verify(ctx, secret, s.dummyHash)
		slog.Warn("login failed", "identity", identity, "reason", "unknown identity")
		authEvent("login", "failure")
		return nil, ErrInvalidCredentials
	case err != nil:
		slog.Error("login lookup failed", "identity", identity, "error", err)
		authEvent("login", "error")
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(ctx, secret, acct.CredentialHash) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			authEvent("login", "error")
			return nil, fmt.Errorf("login: %w", ctxErr)
		}
		slog.Warn("login failed", "identity", identity, "reason", "secret mismatch")
		authEvent("login", "failure")
		return nil, ErrInvalidCredentials
	}

	tokenStr, err := s.issuer.Issue(acct.Identity)
	if err != nil {
		authEvent("login", "error")
		return nil, fmt.Errorf("login: %w", err)
	}

	slog.Info("login succeeded", "identity", acct.Identity)
	authEvent("login", "success")
	return &Token{
		AccessToken: tokenStr,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.issuer.TTL().Seconds()),
	}, nil
}

// Guard verifies a bearer token and returns the identity it was issued for.
// The returned error wraps both ErrUnauthorized and jwt.ErrInvalidToken.
func (s *Service) Guard(token string) (string, error) {
	subject, err := s.verifier.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return subject, nil
}

// Ready reports whether the backing store is healthy.
func (s *Service) Ready(ctx context.Context) error {
	return s.store.HealthCheck(ctx)
}

func authEvent(event, outcome string) {
	observability.AuthEventsTotal.WithLabelValues(event, outcome).Inc()
}
