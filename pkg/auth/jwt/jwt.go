// Package jwt issues and verifies the HMAC-signed bearer tokens handed out
// at login, and plugs the verifier into the auth chain.
//
// Tokens carry the account identity in "sub", an "iat" and an "exp"
// timestamp, and an optional "iss". The signing secret and algorithm are
// process-wide and fixed at startup; there is no key rotation and no
// server-side revocation, so a token stays valid until it expires.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rhuss/clauselens/pkg/auth"
	"github.com/rhuss/clauselens/pkg/debug"
)

// DefaultTTL is the lifetime of an issued token.
const DefaultTTL = 60 * time.Minute

// ErrInvalidToken is returned for every verification failure: bad signature,
// unparsable token, unexpected algorithm, missing subject, or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Config holds the token settings shared by Issuer and Verifier.
type Config struct {
	// Secret is the symmetric signing key (required).
	Secret []byte

	// Algorithm is the HMAC algorithm name. Default: "HS256".
	Algorithm string

	// TTL is the token lifetime. Default: DefaultTTL.
	TTL time.Duration

	// Issuer is set as the "iss" claim and required on verification when non-empty.
	Issuer string

	// Now returns the current time. Default: time.Now.
	Now func() time.Time
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) applyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = jwtlib.SigningMethodHS256.Alg()
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// signingMethod resolves the configured algorithm and rejects anything that
// is not a symmetric HMAC method.
func (c *Config) signingMethod() (*jwtlib.SigningMethodHMAC, error) {
	m, ok := jwtlib.GetSigningMethod(c.Algorithm).(*jwtlib.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q (want HS256, HS384 or HS512)", c.Algorithm)
	}
	return m, nil
}

// TokenVerifier resolves a bearer token to its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// VerifierFunc adapts a plain function to TokenVerifier.
type VerifierFunc func(token string) (string, error)

// Verify calls f(token).
func (f VerifierFunc) Verify(token string) (string, error) { return f(token) }

// Authenticator validates bearer tokens and plugs into the auth chain.
type Authenticator struct {
	verifier TokenVerifier
}

// NewAuthenticator creates an auth chain member backed by v.
func NewAuthenticator(v TokenVerifier) *Authenticator {
	return &Authenticator{verifier: v}
}

// Authenticate extracts a bearer token from the Authorization header,
// validates it, and returns an identity on success.
//
// Decision outcomes:
//   - Abstain: no Authorization header or not a Bearer scheme
//   - No: bearer token present but invalid (expired, bad signature, etc.)
//   - Yes: valid token with populated Identity
func (a *Authenticator) Authenticate(_ context.Context, r *http.Request) auth.AuthResult {
	header := r.Header.Get("Authorization")
	if header == "" {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	scheme, tokenStr, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return auth.AuthResult{
			Decision: auth.No,
			Err:      fmt.Errorf("%w: empty bearer token", ErrInvalidToken),
		}
	}

	subject, err := a.verifier.Verify(tokenStr)
	if err != nil {
		debug.Log("auth", "bearer token rejected", "error", err)
		return auth.AuthResult{Decision: auth.No, Err: err}
	}

	return auth.AuthResult{
		Decision: auth.Yes,
		Identity: &auth.Identity{Subject: subject},
	}
}
