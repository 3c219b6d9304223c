package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Issuer signs tokens for authenticated subjects.
type Issuer struct {
	config Config
	method *jwtlib.SigningMethodHMAC
}

// NewIssuer creates an Issuer. It fails if the secret is empty or the
// algorithm is not an HMAC method.
func NewIssuer(cfg Config) (*Issuer, error) {
	cfg.applyDefaults()
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}
	m, err := cfg.signingMethod()
	if err != nil {
		return nil, err
	}
	return &Issuer{config: cfg, method: m}, nil
}

// Issue returns a signed token for subject expiring TTL from now.
func (i *Issuer) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}

	now := i.config.Now()
	claims := jwtlib.RegisteredClaims{
		Subject:   subject,
		Issuer:    i.config.Issuer,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(i.config.TTL)),
	}

	tokenStr, err := jwtlib.NewWithClaims(i.method, claims).SignedString(i.config.Secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenStr, nil
}

// TTL returns the lifetime of issued tokens.
func (i *Issuer) TTL() time.Duration {
	return i.config.TTL
}

// Algorithm returns the advertised signing algorithm name.
func (i *Issuer) Algorithm() string {
	return i.method.Alg()
}
