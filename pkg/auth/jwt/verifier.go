package jwt

import (
	"errors"
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Verifier checks tokens produced by an Issuer with the same Config.
type Verifier struct {
	config Config
	method *jwtlib.SigningMethodHMAC
}

// NewVerifier creates a Verifier. It fails on the same conditions as NewIssuer.
func NewVerifier(cfg Config) (*Verifier, error) {
	cfg.applyDefaults()
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}
	m, err := cfg.signingMethod()
	if err != nil {
		return nil, err
	}
	return &Verifier{config: cfg, method: m}, nil
}

// Verify validates signature, algorithm and expiry and returns the subject.
// A token is rejected once the current time reaches its "exp" claim. Every
// failure wraps ErrInvalidToken.
func (v *Verifier) Verify(tokenStr string) (string, error) {
	claims := &jwtlib.RegisteredClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(token *jwtlib.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.config.Secret, nil
	}, v.parserOptions()...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	return claims.Subject, nil
}

// parserOptions builds JWT parser options based on the configuration.
func (v *Verifier) parserOptions() []jwtlib.ParserOption {
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{v.method.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(v.config.Now),
	}

	if v.config.Issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(v.config.Issuer))
	}

	return opts
}
