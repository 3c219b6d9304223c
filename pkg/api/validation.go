package api

import (
	"fmt"
	"strings"
)

// ValidationConfig holds configurable limits for request validation.
type ValidationConfig struct {
	MaxIdentityLength int
	MaxTextSize       int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxIdentityLength: 320, // RFC 5321 path limit
		MaxTextSize:       512 * 1024,
	}
}

// ValidateCredentials checks that both identity and secret are present.
// No password strength rules are applied.
func ValidateCredentials(c *Credentials, cfg ValidationConfig) *APIError {
	if strings.TrimSpace(c.Email) == "" {
		return NewInvalidRequestError("email", "email is required")
	}
	if cfg.MaxIdentityLength > 0 && len(c.Email) > cfg.MaxIdentityLength {
		return NewInvalidRequestError("email",
			fmt.Sprintf("email exceeds maximum length of %d", cfg.MaxIdentityLength))
	}
	if c.Password == "" {
		return NewInvalidRequestError("password", "password is required")
	}
	return nil
}

// ValidateAnalyzeRequest checks that contract text is present and within bounds.
func ValidateAnalyzeRequest(req *AnalyzeRequest, cfg ValidationConfig) *APIError {
	if strings.TrimSpace(req.Text) == "" {
		return NewInvalidRequestError("text", "text is required")
	}
	if cfg.MaxTextSize > 0 && len(req.Text) > cfg.MaxTextSize {
		return NewInvalidRequestError("text",
			fmt.Sprintf("text exceeds maximum size of %d bytes", cfg.MaxTextSize))
	}
	return nil
}
