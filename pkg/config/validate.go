package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinSecretKeyLength is the minimum accepted length of auth.secret_key in bytes.
const MinSecretKeyLength = 32

// Validate checks the configuration for required fields and valid values.
// All problems are reported together, each with its field path.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// The key itself is never echoed.
	switch {
	case c.Auth.SecretKey == "":
		errs = append(errs, errors.New("auth.secret_key (or auth.secret_key_file) is required"))
	case len(c.Auth.SecretKey) < MinSecretKeyLength:
		errs = append(errs, fmt.Errorf("auth.secret_key must be at least %d bytes, got %d",
			MinSecretKeyLength, len(c.Auth.SecretKey)))
	}

	switch c.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("auth.algorithm must be HS256, HS384 or HS512, got %q", c.Auth.Algorithm))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be > 0, got %s", c.Auth.TokenTTL))
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost))
	}

	if c.Auth.MaxConcurrentHashes < 0 {
		errs = append(errs, fmt.Errorf("auth.max_concurrent_hashes must be >= 0, got %d", c.Auth.MaxConcurrentHashes))
	}

	switch c.Storage.Type {
	case "memory":
	case "postgres":
		if c.Storage.Postgres.DSN == "" {
			errs = append(errs, errors.New("storage.postgres.dsn or storage.postgres.dsn_file is required when storage.type is \"postgres\""))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\" or \"postgres\", got %q", c.Storage.Type))
	}

	if u, err := url.Parse(c.Gateway.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("gateway.base_url must be an http(s) URL, got %q", c.Gateway.BaseURL))
	}
	if c.Gateway.APIKey == "" && strings.TrimRight(c.Gateway.BaseURL, "/") == DefaultGatewayURL {
		errs = append(errs, errors.New("gateway.api_key (or OPENAI_API_KEY) is required for the public OpenAI endpoint"))
	}
	if c.Gateway.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("gateway.timeout must be > 0, got %s", c.Gateway.Timeout))
	}
	if c.Gateway.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("gateway.max_tokens must be >= 0, got %d", c.Gateway.MaxTokens))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be trace, debug, info, warn or error, got %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format))
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with /, got %q", c.Observability.Metrics.Path))
	}

	return errors.Join(errs...)
}
