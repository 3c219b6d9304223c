// Package config provides unified configuration for the clauselens service.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (CLAUSELENS_ prefix)
//  4. Backward-compatible env var mapping for legacy variable names
//  5. File reference resolution (_file suffix fields)
//  6. Validation
package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultGatewayURL is the public OpenAI API endpoint.
const DefaultGatewayURL = "https://api.openai.com/v1"

// Config holds all configuration for the clauselens service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Auth          AuthConfig          `yaml:"auth"`
	Storage       StorageConfig       `yaml:"storage"`
	Gateway       GatewayConfig       `yaml:"gateway"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 60s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 10s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 1 MB
	CORSOrigins     []string      `yaml:"cors_origins"`     // default: ["*"]
}

// AuthConfig holds credential hashing and token settings.
type AuthConfig struct {
	SecretKey     string        `yaml:"secret_key"`      // required, at least 32 bytes
	SecretKeyFile string        `yaml:"secret_key_file"` // _file variant for secret_key
	Algorithm     string        `yaml:"algorithm"`       // HS256, HS384 or HS512, default: HS256
	TokenTTL      time.Duration `yaml:"token_ttl"`       // default: 60m
	Issuer        string        `yaml:"issuer"`          // optional iss claim

	BcryptCost          int `yaml:"bcrypt_cost"`           // default: bcrypt.DefaultCost
	MaxConcurrentHashes int `yaml:"max_concurrent_hashes"` // 0 means GOMAXPROCS
}

// StorageConfig holds account store settings.
type StorageConfig struct {
	Type     string         `yaml:"type"` // "memory" or "postgres", default: "memory"
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 25
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// GatewayConfig holds the LLM analysis backend settings.
type GatewayConfig struct {
	BaseURL     string        `yaml:"base_url"`     // default: DefaultGatewayURL
	APIKey      string        `yaml:"api_key"`      // required for the public endpoint
	APIKeyFile  string        `yaml:"api_key_file"` // _file variant for api_key
	Model       string        `yaml:"model"`        // default: gpt-4o-mini
	Timeout     time.Duration `yaml:"timeout"`      // default: 30s
	MaxTokens   int           `yaml:"max_tokens"`   // default: 1200
	Temperature float32       `yaml:"temperature"`  // default: 0.2

	// Fallback answers gateway failures with FallbackMessage instead of a 502.
	Fallback        bool   `yaml:"fallback"` // default: true
	FallbackMessage string `yaml:"fallback_message"`
}

// LoggingConfig controls the process-wide slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error; default: info
	Format string `yaml:"format"` // text or json; default: text
	Debug  string `yaml:"debug"`  // comma-separated debug categories, e.g. "gateway,auth"
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodySize:     1 << 20,
			CORSOrigins:     []string{"*"},
		},
		Auth: AuthConfig{
			Algorithm:  "HS256",
			TokenTTL:   60 * time.Minute,
			BcryptCost: bcrypt.DefaultCost,
		},
		Storage: StorageConfig{
			Type: "memory",
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
		},
		Gateway: GatewayConfig{
			BaseURL:     DefaultGatewayURL,
			Model:       "gpt-4o-mini",
			Timeout:     30 * time.Second,
			MaxTokens:   1200,
			Temperature: 0.2,
			Fallback:    true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
