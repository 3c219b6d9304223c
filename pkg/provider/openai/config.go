package openai

import "time"

// DefaultBaseURL is the public OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// Config holds configuration for the OpenAI-compatible analysis adapter.
type Config struct {
	// BaseURL is the API root including the version segment
	// (e.g., "https://api.openai.com/v1" or "http://localhost:9090/v1").
	BaseURL string

	// APIKey is sent as a bearer token. Optional for local backends.
	APIKey string

	// Model is the chat model name. Defaults to "gpt-4o-mini".
	Model string

	// Timeout bounds one analysis call end to end. Defaults to 30s.
	Timeout time.Duration

	// MaxTokens caps the completion length. Defaults to 1200.
	MaxTokens int

	// Temperature is the sampling temperature. Defaults to 0.2.
	Temperature float32
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		APIKey:      apiKey,
		Model:       "gpt-4o-mini",
		Timeout:     30 * time.Second,
		MaxTokens:   1200,
		Temperature: 0.2,
	}
}
