package provider

import "context"

// Analyzer performs contract analysis against an LLM completion backend.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Analyzer interface {
	// Analyze sends text through the analysis prompt on behalf of subject
	// (the authenticated identity; may be empty). Failures are returned as
	// *GatewayError.
	Analyze(ctx context.Context, subject, text string) (*Analysis, error)

	// Close releases adapter resources (HTTP clients, connections).
	Close() error
}

// Analysis is a successful gateway result.
type Analysis struct {
	// Text is the model's natural-language answer.
	Text string

	// Model is the model that produced the answer, as reported by the backend.
	Model string

	Usage Usage
}

// Usage reports token consumption for one analysis.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
