// Package provider defines the Analysis Gateway: the contract an LLM
// backend adapter implements (Analyzer), its typed failure (GatewayError),
// and the fixed prompt template shared by all adapters.
//
// Adapters never swallow failures. Whether a failed analysis degrades to
// the fallback message or surfaces as an error is decided by the HTTP layer.
package provider
