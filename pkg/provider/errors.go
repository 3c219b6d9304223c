package provider

import (
	"fmt"
	"time"
)

// Kind classifies a gateway failure.
type Kind string

const (
	// KindQuota means the backend refused for quota or rate reasons (HTTP 429).
	KindQuota Kind = "quota"

	// KindNetwork means the backend could not be reached.
	KindNetwork Kind = "network"

	// KindUpstream means the backend answered with a non-quota error status.
	KindUpstream Kind = "upstream"

	// KindMalformed means the backend answered 2xx but the body was unusable.
	KindMalformed Kind = "malformed"

	// KindTimeout means the call did not finish within its deadline.
	KindTimeout Kind = "timeout"
)

// Retry hints returned by GatewayError.RetryAfter.
const (
	QuotaRetryAfter   = 60 * time.Second
	TimeoutRetryAfter = 10 * time.Second
)

// GatewayError is the failure result of Analyzer.Analyze.
type GatewayError struct {
	Kind Kind

	// StatusCode is the backend HTTP status, when one was received.
	StatusCode int

	// Err is the underlying cause. It is meant for logs, not for clients.
	Err error
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis gateway %s failure (HTTP %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("analysis gateway %s failure: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// RetryAfter suggests how long a caller should wait before retrying.
// Zero means retrying is not expected to help.
func (e *GatewayError) RetryAfter() time.Duration {
	switch e.Kind {
	case KindQuota:
		return QuotaRetryAfter
	case KindTimeout:
		return TimeoutRetryAfter
	}
	return 0
}
