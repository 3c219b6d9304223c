package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/rhuss/clauselens/pkg/provider"
)

// classify converts a go-openai client error into a GatewayError.
func classify(err error) *provider.GatewayError {
	var (
		apiErr    *goopenai.APIError
		reqErr    *goopenai.RequestError
		netErr    net.Error
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &provider.GatewayError{Kind: provider.KindTimeout, Err: err}

	case errors.As(err, &apiErr):
		kind := statusKind(apiErr.HTTPStatusCode)
		if apiErr.Code == "insufficient_quota" || apiErr.Type == "insufficient_quota" {
			kind = provider.KindQuota
		}
		return &provider.GatewayError{Kind: kind, StatusCode: apiErr.HTTPStatusCode, Err: err}

	case errors.As(err, &reqErr):
		return &provider.GatewayError{Kind: statusKind(reqErr.HTTPStatusCode), StatusCode: reqErr.HTTPStatusCode, Err: err}

	case errors.As(err, &netErr) && netErr.Timeout():
		return &provider.GatewayError{Kind: provider.KindTimeout, Err: err}

	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return &provider.GatewayError{Kind: provider.KindMalformed, Err: err}

	default:
		return &provider.GatewayError{Kind: provider.KindNetwork, Err: err}
	}
}

// statusKind maps a backend HTTP status to a failure kind.
func statusKind(status int) provider.Kind {
	switch {
	case status == http.StatusTooManyRequests:
		return provider.KindQuota
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return provider.KindTimeout
	default:
		return provider.KindUpstream
	}
}
