// Package openai implements provider.Analyzer on top of any backend that
// speaks the OpenAI Chat Completions API, using github.com/sashabaranov/go-openai.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/rhuss/clauselens/pkg/debug"
	"github.com/rhuss/clauselens/pkg/observability"
	"github.com/rhuss/clauselens/pkg/provider"
)

// Analyzer sends one chat completion per analysis.
type Analyzer struct {
	cfg        Config
	client     *goopenai.Client
	httpClient *http.Client
}

// Ensure Analyzer implements provider.Analyzer at compile time.
var _ provider.Analyzer = (*Analyzer)(nil)

// New creates an Analyzer. Zero-valued fields in cfg take the values of
// DefaultConfig.
func New(cfg Config) (*Analyzer, error) {
	defaults := DefaultConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaults.Temperature
	}

	// Normalize: remove trailing slash from base URL.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("openai: base URL %q must be http or https", cfg.BaseURL)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = httpClient

	return &Analyzer{
		cfg:        cfg,
		client:     goopenai.NewClientWithConfig(clientCfg),
		httpClient: httpClient,
	}, nil
}

// Model returns the configured model name.
func (a *Analyzer) Model() string {
	return a.cfg.Model
}

// Analyze runs the fixed analysis prompt over text. The subject is passed as
// the request's user field so the backend can attribute usage.
func (a *Analyzer) Analyze(ctx context.Context, subject, text string) (*provider.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	req := goopenai.ChatCompletionRequest{
		Model: a.cfg.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: provider.SystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: provider.UserPrompt(text)},
		},
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
		User:        subject,
	}

	debug.Log("gateway", "chat completion request",
		"base_url", a.cfg.BaseURL, "model", a.cfg.Model, "user", subject, "text_bytes", len(text))
	if debug.TraceIsEnabled("gateway") {
		debug.Trace("gateway", "chat completion prompt", "prompt", req.Messages[1].Content)
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	observability.GatewayLatency.WithLabelValues(a.cfg.Model).Observe(time.Since(start).Seconds())

	if err != nil {
		gwErr := classify(err)
		a.recordFailure(gwErr)
		return nil, gwErr
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		gwErr := &provider.GatewayError{Kind: provider.KindMalformed, Err: errors.New("completion has no content")}
		a.recordFailure(gwErr)
		return nil, gwErr
	}

	debug.Log("gateway", "chat completion response",
		"id", resp.ID,
		"finish_reason", resp.Choices[0].FinishReason,
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
		"content", debug.Truncate(resp.Choices[0].Message.Content, 200),
	)

	model := resp.Model
	if model == "" {
		model = a.cfg.Model
	}

	observability.GatewayRequestsTotal.WithLabelValues(a.cfg.Model, "ok").Inc()
	observability.GatewayTokensTotal.WithLabelValues(a.cfg.Model, "input").Add(float64(resp.Usage.PromptTokens))
	observability.GatewayTokensTotal.WithLabelValues(a.cfg.Model, "output").Add(float64(resp.Usage.CompletionTokens))

	return &provider.Analysis{
		Text:  resp.Choices[0].Message.Content,
		Model: model,
		Usage: provider.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *Analyzer) recordFailure(gwErr *provider.GatewayError) {
	slog.Error("analysis gateway failed",
		"model", a.cfg.Model,
		"kind", gwErr.Kind,
		"status_code", gwErr.StatusCode,
		"error", gwErr.Err,
	)
	observability.GatewayRequestsTotal.WithLabelValues(a.cfg.Model, string(gwErr.Kind)).Inc()
}

// Close releases client resources.
func (a *Analyzer) Close() error {
	a.httpClient.CloseIdleConnections()
	return nil
}
