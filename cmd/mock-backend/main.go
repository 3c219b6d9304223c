// Command mock-backend runs a deterministic Chat Completions server for
// local development and end-to-end tests without an OpenAI API key. Every
// request receives the same five-part contract analysis.
//
// Failure modes can be triggered from the contract text:
//
//	MOCK_QUOTA    - 429 insufficient_quota
//	MOCK_UPSTREAM - 500 server_error
//	MOCK_EMPTY    - 200 with no choices
//	MOCK_SLOW     - delays the response by MOCK_DELAY (default: 5s)
//
// Configuration:
//
//	MOCK_PORT  - Listen port (default: 9090)
//	MOCK_DELAY - Delay used by MOCK_SLOW
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	goopenai "github.com/sashabaranov/go-openai"
)

// cannedAnalysis follows the five sections the analysis prompt asks for.
const cannedAnalysis = `1. Executive Summary
This agreement is a standard services contract between two parties with a twelve month term.

2. Key Clauses
- Term and renewal: automatically renews for successive one year periods.
- Payment: net 30 days from invoice.
- Termination: either party with 60 days written notice.

3. Risk Score
42/100

4. Risky Clauses
- Automatic renewal without a reminder obligation.
- Unlimited liability for the service provider.

5. Suggested Improvements
- Require written notice 30 days before renewal.
- Cap liability at the fees paid in the preceding twelve months.`

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}
	delay := 5 * time.Second
	if v := os.Getenv("MOCK_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			delay = d
		}
	}

	srv := &http.Server{Addr: ":" + port, Handler: newMux(delay)}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

func newMux(slowDelay time.Duration) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/chat/completions", chatCompletions(slowDelay))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return mux
}

func chatCompletions(slowDelay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req goopenai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_error", "invalid_request", "invalid request body")
			return
		}

		var prompt strings.Builder
		for _, m := range req.Messages {
			if m.Role == goopenai.ChatMessageRoleUser {
				prompt.WriteString(m.Content)
			}
		}
		text := prompt.String()

		slog.Info("chat completion", "model", req.Model, "user", req.User, "prompt_bytes", len(text))

		switch {
		case strings.Contains(text, "MOCK_QUOTA"):
			writeError(w, http.StatusTooManyRequests, "insufficient_quota", "insufficient_quota",
				"You exceeded your current quota.")
			return
		case strings.Contains(text, "MOCK_UPSTREAM"):
			writeError(w, http.StatusInternalServerError, "server_error", "server_error",
				"The server had an error while processing your request.")
			return
		case strings.Contains(text, "MOCK_SLOW"):
			select {
			case <-time.After(slowDelay):
			case <-r.Context().Done():
				return
			}
		}

		resp := goopenai.ChatCompletionResponse{
			ID:      "chatcmpl-" + uuid.NewString(),
			Object:  "chat.completion",
			Created: time.Now().Unix(),
			Model:   req.Model,
		}
		if !strings.Contains(text, "MOCK_EMPTY") {
			resp.Choices = []goopenai.ChatCompletionChoice{{
				Index: 0,
				Message: goopenai.ChatCompletionMessage{
					Role:    goopenai.ChatMessageRoleAssistant,
					Content: cannedAnalysis,
				},
				FinishReason: goopenai.FinishReasonStop,
			}}
		}
		promptTokens := len(text) / 4
		completionTokens := len(cannedAnalysis) / 4
		resp.Usage = goopenai.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// writeError writes an OpenAI-style error envelope.
func writeError(w http.ResponseWriter, status int, errType, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    errType,
			"code":    code,
		},
	})
}
