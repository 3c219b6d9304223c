package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rhuss/clauselens/pkg/api"
	"github.com/rhuss/clauselens/pkg/observability"
)

// Middleware creates HTTP middleware from an AuthChain.
// It checks the bypass list, runs authentication, and injects the identity
// into the request context. Rejections are answered with a 401 JSON error.
func Middleware(chain *AuthChain, bypassEndpoints []string) func(http.Handler) http.Handler {
	bypass := make(map[string]bool, len(bypassEndpoints))
	for _, ep := range bypassEndpoints {
		bypass[ep] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check bypass list.
			if bypass[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			result := chain.Authenticate(r.Context(), r)

			if result.Decision != Yes || result.Identity == nil {
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", result.Err,
				)
				observability.AuthEventsTotal.WithLabelValues("guard", "rejected").Inc()
				writeError(w, http.StatusUnauthorized, api.NewUnauthorizedError("invalid or expired token"))
				return
			}

			if result.Identity.Subject == "" {
				slog.Error("authenticator returned identity with empty subject")
				observability.AuthEventsTotal.WithLabelValues("guard", "error").Inc()
				writeError(w, http.StatusInternalServerError, api.NewServerError("internal authentication error"))
				return
			}

			slog.Debug("authentication succeeded",
				"subject", result.Identity.Subject,
				"path", r.URL.Path,
			)
			observability.AuthEventsTotal.WithLabelValues("guard", "success").Inc()

			next.ServeHTTP(w, r.WithContext(SetIdentity(r.Context(), result.Identity)))
		})
	}
}

// writeError writes the JSON error envelope. 401s carry a Bearer challenge.
func writeError(w http.ResponseWriter, status int, apiErr *api.APIError) {
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: apiErr})
}

// DefaultBypassEndpoints lists endpoints that skip authentication.
var DefaultBypassEndpoints = []string{"/healthz", "/readyz", "/metrics"}
