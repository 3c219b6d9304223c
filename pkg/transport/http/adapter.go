package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhuss/clauselens/pkg/accounts"
	"github.com/rhuss/clauselens/pkg/api"
	"github.com/rhuss/clauselens/pkg/auth"
	"github.com/rhuss/clauselens/pkg/observability"
	"github.com/rhuss/clauselens/pkg/provider"
	"github.com/rhuss/clauselens/pkg/transport"
)

// Adapter serves the account and analysis API over HTTP.
// It routes requests to the appropriate handler and serializes responses.
type Adapter struct {
	accounts transport.AccountService
	analyzer provider.Analyzer
	router   *mux.Router
	config   Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	// MaxBodySize caps request bodies in bytes.
	MaxBodySize int64

	// Fallback answers a failed analysis with FallbackMessage and a 200
	// instead of a 502 gateway_error.
	Fallback        bool
	FallbackMessage string

	// MetricsPath mounts the Prometheus handler. Empty disables it.
	MetricsPath string

	Validation api.ValidationConfig
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize:     1 << 20, // 1 MB
		Fallback:        true,
		FallbackMessage: provider.DefaultFallbackMessage,
		MetricsPath:     "/metrics",
		Validation:      api.DefaultValidationConfig(),
	}
}

// NewAdapter creates an HTTP adapter. The guard chain protects /analyze;
// all other routes are public.
func NewAdapter(svc transport.AccountService, analyzer provider.Analyzer, guard *auth.AuthChain, cfg Config) *Adapter {
	if cfg.FallbackMessage == "" {
		cfg.FallbackMessage = provider.DefaultFallbackMessage
	}

	a := &Adapter{
		accounts: svc,
		analyzer: analyzer,
		router:   mux.NewRouter(),
		config:   cfg,
	}

	r := a.router
	r.Use(observability.MetricsMiddleware)
	r.NotFoundHandler = http.HandlerFunc(a.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(a.handleMethodNotAllowed)

	r.HandleFunc("/healthz", a.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", a.handleReadyz).Methods(http.MethodGet)
	if cfg.MetricsPath != "" {
		r.Handle(cfg.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/signup", a.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/login", a.handleLogin).Methods(http.MethodPost)

	guarded := auth.Middleware(guard, nil)
	r.Handle("/analyze", guarded(http.HandlerFunc(a.handleAnalyze))).Methods(http.MethodPost)

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest.
func (a *Adapter) Handler() http.Handler {
	return a.router
}

// handleSignup handles POST /signup.
func (a *Adapter) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if !a.decodeJSON(w, r, &creds) {
		return
	}
	if apiErr := api.ValidateCredentials(&creds, a.config.Validation); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	err := a.accounts.Signup(r.Context(), creds.Email, creds.Password)
	switch {
	case errors.Is(err, accounts.ErrAccountExists):
		transport.WriteAPIError(w, api.NewConflictError("email", "an account with this email already exists"))
		return
	case errors.Is(err, accounts.ErrInvalidInput):
		transport.WriteAPIError(w, api.NewInvalidRequestError("", "email and password are required"))
		return
	case err != nil:
		a.writeServerError(w, r, "signup", err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "created"})
}

// handleLogin handles POST /login. It accepts a JSON body or an OAuth2-style
// form with username (or email) and password fields.
func (a *Adapter) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if form, multipart := formKind(r); form {
		r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
		var err error
		if multipart {
			err = r.ParseMultipartForm(a.config.MaxBodySize)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			a.writeDecodeError(w, err)
			return
		}
		creds.Email = r.PostForm.Get("username")
		if creds.Email == "" {
			creds.Email = r.PostForm.Get("email")
		}
		creds.Password = r.PostForm.Get("password")
	} else if !a.decodeJSON(w, r, &creds) {
		return
	}

	tok, err := a.accounts.Login(r.Context(), creds.Email, creds.Password)
	switch {
	case errors.Is(err, accounts.ErrInvalidCredentials):
		transport.WriteAPIError(w, api.NewUnauthorizedError("invalid email or password"))
		return
	case err != nil:
		a.writeServerError(w, r, "login", err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	transport.WriteJSON(w, http.StatusOK, api.TokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   api.TokenTypeBearer,
		ExpiresIn:   tok.ExpiresIn,
	})
}

// handleAnalyze handles POST /analyze. The identity was put in the
// context by the guard middleware.
func (a *Adapter) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req api.AnalyzeRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if apiErr := api.ValidateAnalyzeRequest(&req, a.config.Validation); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	var subject string
	if id := auth.IdentityFromContext(r.Context()); id != nil {
		subject = id.Subject
	}

	analysis, err := a.analyzer.Analyze(r.Context(), subject, req.Text)
	if err != nil {
		if r.Context().Err() != nil {
			slog.Info("client went away during analysis",
				"request_id", transport.RequestIDFromContext(r.Context()),
				"subject", subject,
			)
			return
		}
		a.writeGatewayFailure(w, r, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.AnalyzeResponse{
		Analysis: analysis.Text,
		Model:    analysis.Model,
	})
}

// writeGatewayFailure applies the fallback policy to a failed analysis.
func (a *Adapter) writeGatewayFailure(w http.ResponseWriter, r *http.Request, err error) {
	kind := provider.KindUpstream
	var retryAfter int
	var gwErr *provider.GatewayError
	if errors.As(err, &gwErr) {
		kind = gwErr.Kind
		retryAfter = int(gwErr.RetryAfter().Seconds())
	}

	if a.config.Fallback {
		slog.Warn("serving fallback analysis",
			"request_id", transport.RequestIDFromContext(r.Context()),
			"kind", kind,
		)
		observability.GatewayFallbacksTotal.WithLabelValues(string(kind)).Inc()
		transport.WriteJSON(w, http.StatusOK, api.AnalyzeResponse{
			Analysis: a.config.FallbackMessage,
			Degraded: true,
		})
		return
	}

	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}
	transport.WriteAPIError(w, api.NewGatewayError(string(kind), "contract analysis is currently unavailable", retryAfter))
}

// handleHealthz handles GET /healthz (liveness).
func (a *Adapter) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReadyz handles GET /readyz (readiness of the account store).
func (a *Adapter) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := a.accounts.Ready(r.Context()); err != nil {
		slog.Warn("readiness check failed", "error", err)
		transport.WriteJSON(w, http.StatusServiceUnavailable, map[string]bool{"ready": false})
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
}

func (a *Adapter) handleNotFound(w http.ResponseWriter, r *http.Request) {
	transport.WriteAPIError(w, api.NewNotFoundError(fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path)))
}

func (a *Adapter) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	transport.WriteErrorResponse(w,
		api.NewInvalidRequestError("", fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path)),
		http.StatusMethodNotAllowed,
	)
}

// decodeJSON reads a JSON body into v. On failure it writes the error
// response and returns false.
func (a *Adapter) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
				http.StatusUnsupportedMediaType,
			)
			return false
		}
	}

	// Limit body size.
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.writeDecodeError(w, err)
		return false
	}
	return true
}

func (a *Adapter) writeDecodeError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
			http.StatusRequestEntityTooLarge,
		)
		return
	}
	transport.WriteErrorResponse(w,
		api.NewInvalidRequestError("body", "invalid request body"),
		http.StatusBadRequest,
	)
}

// writeServerError logs the internal cause and returns a generic 500.
func (a *Adapter) writeServerError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op+" failed",
		"request_id", transport.RequestIDFromContext(r.Context()),
		"error", err,
	)
	transport.WriteAPIError(w, api.NewServerError("internal server error"))
}

// formKind reports whether the body is a form, and whether that form is multipart.
func formKind(r *http.Request) (form, multipart bool) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false, false
	}
	if mediaType == "multipart/form-data" {
		return true, true
	}
	return mediaType == "application/x-www-form-urlencoded", false
}
