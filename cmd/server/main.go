// Command server runs the clauselens contract-analysis API.
//
// Configuration is read from a YAML file (--config, CLAUSELENS_CONFIG,
// ./config.yaml or /etc/clauselens/config.yaml) with environment overrides:
//
//	CLAUSELENS_SECRET_KEY  - Token signing secret, at least 32 bytes (required; SECRET_KEY also accepted)
//	OPENAI_API_KEY         - Gateway API key (required for the public OpenAI endpoint)
//	CLAUSELENS_GATEWAY_URL - OpenAI-compatible base URL (default: https://api.openai.com/v1)
//	CLAUSELENS_PORT        - Listen port (default: 8080)
//	CLAUSELENS_STORAGE     - Account store: "memory" or "postgres" (default: "memory")
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rhuss/clauselens/pkg/accounts"
	"github.com/rhuss/clauselens/pkg/auth"
	"github.com/rhuss/clauselens/pkg/auth/jwt"
	"github.com/rhuss/clauselens/pkg/auth/password"
	"github.com/rhuss/clauselens/pkg/config"
	"github.com/rhuss/clauselens/pkg/debug"
	"github.com/rhuss/clauselens/pkg/provider/openai"
	"github.com/rhuss/clauselens/pkg/storage"
	"github.com/rhuss/clauselens/pkg/storage/memory"
	"github.com/rhuss/clauselens/pkg/storage/postgres"
	transporthttp "github.com/rhuss/clauselens/pkg/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)
	debug.Init(cfg.Logging.Debug)
	if cats := debug.Categories(); len(cats) > 0 {
		logger.Info("debug logging enabled", "categories", cats)
	}

	ctx := context.Background()

	store, err := newStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	hasher, err := password.New(password.Config{
		Cost:          cfg.Auth.BcryptCost,
		MaxConcurrent: cfg.Auth.MaxConcurrentHashes,
	})
	if err != nil {
		return fmt.Errorf("creating hasher: %w", err)
	}

	tokenCfg := jwt.Config{
		Secret:    []byte(cfg.Auth.SecretKey),
		Algorithm: cfg.Auth.Algorithm,
		TTL:       cfg.Auth.TokenTTL,
		Issuer:    cfg.Auth.Issuer,
	}
	issuer, err := jwt.NewIssuer(tokenCfg)
	if err != nil {
		return fmt.Errorf("creating token issuer: %w", err)
	}
	verifier, err := jwt.NewVerifier(tokenCfg)
	if err != nil {
		return fmt.Errorf("creating token verifier: %w", err)
	}

	svc, err := accounts.NewService(ctx, store, hasher, issuer, verifier)
	if err != nil {
		return fmt.Errorf("creating account service: %w", err)
	}

	analyzer, err := openai.New(openai.Config{
		BaseURL:     cfg.Gateway.BaseURL,
		APIKey:      cfg.Gateway.APIKey,
		Model:       cfg.Gateway.Model,
		Timeout:     cfg.Gateway.Timeout,
		MaxTokens:   cfg.Gateway.MaxTokens,
		Temperature: cfg.Gateway.Temperature,
	})
	if err != nil {
		return fmt.Errorf("creating analysis gateway: %w", err)
	}
	defer analyzer.Close()

	// /analyze has no anonymous fallback: no valid token, no access.
	guard := &auth.AuthChain{
		Authenticators:  []auth.Authenticator{jwt.NewAuthenticator(jwt.VerifierFunc(svc.Guard))},
		DefaultDecision: auth.No,
	}

	adapterCfg := transporthttp.DefaultConfig()
	adapterCfg.MaxBodySize = cfg.Server.MaxBodySize
	adapterCfg.Fallback = cfg.Gateway.Fallback
	adapterCfg.FallbackMessage = cfg.Gateway.FallbackMessage
	adapterCfg.MetricsPath = ""
	if cfg.Observability.Metrics.Enabled {
		adapterCfg.MetricsPath = cfg.Observability.Metrics.Path
	}
	adapter := transporthttp.NewAdapter(svc, analyzer, guard, adapterCfg)

	srv := transporthttp.NewServer(adapter,
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithCORSOrigins(cfg.Server.CORSOrigins),
		transporthttp.WithLogger(logger),
	)

	logger.Info("clauselens configured",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Type,
		"gateway", cfg.Gateway.BaseURL,
		"model", analyzer.Model(),
		"algorithm", issuer.Algorithm(),
		"token_ttl", issuer.TTL(),
		"fallback", cfg.Gateway.Fallback,
	)

	return srv.ListenAndServe()
}

func newStore(ctx context.Context, cfg config.StorageConfig) (storage.AccountStore, error) {
	switch cfg.Type {
	case "postgres":
		store, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.Postgres.DSN,
			MaxConns:       cfg.Postgres.MaxConns,
			MigrateOnStart: cfg.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, fmt.Errorf("creating postgres store: %w", err)
		}
		slog.Info("storage enabled", "type", "postgres", "max_conns", cfg.Postgres.MaxConns)
		return store, nil
	default:
		slog.Info("storage enabled", "type", "memory")
		return memory.New(), nil
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: debug.ParseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
