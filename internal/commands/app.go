package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"TraceTutor/internal/backend"
	"TraceTutor/internal/catalog"
	"TraceTutor/internal/config"
	"TraceTutor/internal/telemetry"
	"TraceTutor/internal/tutor"
)

// app holds everything a front end needs.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	telemetry *telemetry.Providers
	catalog   *catalog.Catalog
	tutor     *tutor.Tutor
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if debugFlag {
		cfg.Debug = true
	}
	return cfg, nil
}

// loadCatalog seeds an in-memory store with the built-in catalog and reads it
// back, so every front end renders from the same tables.
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	store, err := catalog.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.Seed(ctx, catalog.Default()); err != nil {
		return nil, err
	}
	return store.Load(ctx)
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := telemetry.InitLogger(cfg.LogDir, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfg.Debug {
		logger.Info("Debug mode enabled")
	}

	a := &app{cfg: cfg, logger: logger, logCloser: logCloser}

	a.telemetry, err = telemetry.InitTelemetry(ctx, cfg.LogDir)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	a.catalog, err = loadCatalog(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	creds := config.EnvCredentials{}
	chat := backend.NewChatClient(cfg.Chat, creds)
	if _, err := creds.APIKey(cfg.Chat.Backend); err != nil {
		logger.Warn("chat backend has no credential; replies will fall back", "backend", cfg.Chat.Backend, "error", err)
	}

	completer, err := backend.NewCompleter(ctx, cfg.Recommend, creds)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize recommendation provider: %w", err)
	}

	a.tutor = tutor.New(chat, completer,
		tutor.WithLogger(logger),
		tutor.WithTracer(a.telemetry.Tracer),
		tutor.WithMeter(a.telemetry.Meter),
	)

	logger.Info("tracetutor started",
		"version", versionInfo.version,
		"chat_backend", cfg.Chat.Backend,
		"chat_model", cfg.Chat.Model,
		"recommend_provider", cfg.Recommend.Provider,
	)
	return a, nil
}

func (a *app) close() {
	if a.telemetry != nil {
		a.telemetry.Shutdown(context.Background())
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}
