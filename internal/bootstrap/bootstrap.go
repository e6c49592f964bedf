// Package bootstrap wires config, storage and the workspace for the binaries.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"assessio/internal/adapters/repository"
	"assessio/internal/adapters/storage"
	"assessio/internal/application"
	"assessio/internal/config"
	"assessio/internal/ports"
	"assessio/pkg/logger"
	"assessio/pkg/metrics"
)

// Runtime is an initialized workspace and the resources behind it
type Runtime struct {
	Config    *config.Config
	Logger    logger.Logger
	Metrics   *metrics.Manager
	Workspace *application.Workspace

	store ports.KeyValueStore
}

// Open builds a Runtime from cfg, logging to logOut. The catalog and any
// saved draft are loaded before it returns.
func Open(ctx context.Context, cfg *config.Config, logOut io.Writer) (*Runtime, error) {
	log, err := logger.New(logOut, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	collator, err := application.NewCollator(cfg.Locale)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	m := metrics.NewManager()
	ws := application.NewWorkspace(application.Options{
		Catalogs: repository.NewCatalogRepository(store, log),
		Records:  repository.NewRecordRepository(store, log),
		Drafts:   repository.NewDraftRepository(store, log),
		Clock:    application.SystemClock{},
		Collator: collator,
		Logger:   log,
		Metrics:  m,
	})
	if err := ws.Init(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("load workspace: %w", err)
	}

	return &Runtime{Config: cfg, Logger: log, Metrics: m, Workspace: ws, store: store}, nil
}

// Load reads the config from the environment and opens it
func Load(ctx context.Context, logOut io.Writer) (*Runtime, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Open(ctx, cfg, logOut)
}

// Close releases the storage backend
func (r *Runtime) Close() error {
	return r.store.Close()
}
