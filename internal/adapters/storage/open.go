// Package storage opens the key-value backend selected in the config.
package storage

import (
	"context"
	"fmt"

	"assessio/internal/adapters/filesystem"
	"assessio/internal/adapters/memory"
	"assessio/internal/adapters/postgres"
	"assessio/internal/adapters/s3"
	"assessio/internal/adapters/sqlite"
	"assessio/internal/config"
	"assessio/internal/ports"
	"assessio/pkg/logger"
)

// Open returns the store for cfg.StorageDriver
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (ports.KeyValueStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		store ports.KeyValueStore
		err   error
	)
	switch cfg.StorageDriver {
	case config.DriverMemory:
		store = memory.NewStore(cfg.QuotaBytes)
	case config.DriverFilesystem:
		store, err = filesystem.NewStore(cfg.ResolvedDataDir(), cfg.QuotaBytes)
	case config.DriverSQLite:
		store, err = sqlite.Open(ctx, cfg.ResolvedSQLitePath())
	case config.DriverPostgres:
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
	case config.DriverS3:
		store, err = s3.New(ctx, s3.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}

	log.Debug(ctx, "storage opened", logger.String("driver", cfg.StorageDriver))
	return store, nil
}
