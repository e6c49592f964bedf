// Package config loads runtime settings for the assessio binaries.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Storage drivers accepted in StorageDriver
const (
	DriverFilesystem = "fs"
	DriverSQLite     = "sqlite"
	DriverPostgres   = "postgres"
	DriverS3         = "s3"
	DriverMemory     = "memory"
)

// DefaultDataDir holds file-backed storage when nothing else is configured
const DefaultDataDir = "~/.assessio"

// Config contains process configuration
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// StorageDriver selects the key-value backend: fs, sqlite, postgres, s3 or memory.
	StorageDriver string `koanf:"storage_driver"`

	// DataDir is the root for the fs driver and the default sqlite file.
	DataDir string `koanf:"data_dir"`

	SQLitePath  string `koanf:"sqlite_path"`
	PostgresDSN string `koanf:"postgres_dsn"`

	S3Bucket    string `koanf:"s3_bucket"`
	S3Region    string `koanf:"s3_region"`
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3PathStyle bool   `koanf:"s3_path_style"`
	S3Prefix    string `koanf:"s3_prefix"`

	// QuotaBytes caps the memory and fs drivers; zero means unlimited.
	QuotaBytes int64 `koanf:"quota_bytes"`

	// Locale drives the collation of exported rows.
	Locale string `koanf:"locale"`

	// MetricsAddr, when set, serves /metrics from the MCP server.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New returns a Config with defaults
func New() *Config {
	return &Config{
		LogLevel:      "info",
		StorageDriver: DriverFilesystem,
		DataDir:       DefaultDataDir,
		Locale:        "ja",
	}
}

// ResolvedDataDir expands a leading ~ in DataDir
func (c *Config) ResolvedDataDir() string {
	return expandHome(c.DataDir)
}

// ResolvedSQLitePath returns SQLitePath, or assessio.db inside the data dir
func (c *Config) ResolvedSQLitePath() string {
	if c.SQLitePath != "" {
		return expandHome(c.SQLitePath)
	}
	return filepath.Join(c.ResolvedDataDir(), "assessio.db")
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
