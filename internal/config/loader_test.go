package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"assessio/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"ASSESSIO_CONFIG",
	"ASSESSIO_ENV_FILE",
	"ASSESSIO_LOG_LEVEL",
	"ASSESSIO_STORAGE_DRIVER",
	"ASSESSIO_DATA_DIR",
	"ASSESSIO_POSTGRES_DSN",
	"ASSESSIO_S3_BUCKET",
	"ASSESSIO_S3_PATH_STYLE",
	"ASSESSIO_QUOTA_BYTES",
	"ASSESSIO_LOCALE",
}

func clearConfigEnvVars() {
	for _, name := range configEnvVars {
		_ = os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	t.Chdir(t.TempDir())
	ctx := context.Background()

	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then the defaults are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverFilesystem)
				convey.So(cfg.DataDir, convey.ShouldEqual, config.DefaultDataDir)
				convey.So(cfg.Locale, convey.ShouldEqual, "ja")
			})
		})

		convey.Convey("When environment variables are set", func() {
			_ = os.Setenv("ASSESSIO_STORAGE_DRIVER", "s3")
			_ = os.Setenv("ASSESSIO_S3_BUCKET", "assessments")
			_ = os.Setenv("ASSESSIO_S3_PATH_STYLE", "true")
			_ = os.Setenv("ASSESSIO_QUOTA_BYTES", "5242880")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverS3)
				convey.So(cfg.S3Bucket, convey.ShouldEqual, "assessments")
				convey.So(cfg.S3PathStyle, convey.ShouldBeTrue)
				convey.So(cfg.QuotaBytes, convey.ShouldEqual, 5242880)
			})
		})

		convey.Convey("When a YAML file is given", func() {
			path := writeFile(t, t.TempDir(), "assessio.yaml", "storage_driver: sqlite\nsqlite_path: /tmp/a.db\nlocale: en\n")
			_ = os.Setenv("ASSESSIO_CONFIG", path)
			_ = os.Setenv("ASSESSIO_LOCALE", "ja-JP")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it is layered under the environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverSQLite)
				convey.So(cfg.ResolvedSQLitePath(), convey.ShouldEqual, "/tmp/a.db")
				convey.So(cfg.Locale, convey.ShouldEqual, "ja-JP")
			})
		})

		convey.Convey("When a .env file is given", func() {
			path := writeFile(t, t.TempDir(), "test.env", "ASSESSIO_LOG_LEVEL=debug\n")
			_ = os.Setenv("ASSESSIO_ENV_FILE", path)
			defer func() { _ = os.Unsetenv("ASSESSIO_LOG_LEVEL") }()

			cfg, err := config.Load(ctx)

			convey.Convey("Then its variables are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When the YAML file is missing", func() {
			_ = os.Setenv("ASSESSIO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the driver is unknown", func() {
			_ = os.Setenv("ASSESSIO_STORAGE_DRIVER", "floppy")

			_, err := config.Load(ctx)

			convey.Convey("Then the config is invalid", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When postgres is selected without a DSN", func() {
			_ = os.Setenv("ASSESSIO_STORAGE_DRIVER", "postgres")

			_, err := config.Load(ctx)

			convey.Convey("Then the config is invalid", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestResolvedDataDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := config.New()
	if got, want := cfg.ResolvedDataDir(), filepath.Join(home, ".assessio"); got != want {
		t.Errorf("ResolvedDataDir() = %q, want %q", got, want)
	}
	if got, want := cfg.ResolvedSQLitePath(), filepath.Join(home, ".assessio", "assessio.db"); got != want {
		t.Errorf("ResolvedSQLitePath() = %q, want %q", got, want)
	}
}
