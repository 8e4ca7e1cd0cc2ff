// Package cli provides common CLI initialization utilities shared by
// cmd/workday and cmd/workday-report.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"workday/internal/config"
	applog "workday/internal/log"
	"workday/internal/storage"
)

// SetupLogger initializes structured logging at the given LOG_LEVEL value.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpValidate)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite opens the repository at cfg.SQLiteDBPath, running migrations.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *applog.Logger, cfg *config.Config) *storage.Repository {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath, storage.Options{
		BusyTimeout: cfg.SQLiteBusyTimeout,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.FieldError, err,
			applog.FieldDBPath, cfg.SQLiteDBPath)
		os.Exit(1)
	}
	return repo
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
