// Package cli provides common initialization utilities shared by the
// command-line entry points.
package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"libretto/internal/config"
	applog "libretto/internal/log"
	"libretto/internal/services"
	"libretto/internal/storage"
	"libretto/internal/storage/memory"
)

// SetupLogger initializes structured logging at the given level and sets
// it as the process default.
func SetupLogger(level slog.Level) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Handler:   slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitStore builds the configured store backend. Returns the store and a
// close function, or exits the process on failure.
func InitStore(logger *applog.Logger, cfg *config.Config, loc *time.Location) (services.Store, func() error) {
	if cfg.Backend == "memory" {
		logger.Info("Initialized memory backend")
		return memory.New(), func() error { return nil }
	}

	repo, err := storage.NewSQLiteRepository(cfg.DBPath, loc)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.FieldError, err, applog.FieldDBPath, cfg.DBPath)
		os.Exit(1)
	}
	logger.Info("Initialized sqlite backend", applog.FieldDBPath, cfg.DBPath)
	return repo, repo.Close
}
