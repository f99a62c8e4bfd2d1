// Package main is the entry point for the club server.
//
// The main package stays minimal. Its job is to:
// 1. Read configuration (.env, optional YAML, environment)
// 2. Create dependencies (logger, store client)
// 3. Start the application
//
// All actual logic lives in the internal packages.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ashirpar/clubserver/internal/config"
	"github.com/ashirpar/clubserver/internal/repository"
	"github.com/ashirpar/clubserver/internal/repository/mongodb"
	"github.com/ashirpar/clubserver/internal/repository/sqlite"
	"github.com/ashirpar/clubserver/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// Logging is not configured yet, so a bootstrap logger reports load errors.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	logger := newLogger(cfg.LogLevel)

	// === 3. OPEN THE STORE ===
	// One client for the process lifetime, handed to the server which
	// closes it on shutdown.
	store, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store",
			slog.String("driver", cfg.StoreDriver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 4. CREATE AND START THE SERVER ===
	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Environment:    cfg.Environment,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins(),
		StoreName:      cfg.StoreDriver,
	}, store, logger)
	if err != nil {
		store.Close()
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLogger builds a text logger; an unknown level falls back to info.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func openStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return db, nil

	case config.DriverMongo:
		// Connects lazily; the server's startup probe pings it and creates
		// the indexes.
		store, err := mongodb.New(cfg.MongoConnString(), cfg.DBName)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
