// Package main implements the entry point for the category API server,
// a JSON-over-HTTP service for creating, reading, renaming and deleting
// categories.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/category-api/internal/config"
	"github.com/phrazzld/category-api/internal/platform/logger"
	"github.com/phrazzld/category-api/internal/redact"
)

// main is the entry point for the category-api server.
func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("category-api exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run parses flags, loads configuration and either executes a migration
// command or serves HTTP until ctx is canceled or a shutdown signal arrives.
func run(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("category-api", flag.ContinueOnError)
	migrateCmd := flags.String("migrate", "",
		"run a database migration command (up, down, status, version, reset) and exit")
	configDir := flags.String("config-dir", ".", "directory containing config.yaml and .env")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadFrom(*configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_configured", cfg.UsesDatabase(),
		"event_workers", cfg.Events.Workers)

	if *migrateCmd != "" {
		return runMigrationCommand(ctx, cfg, l, *migrateCmd)
	}

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
