package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/category-api/internal/config"
	"github.com/phrazzld/category-api/internal/platform/postgres/migrations"
)

// runMigrationCommand executes a goose command against the configured
// database and returns. It is selected with the -migrate flag.
func runMigrationCommand(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	if !cfg.UsesDatabase() {
		return fmt.Errorf("migration %q requires database.url to be configured", command)
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	return migrations.Run(ctx, db, command, logger)
}
