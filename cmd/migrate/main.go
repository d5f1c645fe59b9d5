package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"careergenie-backend/internal/shared/config"
	"careergenie-backend/internal/shared/storage/db"
	"careergenie-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init("careergenie-migrate", cfg.IsDev())
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		telemetry.Error("migrate.no_database_url", nil)
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}
