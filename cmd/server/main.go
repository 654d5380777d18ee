// Package main implements the entry point for the taskboard API server,
// a REST CRUD service for tasks backed by PostgreSQL.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/tmorrell/taskboard-api/internal/config"
	"github.com/tmorrell/taskboard-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up|down|status) and exit")
	migrationsDir := flag.String("migrations-dir", "migrations",
		"directory containing goose migration files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to set up database", "error", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		if err := runMigrations(db, *migrateCmd, *migrationsDir); err != nil {
			appLogger.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		appLogger.Info("Migration completed", "command", *migrateCmd)
		return
	}

	app := newApplication(cfg, appLogger, db)
	if err := app.Run(context.Background()); err != nil {
		appLogger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
