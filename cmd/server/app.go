package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tmorrell/taskboard-api/internal/api"
	"github.com/tmorrell/taskboard-api/internal/config"
	"github.com/tmorrell/taskboard-api/internal/platform/postgres"
	"github.com/tmorrell/taskboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore

	// pinger backs the readiness probe; it is the database connection in
	// production and a stub in router tests.
	pinger api.Pinger
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	return &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		taskStore: postgres.NewPostgresTaskStore(db, logger),
		pinger:    db,
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
