package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tmorrell/taskboard-api/internal/api"
	apiMiddleware "github.com/tmorrell/taskboard-api/internal/api/middleware"
	"github.com/tmorrell/taskboard-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	healthHandler := api.NewHealthHandler(app.pinger, app.logger)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/{id}", taskHandler.GetTask)
		r.Put("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
		r.Patch("/{id}/complete", taskHandler.ToggleComplete)
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Ready)
		r.Get("/ready", healthHandler.Ready)
		r.Get("/live", healthHandler.Live)
	})

	// Unmatched routes get the standard error envelope.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
