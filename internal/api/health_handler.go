package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmorrell/taskboard-api/internal/api/shared"
	"github.com/tmorrell/taskboard-api/internal/platform/logger"
)

// pingTimeout bounds the database probe issued by the readiness check.
const pingTimeout = 2 * time.Second

// Pinger probes the storage backend. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthStatus is the body returned by the health endpoints.
type HealthStatus struct {
	Status string `json:"status"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	pinger Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pinger Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for HealthHandler")
	}

	return &HealthHandler{
		pinger: pinger,
		logger: logger.With(slog.String("component", "health_handler")),
	}
}

// Live handles GET /health/live requests. It reports 200 whenever the process
// is serving, without touching any dependency.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthStatus{Status: "ok"})
}

// Ready handles GET /health and GET /health/ready requests. It probes the
// database with a short timeout and reports 503 when the probe fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.pinger.PingContext(ctx); err != nil {
		log.Error("readiness probe failed", "error", err)
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable,
			HealthStatus{Status: "unavailable"})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthStatus{Status: "ok"})
}
