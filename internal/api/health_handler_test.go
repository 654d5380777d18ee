package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockPinger is a function-backed Pinger for probe tests.
type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func newHealthHandler(p Pinger) *HealthHandler {
	return NewHealthHandler(p, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	h := newHealthHandler(&mockPinger{
		pingFn: func(ctx context.Context) error {
			t.Fatal("liveness must not touch the database")
			return nil
		},
	})

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	t.Run("database_reachable", func(t *testing.T) {
		t.Parallel()

		h := newHealthHandler(&mockPinger{})

		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("database_unreachable", func(t *testing.T) {
		t.Parallel()

		h := newHealthHandler(&mockPinger{
			pingFn: func(ctx context.Context) error {
				return errors.New("connection refused")
			},
		})

		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("probe_gets_deadline", func(t *testing.T) {
		t.Parallel()

		var hadDeadline bool
		h := newHealthHandler(&mockPinger{
			pingFn: func(ctx context.Context) error {
				_, hadDeadline = ctx.Deadline()
				return nil
			},
		})

		h.Ready(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.True(t, hadDeadline, "readiness probe must be bounded by a timeout")
	})
}
