package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrorResponse defines the standard error response structure. Details carries
// per-field validation messages on 400 responses and is omitted otherwise.
type ErrorResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"statusCode"`
	Timestamp  time.Time `json:"timestamp"`
	Path       string    `json:"path"`
	Method     string    `json:"method"`
	Details    []string  `json:"details,omitempty"`
	TraceID    string    `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code,
// message, and optional per-field details. It also sets the TraceID from the
// request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, details ...string) {
	traceID := GetTraceID(r.Context())

	errorResponse := ErrorResponse{
		Error:      message,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
		Path:       r.URL.Path,
		Method:     r.Method,
		Details:    details,
		TraceID:    traceID,
	}

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, errorResponse)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the
// detailed error. The full error only ever reaches the logs; the client sees
// the sanitized userMessage.
//
// Log level strategy: 5xx at ERROR, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	errorResponse := ErrorResponse{
		Error:      userMessage,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
		Path:       r.URL.Path,
		Method:     r.Method,
		TraceID:    traceID,
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, errorResponse)
}
