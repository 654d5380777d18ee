// Package api provides HTTP handlers for the API.
package api

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tmorrell/taskboard-api/internal/api/shared"
	"github.com/tmorrell/taskboard-api/internal/domain"
	"github.com/tmorrell/taskboard-api/internal/platform/logger"
	"github.com/tmorrell/taskboard-api/internal/store"
)

// Pagination bounds applied to GET /tasks query parameters. Values that fail
// to parse or fall outside the bounds are clamped to the defaults rather than
// rejected.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	// maxPage keeps page*limit within int32 range so the row offset computed
	// from it cannot overflow into a negative value.
	maxPage = math.MaxInt32 / maxLimit
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests.
// It parses filter and pagination query parameters, fetches one page of
// matching tasks plus the total match count, and returns the pagination
// envelope.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	params := store.ListParams{
		Page:  parsePositiveInt(r.URL.Query().Get("page"), defaultPage, maxPage),
		Limit: parsePositiveInt(r.URL.Query().Get("limit"), defaultLimit, maxLimit),
	}

	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority, err := domain.ParsePriority(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid priority filter", GetSafeErrorMessage(err))
			return
		}
		params.Filter.Priority = &priority
	}

	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid completed filter", "completed must be true or false")
			return
		}
		params.Filter.Completed = &completed
	}

	params.Filter.Search = r.URL.Query().Get("search")

	page, err := h.taskStore.List(r.Context(), params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			"Failed to list tasks", err)
		return
	}

	tasks := make([]TaskResponse, 0, len(page.Tasks))
	for _, task := range page.Tasks {
		tasks = append(tasks, taskToResponse(task))
	}

	log.Debug("tasks listed",
		slog.Int("count", len(tasks)),
		slog.Int("total", page.Total),
		slog.Int("page", params.Page))

	shared.RespondWithJSON(w, r, http.StatusOK, ListTasksResponse{
		Tasks: tasks,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: page.Total,
			Pages: pageCount(page.Total, params.Limit),
		},
	})
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskIDFromPath(w, r)
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Validation error", ValidationDetails(err)...)
		return
	}

	task, err := domain.NewTask(req.Title, req.Description, domain.Priority(req.Priority), req.DueDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Validation error", GetSafeErrorMessage(err))
		return
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			"Failed to create task", err)
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id} requests.
// It applies a partial update; a body specifying no recognized fields is
// rejected.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.taskIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.IsEmpty() {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Update must specify at least one field")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Validation error", ValidationDetails(err)...)
		return
	}

	task, err := h.taskStore.Update(r.Context(), id, req.toStoreUpdate())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task updated", slog.Int64("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.taskIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ToggleComplete handles PATCH /tasks/{id}/complete requests.
// With a {"completed": bool} body the flag is set to that value; with an
// empty body the stored value is flipped.
func (h *TaskHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.taskIDFromPath(w, r)
	if !ok {
		return
	}

	var req ToggleCompleteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	task, err := h.taskStore.SetCompleted(r.Context(), id, req.Completed)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task completion toggled",
		slog.Int64("task_id", id),
		slog.Bool("completed", task.Completed))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// taskIDFromPath extracts and validates the {id} path parameter. On failure it
// writes a 400 response and returns ok=false.
func (h *TaskHandler) taskIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err),
			"Invalid task ID", "id must be a positive integer")
		return 0, false
	}

	return id, true
}

// parseTaskID parses a task ID path parameter.
// Returns an error wrapping domain.ErrInvalidID if the value is not a
// positive integer.
func parseTaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}
	return id, nil
}

// parsePositiveInt parses a pagination query parameter, clamping missing,
// malformed, and non-positive values to fallback. A non-zero max additionally
// caps the result.
func parsePositiveInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// pageCount computes ceil(total/limit).
func pageCount(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
