package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tmorrell/taskboard-api/internal/domain"
	"github.com/tmorrell/taskboard-api/internal/platform/logger"
	"github.com/tmorrell/taskboard-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// storeErr classifies a driver error into the store sentinels and wraps it
// with the failed entity and operation for logging. The sentinel stays
// reachable through errors.Is.
func storeErr(operation, message string, err error) error {
	return store.NewStoreError("task", operation, message, MapError(err))
}

// Create implements store.TaskStore.Create
// It inserts the task and fills in the storage-assigned ID.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (title, description, priority, due_date, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Priority),
		task.DueDate,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)

	if err != nil {
		log.Error("failed to create task", "error", err)
		return storeErr("create", "insert failed", err)
	}

	log.Debug("task created", "task_id", task.ID)
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task", "task_id", id, "error", err)
		return nil, storeErr("get", "query failed", err)
	}

	return task, nil
}

// List implements store.TaskStore.List
// It renders a data query and a count query from the same predicate sequence,
// executes both, and returns the page together with the total match count.
func (s *PostgresTaskStore) List(ctx context.Context, params store.ListParams) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	builder := newTaskQueryBuilder(params.Filter)

	dataQuery, dataArgs := builder.SelectQuery(params.Limit, params.Offset())
	rows, err := s.db.QueryContext(ctx, dataQuery, dataArgs...)
	if err != nil {
		log.Error("failed to query tasks", "error", err)
		return nil, storeErr("list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0, params.Limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", "error", err)
			return nil, storeErr("list", "row scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", "error", err)
		return nil, storeErr("list", "row iteration failed", err)
	}

	countQuery, countArgs := builder.CountQuery()
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count tasks", "error", err)
		return nil, storeErr("list", "count failed", err)
	}

	return &store.TaskPage{Tasks: tasks, Total: total}, nil
}

// Update implements store.TaskStore.Update
// It assembles a SET clause covering only the supplied fields, always
// refreshing updated_at. Returns store.ErrEmptyUpdate when no fields are set
// and store.ErrTaskNotFound when the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, update store.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsEmpty() {
		return nil, store.ErrEmptyUpdate
	}

	var sets []string
	var args []any

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	switch {
	case update.Description != nil:
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	case update.ClearDescription:
		sets = append(sets, "description = NULL")
	}
	if update.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*update.Priority))
	}
	switch {
	case update.DueDate != nil:
		sets = append(sets, "due_date = ?")
		args = append(args, *update.DueDate)
	case update.ClearDueDate:
		sets = append(sets, "due_date = NULL")
	}
	if update.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *update.Completed)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") +
		" WHERE id = ? RETURNING " + taskColumns
	args = append(args, id)

	task, err := scanTask(s.db.QueryRowContext(ctx, numberPlaceholders(query), args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task", "task_id", id, "error", err)
		return nil, storeErr("update", "query failed", err)
	}

	log.Debug("task updated", "task_id", id)
	return task, nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if no row was deleted.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task", "task_id", id, "error", err)
		return storeErr("delete", "exec failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeErr("delete", "rows affected unavailable", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task deleted", "task_id", id)
	return nil
}

// SetCompleted implements store.TaskStore.SetCompleted
// A nil completed flips the stored value; a non-nil completed sets it.
func (s *PostgresTaskStore) SetCompleted(ctx context.Context, id int64, completed *bool) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row rowScanner
	if completed != nil {
		query := `
			UPDATE tasks SET completed = $1, updated_at = $2
			WHERE id = $3
			RETURNING ` + taskColumns
		row = s.db.QueryRowContext(ctx, query, *completed, time.Now().UTC(), id)
	} else {
		query := `
			UPDATE tasks SET completed = NOT completed, updated_at = $1
			WHERE id = $2
			RETURNING ` + taskColumns
		row = s.db.QueryRowContext(ctx, query, time.Now().UTC(), id)
	}

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to set task completion", "task_id", id, "error", err)
		return nil, storeErr("toggle", "query failed", err)
	}

	log.Debug("task completion updated", "task_id", id, "completed", task.Completed)
	return task, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans one task row in taskColumns order, converting nullable
// columns to pointer fields.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		priority    string
		dueDate     sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&priority,
		&dueDate,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	if description.Valid {
		task.Description = &description.String
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}

	return &task, nil
}
