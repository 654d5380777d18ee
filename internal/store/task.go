package store

import (
	"context"
	"time"

	"github.com/tmorrell/taskboard-api/internal/domain"
)

// TaskFilter holds the optional criteria for listing tasks. Nil pointers and
// empty strings mean the corresponding filter is not applied, so a zero
// TaskFilter matches every row.
type TaskFilter struct {
	// Priority restricts results to tasks with an exact priority match.
	Priority *domain.Priority

	// Completed restricts results to tasks with the given completion state.
	Completed *bool

	// Search restricts results to tasks whose title or description contains
	// the string, case-insensitively.
	Search string
}

// ListParams bundles filtering and pagination inputs for List. Page and Limit
// must already be clamped to positive values by the caller.
type ListParams struct {
	Page   int
	Limit  int
	Filter TaskFilter
}

// Offset returns the number of rows to skip for the requested page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TaskPage is one page of list results. Total counts every row matching the
// filter, not just the rows on this page.
type TaskPage struct {
	Tasks []*domain.Task
	Total int
}

// TaskUpdate describes a partial update. Nil pointer fields are left
// unchanged; ClearDescription and ClearDueDate set the corresponding nullable
// columns to NULL.
type TaskUpdate struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Priority         *domain.Priority
	DueDate          *time.Time
	ClearDueDate     bool
	Completed        *bool
}

// IsEmpty reports whether the update specifies no changes at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil && !u.ClearDescription &&
		u.Priority == nil &&
		u.DueDate == nil && !u.ClearDueDate &&
		u.Completed == nil
}

// TaskStore defines the persistence operations for tasks.
type TaskStore interface {
	// Create inserts a new task and fills in the storage-assigned ID and
	// timestamps on the given entity.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if no task with the ID exists.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns one page of tasks matching the filter, newest first,
	// together with the total number of matching rows.
	List(ctx context.Context, params ListParams) (*TaskPage, error)

	// Update applies a partial update and returns the updated task.
	// Returns ErrEmptyUpdate when the update specifies no fields and
	// ErrTaskNotFound when the task does not exist.
	Update(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error)

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if no task with the ID exists.
	Delete(ctx context.Context, id int64) error

	// SetCompleted sets the completion flag to the given value, or flips the
	// current value when completed is nil. Returns the updated task, or
	// ErrTaskNotFound when the task does not exist.
	SetCompleted(ctx context.Context, id int64, completed *bool) (*domain.Task, error)
}
