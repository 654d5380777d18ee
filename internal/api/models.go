package api

import (
	"encoding/json"
	"time"

	"github.com/tmorrell/taskboard-api/internal/domain"
	"github.com/tmorrell/taskboard-api/internal/store"
)

// CreateTaskRequest is the body for POST /tasks.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
}

// UpdateTaskRequest is the body for PUT /tasks/{id}. Fields left out of the
// body stay unchanged; an explicit null clears the nullable fields
// (description, dueDate). Presence is tracked by the custom unmarshaller so
// "absent" and "null" can be told apart.
type UpdateTaskRequest struct {
	Title            *string    `validate:"omitempty,min=1,max=255"`
	Description      *string    `validate:"omitempty,max=1000"`
	ClearDescription bool       `validate:"-"`
	Priority         *string    `validate:"omitempty,oneof=low medium high"`
	DueDate          *time.Time `validate:"-"`
	ClearDueDate     bool       `validate:"-"`
	Completed        *bool      `validate:"-"`
}

// UnmarshalJSON implements json.Unmarshaler, distinguishing absent fields
// from explicit nulls.
func (u *UpdateTaskRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["title"]; ok {
		if err := json.Unmarshal(raw, &u.Title); err != nil {
			return err
		}
	}
	if raw, ok := fields["description"]; ok {
		if isJSONNull(raw) {
			u.ClearDescription = true
		} else if err := json.Unmarshal(raw, &u.Description); err != nil {
			return err
		}
	}
	if raw, ok := fields["priority"]; ok {
		if err := json.Unmarshal(raw, &u.Priority); err != nil {
			return err
		}
	}
	if raw, ok := fields["dueDate"]; ok {
		if isJSONNull(raw) {
			u.ClearDueDate = true
		} else if err := json.Unmarshal(raw, &u.DueDate); err != nil {
			return err
		}
	}
	if raw, ok := fields["completed"]; ok {
		if err := json.Unmarshal(raw, &u.Completed); err != nil {
			return err
		}
	}

	return nil
}

// IsEmpty reports whether the request carries no recognized fields.
func (u UpdateTaskRequest) IsEmpty() bool {
	return u.toStoreUpdate().IsEmpty()
}

// toStoreUpdate converts the request into the store's update description.
func (u UpdateTaskRequest) toStoreUpdate() store.TaskUpdate {
	update := store.TaskUpdate{
		Title:            u.Title,
		Description:      u.Description,
		ClearDescription: u.ClearDescription,
		DueDate:          u.DueDate,
		ClearDueDate:     u.ClearDueDate,
		Completed:        u.Completed,
	}
	if u.Priority != nil {
		p := domain.Priority(*u.Priority)
		update.Priority = &p
	}
	return update
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// ToggleCompleteRequest is the optional body for PATCH /tasks/{id}/complete.
// When Completed is nil the stored value is flipped.
type ToggleCompleteRequest struct {
	Completed *bool `json:"completed"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Pagination describes the page position within the full matching set.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListTasksResponse is the envelope returned by GET /tasks.
type ListTasksResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Pagination Pagination     `json:"pagination"`
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
