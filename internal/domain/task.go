package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Task validation constraints.
const (
	// TitleMaxLength is the maximum number of characters allowed in a task title.
	TitleMaxLength = 255

	// DescriptionMaxLength is the maximum number of characters allowed in a task description.
	DescriptionMaxLength = 1000
)

// Task-specific validation errors
var (
	// ErrTaskTitleEmpty is returned when a task title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskTitleTooLong is returned when a task title exceeds TitleMaxLength.
	ErrTaskTitleTooLong = fmt.Errorf("task title cannot exceed %d characters", TitleMaxLength)

	// ErrTaskDescriptionTooLong is returned when a task description exceeds DescriptionMaxLength.
	ErrTaskDescriptionTooLong = fmt.Errorf(
		"task description cannot exceed %d characters",
		DescriptionMaxLength,
	)

	// ErrInvalidPriority is returned when a priority value is not one of low, medium, high.
	ErrInvalidPriority = errors.New("priority must be one of: low, medium, high")
)

// Priority represents the urgency level of a task.
type Priority string

// Valid priority values.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority converts a string into a Priority.
// Returns ErrInvalidPriority if the value is not a known priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidPriority, s)
	}
}

// IsValid reports whether the priority is one of the known values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single to-do item. Description and DueDate are optional
// and map to nullable columns in storage.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask creates a new Task with the given title, optional description,
// priority, and optional due date. The ID is assigned by storage on insert;
// timestamps are set here so the entity is valid before persistence.
// Returns an error if validation fails.
func NewTask(title string, description *string, priority Priority, dueDate *time.Time) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data. Length limits count characters,
// not bytes, matching the column definitions in storage.
// Returns an error wrapping ErrValidation if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrTaskTitleEmpty)
	}

	if utf8.RuneCountInString(t.Title) > TitleMaxLength {
		return fmt.Errorf("%w: %w", ErrValidation, ErrTaskTitleTooLong)
	}

	if t.Description != nil && utf8.RuneCountInString(*t.Description) > DescriptionMaxLength {
		return fmt.Errorf("%w: %w", ErrValidation, ErrTaskDescriptionTooLong)
	}

	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %w: got %q", ErrValidation, ErrInvalidPriority, t.Priority)
	}

	return nil
}
