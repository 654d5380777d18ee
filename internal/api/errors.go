package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tmorrell/taskboard-api/internal/domain"
	"github.com/tmorrell/taskboard-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors (storage uniqueness violations)
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrEmptyUpdate),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound), errors.Is(err, store.ErrNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Task already exists"

	case errors.Is(err, store.ErrEmptyUpdate):
		return "Update must specify at least one field"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	case errors.Is(err, domain.ErrInvalidPriority):
		return "Priority must be one of: low, medium, high"

	case errors.Is(err, domain.ErrTaskTitleEmpty):
		return "Task title cannot be empty"

	case errors.Is(err, domain.ErrTaskTitleTooLong):
		return fmt.Sprintf("Task title cannot exceed %d characters", domain.TitleMaxLength)

	case errors.Is(err, domain.ErrTaskDescriptionTooLong):
		return fmt.Sprintf("Task description cannot exceed %d characters", domain.DescriptionMaxLength)

	case errors.Is(err, domain.ErrInvalidID):
		return "Task ID must be a positive integer"

	default:
		return "An unexpected error occurred"
	}
}

// ValidationDetails converts a validator error into per-field messages
// suitable for the details array of the error envelope. Non-validator errors
// yield a single generic entry.
func ValidationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"request body failed validation"}
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldMessage(fe))
	}
	return details
}

// fieldMessage renders one validation failure as "field: message".
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
