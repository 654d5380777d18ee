package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmorrell/taskboard-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	description := "write the quarterly report"
	dueDate := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		title       string
		description *string
		priority    domain.Priority
		dueDate     *time.Time
		wantErr     error
	}{
		{
			name:        "valid_task_with_all_fields",
			title:       "Quarterly report",
			description: &description,
			priority:    domain.PriorityHigh,
			dueDate:     &dueDate,
		},
		{
			name:  "minimal_task_defaults_to_medium_priority",
			title: "Buy groceries",
		},
		{
			name:    "empty_title_rejected",
			title:   "",
			wantErr: domain.ErrTaskTitleEmpty,
		},
		{
			name:    "title_at_maximum_length_accepted",
			title:   strings.Repeat("a", domain.TitleMaxLength),
			wantErr: nil,
		},
		{
			name:    "title_over_maximum_length_rejected",
			title:   strings.Repeat("a", domain.TitleMaxLength+1),
			wantErr: domain.ErrTaskTitleTooLong,
		},
		{
			name:        "description_over_maximum_length_rejected",
			title:       "Task",
			description: ptr(strings.Repeat("d", domain.DescriptionMaxLength+1)),
			wantErr:     domain.ErrTaskDescriptionTooLong,
		},
		{
			name:        "description_at_maximum_length_accepted",
			title:       "Task",
			description: ptr(strings.Repeat("d", domain.DescriptionMaxLength)),
		},
		{
			// 255 three-byte runes is 765 bytes but still within the limit;
			// lengths count characters, not bytes.
			name:  "multibyte_title_at_maximum_length_accepted",
			title: strings.Repeat("任", domain.TitleMaxLength),
		},
		{
			name:    "multibyte_title_over_maximum_length_rejected",
			title:   strings.Repeat("任", domain.TitleMaxLength+1),
			wantErr: domain.ErrTaskTitleTooLong,
		},
		{
			name:        "multibyte_description_at_maximum_length_accepted",
			title:       "Task",
			description: ptr(strings.Repeat("務", domain.DescriptionMaxLength)),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			task, err := domain.NewTask(tc.title, tc.description, tc.priority, tc.dueDate)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Nil(t, task)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, task)
			assert.Equal(t, tc.title, task.Title)
			assert.False(t, task.Completed)
			assert.False(t, task.CreatedAt.IsZero())
			assert.False(t, task.UpdatedAt.Before(task.CreatedAt),
				"updatedAt must never precede createdAt")

			if tc.priority == "" {
				assert.Equal(t, domain.PriorityMedium, task.Priority)
			} else {
				assert.Equal(t, tc.priority, task.Priority)
			}
		})
	}
}

func TestNewTask_InvalidPriority(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask("Task", nil, domain.Priority("urgent"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	assert.Nil(t, task)
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    domain.Priority
		wantErr bool
	}{
		{input: "low", want: domain.PriorityLow},
		{input: "medium", want: domain.PriorityMedium},
		{input: "high", want: domain.PriorityHigh},
		{input: "urgent", wantErr: true},
		{input: "HIGH", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("input_"+tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := domain.ParsePriority(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
