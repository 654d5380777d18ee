package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmorrell/taskboard-api/internal/store"
)

// TestErrorDefinitions ensures that the error definitions in the store
// package are defined as expected and can be used with errors.Is.
func TestErrorDefinitions(t *testing.T) {
	t.Parallel()

	t.Run("ErrTaskNotFound", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("get failed: %w", store.ErrTaskNotFound)

		assert.True(t, errors.Is(err, store.ErrTaskNotFound))
		assert.True(t, errors.Is(err, store.ErrNotFound),
			"entity-specific not found errors must match the generic ErrNotFound")
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("ErrDuplicate", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("insert failed: %w", store.ErrDuplicate)

		assert.True(t, errors.Is(err, store.ErrDuplicate))
		assert.False(t, errors.Is(err, store.ErrNotFound))
		assert.False(t, store.IsNotFoundError(err))
	})

	t.Run("ErrEmptyUpdate", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "update must specify at least one field", store.ErrEmptyUpdate.Error())
	})
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := store.NewStoreError("task", "list", "query failed", cause)

	assert.Contains(t, err.Error(), "list operation on task failed")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause), "StoreError must unwrap to its cause")
}

func TestTaskUpdateIsEmpty(t *testing.T) {
	t.Parallel()

	title := "new title"
	completed := true

	tests := []struct {
		name   string
		update store.TaskUpdate
		want   bool
	}{
		{name: "zero_value_is_empty", update: store.TaskUpdate{}, want: true},
		{name: "title_set", update: store.TaskUpdate{Title: &title}, want: false},
		{name: "completed_set", update: store.TaskUpdate{Completed: &completed}, want: false},
		{name: "clear_description_only", update: store.TaskUpdate{ClearDescription: true}, want: false},
		{name: "clear_due_date_only", update: store.TaskUpdate{ClearDueDate: true}, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.update.IsEmpty())
		})
	}
}

func TestListParamsOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, store.ListParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, store.ListParams{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 8, store.ListParams{Page: 5, Limit: 2}.Offset())
}
