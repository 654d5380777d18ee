package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmorrell/taskboard-api/internal/domain"
	"github.com/tmorrell/taskboard-api/internal/store"
)

// fakeScanner feeds canned column values to scanTask through the rowScanner
// interface.
type fakeScanner struct {
	values []any
	err    error
}

func (f *fakeScanner) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = f.values[i].(int64)
		case *string:
			*v = f.values[i].(string)
		case *bool:
			*v = f.values[i].(bool)
		case *time.Time:
			*v = f.values[i].(time.Time)
		default:
			// sql.NullString / sql.NullTime implement sql.Scanner.
			if scanner, ok := d.(interface{ Scan(any) error }); ok {
				if err := scanner.Scan(f.values[i]); err != nil {
					return err
				}
				continue
			}
			return errors.New("unsupported destination type in fakeScanner")
		}
	}
	return nil
}

func TestScanTask(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	t.Run("all_columns_populated", func(t *testing.T) {
		t.Parallel()

		due := created.Add(48 * time.Hour)
		row := &fakeScanner{values: []any{
			int64(7), "Quarterly report", "write it", "high", due, false, created, updated,
		}}

		task, err := scanTask(row)
		require.NoError(t, err)

		assert.Equal(t, int64(7), task.ID)
		assert.Equal(t, "Quarterly report", task.Title)
		require.NotNil(t, task.Description)
		assert.Equal(t, "write it", *task.Description)
		assert.Equal(t, domain.PriorityHigh, task.Priority)
		require.NotNil(t, task.DueDate)
		assert.True(t, task.DueDate.Equal(due))
		assert.False(t, task.Completed)
		assert.True(t, task.CreatedAt.Equal(created))
		assert.True(t, task.UpdatedAt.Equal(updated))
	})

	t.Run("null_description_and_due_date", func(t *testing.T) {
		t.Parallel()

		row := &fakeScanner{values: []any{
			int64(8), "Task", nil, "medium", nil, true, created, created,
		}}

		task, err := scanTask(row)
		require.NoError(t, err)

		assert.Nil(t, task.Description)
		assert.Nil(t, task.DueDate)
		assert.True(t, task.Completed)
	})

	t.Run("scan_error_propagates", func(t *testing.T) {
		t.Parallel()

		row := &fakeScanner{err: errors.New("bad row")}

		task, err := scanTask(row)
		assert.Error(t, err)
		assert.Nil(t, task)
	})
}

func TestNewPostgresTaskStore_NilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewPostgresTaskStore(nil, nil)
	})
}

func TestStoreErr(t *testing.T) {
	t.Parallel()

	t.Run("classifies_driver_error_and_keeps_sentinel_reachable", func(t *testing.T) {
		t.Parallel()

		err := storeErr("create", "insert failed",
			&pgconn.PgError{Code: "23505", ConstraintName: "tasks_pkey"})

		assert.ErrorIs(t, err, store.ErrDuplicate)

		var serr *store.StoreError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "task", serr.Entity)
		assert.Equal(t, "create", serr.Operation)
		assert.Contains(t, err.Error(), "create operation on task failed")
	})

	t.Run("unknown_error_passes_through_unwrap", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		err := storeErr("list", "query failed", cause)

		assert.ErrorIs(t, err, cause)
	})
}
