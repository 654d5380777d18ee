package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/tmorrell/taskboard-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		wantIs   error
		wantSame bool
	}{
		{
			name:   "no_rows_maps_to_not_found",
			input:  sql.ErrNoRows,
			wantIs: store.ErrNotFound,
		},
		{
			name:   "unique_violation_maps_to_duplicate",
			input:  &pgconn.PgError{Code: "23505", ConstraintName: "tasks_pkey"},
			wantIs: store.ErrDuplicate,
		},
		{
			name:   "foreign_key_violation_maps_to_invalid_entity",
			input:  &pgconn.PgError{Code: "23503", ConstraintName: "tasks_owner_fkey"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "check_violation_maps_to_invalid_entity",
			input:  &pgconn.PgError{Code: "23514", ConstraintName: "tasks_priority_check"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "not_null_violation_maps_to_invalid_entity",
			input:  &pgconn.PgError{Code: "23502", ColumnName: "title"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:     "unrecognized_error_passes_through",
			input:    errors.New("connection reset by peer"),
			wantSame: true,
		},
		{
			name:     "unrecognized_pg_code_passes_through",
			input:    &pgconn.PgError{Code: "57P01"},
			wantSame: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.input)

			if tc.wantSame {
				assert.Equal(t, tc.input, got)
				return
			}

			assert.ErrorIs(t, got, tc.wantIs)
			assert.Contains(t, got.Error(), tc.wantIs.Error())
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))
}

func TestMapError_WrappedInput(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("query failed: %w", &pgconn.PgError{Code: "23505"})
	got := MapError(wrapped)

	assert.ErrorIs(t, got, store.ErrDuplicate)
}
