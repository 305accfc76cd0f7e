package repository

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewInventoryLedger(pool))
	assert.NotNil(t, NewTicketRepository(pool))
	assert.NotNil(t, NewOrderRepository(pool))
	assert.NotNil(t, NewEventRepository(pool))
	assert.NotNil(t, NewVenueRepository(pool))
	assert.NotNil(t, NewUserRepository(pool))
}

func TestMapError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: domain.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: domain.ErrNotFound},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: domain.ErrTransactionAborted},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: domain.ErrTransactionAborted},
		{name: "lock timeout", err: &pgconn.PgError{Code: "55P03"}, want: domain.ErrTransactionAborted},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: domain.ErrConflict},
		{name: "check violation", err: &pgconn.PgError{Code: "23514", ConstraintName: "tickets_available_check"}, want: domain.ErrConflict},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: domain.ErrInvalidRequest},
		{name: "numeric overflow", err: &pgconn.PgError{Code: "22003", Message: "numeric field overflow"}, want: domain.ErrInvalidRequest},
		{name: "domain error passes through", err: domain.ErrInsufficientInventory, want: domain.ErrInsufficientInventory},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(mapError(tc.err), tc.want))
		})
	}

	assert.Nil(t, mapError(nil))
	other := errors.New("boom")
	assert.Equal(t, other, mapError(other))
}

func TestSchema_ColumnTypes(t *testing.T) {
	schema, err := os.ReadFile("../../migrations/001_init.sql")
	require.NoError(t, err)

	assert.Regexp(t, `(?m)^\s*date\s+TIMESTAMPTZ NOT NULL`, string(schema))
	assert.Regexp(t, `(?m)^\s*total_price\s+NUMERIC\(20, 2\) NOT NULL`, string(schema))
	assert.Contains(t, string(schema), "CHECK (available_quantity >= 0 AND available_quantity <= quantity)")
}
