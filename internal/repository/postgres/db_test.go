package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockDB wraps a sqlmock connection. Every expectation must be met by the end of
// the test.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		raw.Close()
	})
	return Wrap(sqlx.NewDb(raw, "sqlmock"), 2), mock
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil, "x"))
	assert.ErrorIs(t, mapError(sql.ErrNoRows, "order 1"), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("wrapped: %w", sql.ErrNoRows), "order 1"), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(&pq.Error{Code: "23505"}, "item"), domain.ErrConflict)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23505"}, "item"), domain.ErrConflict)

	other := errors.New("connection reset")
	err := mapError(other, "item")
	assert.ErrorIs(t, err, other)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.EqualError(t, err, "item: connection reset")
}

type fakeResult struct{ n int64 }

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.n, nil }

func TestExpectAffected(t *testing.T) {
	assert.NoError(t, expectAffected(fakeResult{n: 1}, "order 1"))
	assert.ErrorIs(t, expectAffected(fakeResult{n: 0}, "order 1"), domain.ErrNotFound)
}

func TestSchemaCoversTables(t *testing.T) {
	joined := ""
	for _, s := range schemaStatements {
		joined += s
	}
	for _, table := range []string{
		"inventory_items", "orders", "intelligence_signals", "recommendations",
		"food_waste", "weather_readings", "events", "sales",
	} {
		assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, joined, "ADD COLUMN IF NOT EXISTS trend")
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := db.WithTx(context.Background(), func(tx *sqlx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)

	mock.ExpectBegin()
	mock.ExpectCommit()
	assert.NoError(t, db.WithTx(context.Background(), func(tx *sqlx.Tx) error { return nil }))
}
