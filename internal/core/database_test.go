// AngelaMos | 2026
// database_test.go

package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestInTx_Commit(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM samples`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := InTx(context.Background(), db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(context.Background(), `DELETE FROM samples`)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_Rollback(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	failure := errors.New("not a data entry user")
	err := InTx(context.Background(), db, func(*sqlx.Tx) error {
		return failure
	})
	assert.ErrorIs(t, err, failure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_BeginFails(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	called := false
	err := InTx(context.Background(), db, func(*sqlx.Tx) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestIsDuplicateKeyError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}

	assert.True(t, IsDuplicateKeyError(dup))
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("insert: %w", dup)))
	assert.False(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateKeyError(errors.New("23505")))
	assert.False(t, IsDuplicateKeyError(nil))
}

func TestIsForeignKeyError(t *testing.T) {
	assert.True(t, IsForeignKeyError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, IsForeignKeyError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyError(nil))
}

func TestJitteredDuration(t *testing.T) {
	base := 7 * time.Minute
	for range 20 {
		got := jitteredDuration(base)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, base+base/7)
	}
	assert.Equal(t, time.Duration(0), jitteredDuration(0))
}
