package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance backed by sqlmock.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })
	return sqlxDB, mock
}

func TestDBTX_SatisfiedByDBAndTx(t *testing.T) {
	var _ DBTX = (*sqlx.DB)(nil)
	var _ DBTX = (*sqlx.Tx)(nil)

	db, mock := setupTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)
	ctx := context.WithValue(context.Background(), TransactionContextKey, tx)
	assert.Same(t, tx, GetExecutor(ctx, db))
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.Join(errors.New("wrapped"), &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestTransactionManager_Commit(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		exec := GetExecutor(ctx, db)
		_, isTx := exec.(*sqlx.Tx)
		assert.True(t, isTx, "executor inside the transaction should be the tx")
		_, err := exec.ExecContext(ctx, `UPDATE users SET name = 'x'`)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)
	wantErr := errors.New("insert failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.WithTransaction(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_NestedReusesOuterTx(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return tm.WithTransaction(ctx, func(inner context.Context) error {
			assert.Equal(t, ctx.Value(TransactionContextKey), inner.Value(TransactionContextKey))
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_WithoutTx(t *testing.T) {
	db, _ := setupTestDB(t)
	assert.Equal(t, DBTX(db), GetExecutor(context.Background(), db))
}
