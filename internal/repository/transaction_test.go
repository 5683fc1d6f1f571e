package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB pins the pool to a single connection. A query that escapes an open
// transaction then has no connection to run on, so the test times out instead
// of silently reading stale data.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return gdb, mock
}

func transactionRow(status model.TrxStatus, reference string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "trx_id", "trx_type", "amount", "ccy", "status",
		"reference_id", "flow_no", "created_at", "updated_at", "completed_at",
	}).AddRow(
		1, "T1", "PAYOUT", "2500", "INR", string(status),
		reference, reference, now, now, now,
	)
}

func runInsideTx(t *testing.T, fn func() error) error {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("transition did not finish inside the managed transaction")
		return nil
	}
}

func TestTransitionInsideManagedTx(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the post-transition record", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewTransactionRepository(gdb)
		txm := NewTransactionManager(gdb)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE .transactions. SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM .transactions.").
			WillReturnRows(transactionRow(model.StatusSuccess, "REF123"))
		mock.ExpectCommit()

		reference := "REF123"
		var updated *model.Transaction

		err := runInsideTx(t, func() error {
			return txm.WithTx(ctx, func(ctx context.Context) error {
				var txErr error
				updated, txErr = repo.Transition(ctx, "T1", model.StatusPending, model.StatusSuccess,
					TransactionChanges{ReferenceID: &reference})
				return txErr
			})
		})
		require.NoError(t, err)

		require.NotNil(t, updated)
		assert.Equal(t, model.StatusSuccess, updated.Status)
		require.NotNil(t, updated.ReferenceID)
		assert.Equal(t, "REF123", *updated.ReferenceID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero affected rows disambiguates in the same transaction", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewTransactionRepository(gdb)
		txm := NewTransactionManager(gdb)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE .transactions. SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT (.+) FROM .transactions.").
			WillReturnRows(transactionRow(model.StatusProcessing, ""))
		mock.ExpectRollback()

		reference := "REF123"

		err := runInsideTx(t, func() error {
			return txm.WithTx(ctx, func(ctx context.Context) error {
				_, txErr := repo.Transition(ctx, "T1", model.StatusPending, model.StatusSuccess,
					TransactionChanges{ReferenceID: &reference})
				return txErr
			})
		})
		assert.ErrorIs(t, err, ErrStatusConflict)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
