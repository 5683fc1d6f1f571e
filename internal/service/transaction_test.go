package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/paydesk/backoffice/internal/constants"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newListFixture(t *testing.T) (*repository.MemoryTransactionRepository, TransactionService) {
	t.Helper()

	repo := repository.NewMemoryTransactionRepository()
	return repo, NewTransactionService(repo, zap.NewNop())
}

func TestTransactionList(t *testing.T) {
	ctx := context.Background()

	t.Run("page below one fails validation", func(t *testing.T) {
		_, svc := newListFixture(t)

		_, err := svc.List(ctx, ListTransactionsQuery{Page: 0})
		assertServiceCode(t, err, constants.ErrCodeValidationFailed)
	})

	t.Run("unknown type fails validation", func(t *testing.T) {
		_, svc := newListFixture(t)

		_, err := svc.List(ctx, ListTransactionsQuery{Page: 1, TrxType: "TRANSFER"})
		assertServiceCode(t, err, constants.ErrCodeValidationFailed)
	})

	t.Run("unknown status fails validation", func(t *testing.T) {
		_, svc := newListFixture(t)

		_, err := svc.List(ctx, ListTransactionsQuery{Page: 1, Status: "reversed"})
		assertServiceCode(t, err, constants.ErrCodeValidationFailed)
	})

	t.Run("page size defaults and caps", func(t *testing.T) {
		repo, svc := newListFixture(t)
		seedPayout(t, repo, "T1", model.StatusPending)

		result, err := svc.List(ctx, ListTransactionsQuery{Page: 1})
		require.NoError(t, err)
		assert.Equal(t, 20, result.PageSize)

		result, err = svc.List(ctx, ListTransactionsQuery{Page: 1, PageSize: 1000})
		require.NoError(t, err)
		assert.Equal(t, 100, result.PageSize)
	})

	t.Run("total pages round up", func(t *testing.T) {
		repo, svc := newListFixture(t)
		for i := 0; i < 45; i++ {
			seedPayout(t, repo, fmt.Sprintf("T%03d", i), model.StatusPending)
		}

		result, err := svc.List(ctx, ListTransactionsQuery{Page: 3, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(45), result.Total)
		assert.Equal(t, 3, result.TotalPages)
		assert.Len(t, result.Items, 5)
	})

	t.Run("legacy status filter is normalized", func(t *testing.T) {
		repo, svc := newListFixture(t)
		seedPayout(t, repo, "T1", model.StatusPending)
		seedPayout(t, repo, "T2", model.StatusCancelled)

		result, err := svc.List(ctx, ListTransactionsQuery{Page: 1, Status: "1"})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "T1", result.Items[0].TrxID)
	})

	t.Run("utr search targets the reference field", func(t *testing.T) {
		repo, svc := newListFixture(t)
		seedPayout(t, repo, "T1", model.StatusPending)
		seedPayout(t, repo, "123456789012-NOT-A-REF", model.StatusPending)

		reference := "123456789012"
		_, err := repo.Transition(ctx, "T1", model.StatusPending, model.StatusSuccess,
			repository.TransactionChanges{ReferenceID: &reference})
		require.NoError(t, err)

		result, err := svc.List(ctx, ListTransactionsQuery{Page: 1, Search: reference})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "T1", result.Items[0].TrxID)
	})

	t.Run("plain text searches trx id as substring", func(t *testing.T) {
		repo, svc := newListFixture(t)
		seedPayout(t, repo, "PAY-2026-001", model.StatusPending)
		seedPayout(t, repo, "PAY-2026-002", model.StatusPending)

		result, err := svc.List(ctx, ListTransactionsQuery{Page: 1, Search: "2026-00"})
		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
	})

	t.Run("date range bounds are half open", func(t *testing.T) {
		repo, svc := newListFixture(t)

		old := time.Now().Add(-48 * time.Hour)
		err := repo.Create(ctx, &model.Transaction{
			TrxID:     "OLD",
			TrxType:   model.TrxTypePayout,
			Amount:    decimal.NewFromInt(1),
			Status:    model.StatusPending,
			CreatedAt: old,
			UpdatedAt: old,
		})
		require.NoError(t, err)
		seedPayout(t, repo, "NEW", model.StatusPending)

		from := time.Now().Add(-time.Hour)
		result, err := svc.List(ctx, ListTransactionsQuery{Page: 1, CreatedFrom: &from})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "NEW", result.Items[0].TrxID)
	})
}

func TestTransactionDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, svc := newListFixture(t)
		seedPayout(t, repo, "T1", model.StatusPending)

		trx, err := svc.Detail(ctx, "T1")
		require.NoError(t, err)
		assert.Equal(t, "T1", trx.TrxID)
	})

	t.Run("missing", func(t *testing.T) {
		_, svc := newListFixture(t)

		_, err := svc.Detail(ctx, "NOPE")
		assertServiceCode(t, err, constants.ErrCodeTransactionNotFound)
	})
}
