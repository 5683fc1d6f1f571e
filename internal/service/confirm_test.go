package service

import (
	"context"
	"testing"
	"time"

	"github.com/paydesk/backoffice/internal/constants"
	"github.com/paydesk/backoffice/internal/mocks"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newConfirmFixture(t *testing.T) (*repository.MemoryTransactionRepository, *mocks.EventPublisher, ConfirmService) {
	t.Helper()

	repo := repository.NewMemoryTransactionRepository()
	events := &mocks.EventPublisher{}
	svc := NewConfirmService(repo, repository.NewMemoryTxManager(), events, zap.NewNop())

	return repo, events, svc
}

func seedPayout(t *testing.T, repo *repository.MemoryTransactionRepository, trxID string, status model.TrxStatus) {
	t.Helper()

	err := repo.Create(context.Background(), &model.Transaction{
		TrxID:     trxID,
		TrxType:   model.TrxTypePayout,
		Amount:    decimal.NewFromInt(2500),
		Ccy:       "INR",
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func assertServiceCode(t *testing.T, err error, code string) {
	t.Helper()

	var svcErr Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, code, svcErr.Code)
}

func TestConfirmPropose(t *testing.T) {
	ctx := context.Background()

	t.Run("empty reference fails validation before any read", func(t *testing.T) {
		_, _, svc := newConfirmFixture(t)

		_, err := svc.Propose(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "   "})
		assertServiceCode(t, err, constants.ErrCodeValidationFailed)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, _, svc := newConfirmFixture(t)

		_, err := svc.Propose(ctx, ConfirmTransactionCommand{TrxID: "NOPE", ReferenceID: "REF123"})
		assertServiceCode(t, err, constants.ErrCodeTransactionNotFound)
	})

	t.Run("payin is not confirmable", func(t *testing.T) {
		repo, _, svc := newConfirmFixture(t)
		err := repo.Create(ctx, &model.Transaction{
			TrxID:   "T1",
			TrxType: model.TrxTypePayin,
			Status:  model.StatusPending,
		})
		require.NoError(t, err)

		_, err = svc.Propose(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "REF123"})
		assertServiceCode(t, err, constants.ErrCodeValidationFailed)
	})

	t.Run("non pending payout conflicts", func(t *testing.T) {
		repo, _, svc := newConfirmFixture(t)
		seedPayout(t, repo, "T1", model.StatusProcessing)

		_, err := svc.Propose(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "REF123"})
		assertServiceCode(t, err, constants.ErrCodeStatusConflict)
	})

	t.Run("propose never mutates the record", func(t *testing.T) {
		repo, _, svc := newConfirmFixture(t)
		seedPayout(t, repo, "T1", model.StatusPending)

		trx, err := svc.Propose(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "REF123"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, trx.Status)

		stored, err := repo.GetByTrxID(ctx, "T1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, stored.Status)
		assert.Nil(t, stored.ReferenceID)
		assert.Nil(t, stored.CompletedAt)
	})
}

func TestConfirmCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("commit settles the payout with the reference", func(t *testing.T) {
		repo, events, svc := newConfirmFixture(t)
		seedPayout(t, repo, "T1", model.StatusPending)
		events.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil)

		trx, err := svc.Commit(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "REF123"})
		require.NoError(t, err)

		assert.Equal(t, model.StatusSuccess, trx.Status)
		require.NotNil(t, trx.ReferenceID)
		assert.Equal(t, "REF123", *trx.ReferenceID)
		require.NotNil(t, trx.CompletedAt)

		events.AssertCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
	})

	t.Run("second commit conflicts and preserves the first reference", func(t *testing.T) {
		repo, events, svc := newConfirmFixture(t)
		seedPayout(t, repo, "T1", model.StatusPending)
		events.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Commit(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "REF123"})
		require.NoError(t, err)

		_, err = svc.Commit(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "REF456"})
		assertServiceCode(t, err, constants.ErrCodeStatusConflict)

		stored, err := repo.GetByTrxID(ctx, "T1")
		require.NoError(t, err)
		require.NotNil(t, stored.ReferenceID)
		assert.Equal(t, "REF123", *stored.ReferenceID)
	})

	t.Run("reference is trimmed before it is stored", func(t *testing.T) {
		repo, events, svc := newConfirmFixture(t)
		seedPayout(t, repo, "T1", model.StatusPending)
		events.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Commit(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "  REF123  "})
		require.NoError(t, err)

		stored, err := repo.GetByTrxID(ctx, "T1")
		require.NoError(t, err)
		require.NotNil(t, stored.ReferenceID)
		assert.Equal(t, "REF123", *stored.ReferenceID)
	})

	t.Run("broker failure does not fail the commit", func(t *testing.T) {
		repo, events, svc := newConfirmFixture(t)
		seedPayout(t, repo, "T1", model.StatusPending)
		events.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(assert.AnError)

		trx, err := svc.Commit(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "REF123"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusSuccess, trx.Status)
	})

	t.Run("store outage maps to unavailable", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		repo.On("GetByTrxID", mock.Anything, "T1").Return(nil, assert.AnError)
		svc := NewConfirmService(repo, repository.NewMemoryTxManager(), &mocks.EventPublisher{}, zap.NewNop())

		_, err := svc.Commit(ctx, ConfirmTransactionCommand{TrxID: "T1", ReferenceID: "REF123"})
		assertServiceCode(t, err, constants.ErrCodeStoreUnavailable)
	})
}
