package mocks

import (
	"context"
	"time"

	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/internal/repository"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, trx *model.Transaction) error {
	args := m.Called(ctx, trx)
	return args.Error(0)
}

func (m *TransactionRepository) GetByTrxID(ctx context.Context, trxID string) (*model.Transaction, error) {
	args := m.Called(ctx, trxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *TransactionRepository) Query(ctx context.Context, query repository.TransactionQuery) ([]model.Transaction, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *TransactionRepository) Transition(ctx context.Context, trxID string, expected, next model.TrxStatus,
	changes repository.TransactionChanges) (*model.Transaction, error) {
	args := m.Called(ctx, trxID, expected, next, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *TransactionRepository) TodayStats(ctx context.Context, trxType model.TrxType, from, to time.Time) (repository.StatsRow, error) {
	args := m.Called(ctx, trxType, from, to)
	return args.Get(0).(repository.StatsRow), args.Error(1)
}
