package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/paydesk/backoffice/internal/model"
	"github.com/shopspring/decimal"
)

// MemoryTransactionRepository implements the same contract as the gorm store
// against a map. It backs the service tests and local development, so the
// state machine is exercisable without a live database. Transitions take the
// write lock, which serializes concurrent commits the same way the
// conditional UPDATE does in MySQL.
type MemoryTransactionRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[string]*model.Transaction
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{items: make(map[string]*model.Transaction)}
}

func (m *MemoryTransactionRepository) Create(ctx context.Context, trx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[trx.TrxID]; exists {
		return ErrTransactionDuplicate
	}

	m.nextID++
	trx.ID = m.nextID

	stored := *trx
	m.items[trx.TrxID] = &stored
	return nil
}

func (m *MemoryTransactionRepository) GetByTrxID(ctx context.Context, trxID string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	trx, ok := m.items[trxID]
	if !ok {
		return nil, ErrTransactionNotFound
	}

	copied := *trx
	return &copied, nil
}

func (m *MemoryTransactionRepository) Query(ctx context.Context, query TransactionQuery) ([]model.Transaction, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []model.Transaction
	for _, trx := range m.items {
		if matches(trx, query) {
			matched = append(matched, *trx)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	offset := (query.Page - 1) * query.PageSize
	if offset >= len(matched) {
		return []model.Transaction{}, total, nil
	}

	end := offset + query.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], total, nil
}

func matches(trx *model.Transaction, query TransactionQuery) bool {
	if query.TrxType != "" && trx.TrxType != query.TrxType {
		return false
	}
	if query.Status != "" && trx.Status != query.Status {
		return false
	}
	if query.TrxID != "" && !strings.Contains(trx.TrxID, query.TrxID) {
		return false
	}
	if query.ReferenceID != "" && (trx.ReferenceID == nil || *trx.ReferenceID != query.ReferenceID) {
		return false
	}
	if query.ChannelTrxID != "" && (trx.ChannelTrxID == nil || *trx.ChannelTrxID != query.ChannelTrxID) {
		return false
	}
	if query.CreatedFrom != nil && trx.CreatedAt.Before(*query.CreatedFrom) {
		return false
	}
	if query.CreatedTo != nil && !trx.CreatedAt.Before(*query.CreatedTo) {
		return false
	}
	return true
}

func (m *MemoryTransactionRepository) Transition(ctx context.Context, trxID string, expected, next model.TrxStatus,
	changes TransactionChanges) (*model.Transaction, error) {

	if !model.CanTransition(expected, next) {
		return nil, ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	trx, ok := m.items[trxID]
	if !ok {
		return nil, ErrTransactionNotFound
	}

	if trx.Status != expected {
		return nil, ErrStatusConflict
	}

	now := time.Now()
	trx.Status = next
	trx.UpdatedAt = now
	if next.IsTerminal() {
		completed := now
		trx.CompletedAt = &completed
	}
	if changes.ReferenceID != nil {
		ref := *changes.ReferenceID
		trx.ReferenceID = &ref
		flow := ref
		trx.FlowNo = &flow
	}
	if changes.ChannelTrxID != nil {
		channel := *changes.ChannelTrxID
		trx.ChannelTrxID = &channel
	}
	if changes.ResCode != nil {
		code := *changes.ResCode
		trx.ResCode = &code
	}
	if changes.ResMsg != nil {
		msg := *changes.ResMsg
		trx.ResMsg = &msg
	}
	if changes.Reason != nil {
		reason := *changes.Reason
		trx.Reason = &reason
	}

	copied := *trx
	return &copied, nil
}

// MemoryTxManager pairs with the memory store; there is no transaction to
// open, so it just runs the function.
type MemoryTxManager struct{}

func NewMemoryTxManager() TxManager { return MemoryTxManager{} }

func (MemoryTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *MemoryTransactionRepository) TodayStats(ctx context.Context, trxType model.TrxType, from, to time.Time) (StatsRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row := StatsRow{TotalAmount: decimal.Zero}
	for _, trx := range m.items {
		if trx.TrxType != trxType {
			continue
		}
		if trx.CreatedAt.Before(from) || !trx.CreatedAt.Before(to) {
			continue
		}

		row.TotalCount++
		row.TotalAmount = row.TotalAmount.Add(trx.Amount)

		switch trx.Status.Group() {
		case model.GroupSuccess:
			row.SuccessCount++
		case model.GroupProcessing:
			row.PendingCount++
		}
	}

	return row, nil
}
