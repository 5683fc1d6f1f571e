package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
var ErrTransactionDuplicate = errors.New("TRANSACTION_DUPLICATE")
var ErrStatusConflict = errors.New("STATUS_CONFLICT")
var ErrInvalidTransition = errors.New("INVALID_TRANSITION")

// TransactionQuery filters the transaction list. TrxID matches as a
// substring; ReferenceID and ChannelTrxID match exactly. Page is 1-indexed.
type TransactionQuery struct {
	TrxType      model.TrxType
	Status       model.TrxStatus
	TrxID        string
	ReferenceID  string
	ChannelTrxID string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Page         int
	PageSize     int
}

// TransactionChanges carries the optional field updates applied alongside a
// status transition. Nil pointers leave the column untouched, which keeps the
// diagnostic fields append-only.
type TransactionChanges struct {
	ReferenceID  *string
	ChannelTrxID *string
	ResCode      *string
	ResMsg       *string
	Reason       *string
}

type TransactionRepository interface {
	Create(ctx context.Context, trx *model.Transaction) error
	GetByTrxID(ctx context.Context, trxID string) (*model.Transaction, error)
	Query(ctx context.Context, query TransactionQuery) ([]model.Transaction, int64, error)
	Transition(ctx context.Context, trxID string, expected, next model.TrxStatus,
		changes TransactionChanges) (*model.Transaction, error)
	TodayStats(ctx context.Context, trxType model.TrxType, from, to time.Time) (StatsRow, error)
}

type StatsRow struct {
	TotalAmount  decimal.Decimal
	TotalCount   int64
	SuccessCount int64
	PendingCount int64
}

type Transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &Transaction{db: db}
}

func (t *Transaction) Create(ctx context.Context, trx *model.Transaction) error {
	db := GetTx(ctx, t.db)
	err := db.WithContext(ctx).Create(trx).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrTransactionDuplicate
	}

	return err
}

// GetByTrxID reads through the context transaction when one is open, so the
// disambiguation and post-update reads in Transition see their own writes.
func (t *Transaction) GetByTrxID(ctx context.Context, trxID string) (*model.Transaction, error) {
	var trx model.Transaction

	db := GetTx(ctx, t.db)
	err := db.WithContext(ctx).Where("trx_id = ?", trxID).First(&trx).Error
	if err == nil {
		return &trx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (t *Transaction) Query(ctx context.Context, query TransactionQuery) ([]model.Transaction, int64, error) {
	db := t.db.WithContext(ctx).Model(&model.Transaction{})
	db = applyFilter(db, query)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Transaction
	offset := (query.Page - 1) * query.PageSize
	err := db.Order("created_at DESC").
		Limit(query.PageSize).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func applyFilter(db *gorm.DB, query TransactionQuery) *gorm.DB {
	if query.TrxType != "" {
		db = db.Where("trx_type = ?", query.TrxType)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.TrxID != "" {
		db = db.Where("trx_id LIKE ?", "%"+query.TrxID+"%")
	}
	if query.ReferenceID != "" {
		db = db.Where("reference_id = ?", query.ReferenceID)
	}
	if query.ChannelTrxID != "" {
		db = db.Where("channel_trx_id = ?", query.ChannelTrxID)
	}
	if query.CreatedFrom != nil {
		db = db.Where("created_at >= ?", *query.CreatedFrom)
	}
	if query.CreatedTo != nil {
		db = db.Where("created_at < ?", *query.CreatedTo)
	}
	return db
}

// Transition is the only mutation entry point for existing records. The
// UPDATE is guarded on the current status; zero affected rows means either the
// record is gone or another writer won, and the follow-up read disambiguates.
func (t *Transaction) Transition(ctx context.Context, trxID string, expected, next model.TrxStatus,
	changes TransactionChanges) (*model.Transaction, error) {

	if !model.CanTransition(expected, next) {
		return nil, ErrInvalidTransition
	}

	db := GetTx(ctx, t.db)
	now := time.Now()

	updates := map[string]interface{}{
		"status":     next,
		"updated_at": now,
	}
	if next.IsTerminal() {
		updates["completed_at"] = now
	}
	if changes.ReferenceID != nil {
		updates["reference_id"] = *changes.ReferenceID
		updates["flow_no"] = *changes.ReferenceID
	}
	if changes.ChannelTrxID != nil {
		updates["channel_trx_id"] = *changes.ChannelTrxID
	}
	if changes.ResCode != nil {
		updates["res_code"] = *changes.ResCode
	}
	if changes.ResMsg != nil {
		updates["res_msg"] = *changes.ResMsg
	}
	if changes.Reason != nil {
		updates["reason"] = *changes.Reason
	}

	result := db.WithContext(ctx).Model(&model.Transaction{}).
		Where("trx_id = ? AND status = ?", trxID, expected).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := t.GetByTrxID(ctx, trxID); err != nil {
			return nil, err
		}
		return nil, ErrStatusConflict
	}

	return t.GetByTrxID(ctx, trxID)
}

func (t *Transaction) TodayStats(ctx context.Context, trxType model.TrxType, from, to time.Time) (StatsRow, error) {
	var row struct {
		TotalAmount  decimal.Decimal
		TotalCount   int64
		SuccessCount int64
		PendingCount int64
	}

	err := t.db.WithContext(ctx).Model(&model.Transaction{}).
		Select(`COALESCE(SUM(amount), 0) AS total_amount,
			COUNT(*) AS total_count,
			COALESCE(SUM(CASE WHEN status IN (?, ?) THEN 1 ELSE 0 END), 0) AS success_count,
			COALESCE(SUM(CASE WHEN status IN (?, ?, ?, ?) THEN 1 ELSE 0 END), 0) AS pending_count`,
			model.StatusSuccess, model.StatusCompleted,
			model.StatusPending, model.StatusProcessing, model.StatusSubmitted, model.StatusConfirming).
		Where("trx_type = ? AND created_at >= ? AND created_at < ?", trxType, from, to).
		Scan(&row).Error
	if err != nil {
		return StatsRow{}, err
	}

	return StatsRow{
		TotalAmount:  row.TotalAmount,
		TotalCount:   row.TotalCount,
		SuccessCount: row.SuccessCount,
		PendingCount: row.PendingCount,
	}, nil
}
