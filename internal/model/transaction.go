package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TrxType string

const (
	TrxTypePayin  TrxType = "PAYIN"
	TrxTypePayout TrxType = "PAYOUT"
)

type Transaction struct {
	ID           int64           `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	TrxID        string          `gorm:"column:trx_id;uniqueIndex;<-:create"`
	TrxType      TrxType         `gorm:"column:trx_type;index"`
	TrxMethod    string          `gorm:"column:trx_method"`
	TrxMode      string          `gorm:"column:trx_mode"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(20,2)"`
	Ccy          string          `gorm:"column:ccy;type:varchar(8)"`
	FeeAmount    decimal.Decimal `gorm:"column:fee_amount;type:decimal(20,2)"`
	FeeCcy       string          `gorm:"column:fee_ccy;type:varchar(8)"`
	Status       TrxStatus       `gorm:"column:status;type:varchar(16);index"`
	ChannelTrxID *string         `gorm:"column:channel_trx_id"`
	ReferenceID  *string         `gorm:"column:reference_id"`
	FlowNo       *string         `gorm:"column:flow_no"`
	ResCode      *string         `gorm:"column:res_code"`
	ResMsg       *string         `gorm:"column:res_msg"`
	Reason       *string         `gorm:"column:reason"`
	Remark       string          `gorm:"column:remark"`
	Detail       string          `gorm:"column:detail;type:text"`
	Country      string          `gorm:"column:country;type:varchar(4)"`
	CreatedAt    time.Time       `gorm:"column:created_at;index"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
	CompletedAt  *time.Time      `gorm:"column:completed_at"`
}

func (Transaction) TableName() string { return "transactions" }

// DailyStats is a projection over today's transactions, never persisted.
type DailyStats struct {
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TotalCount   int64           `json:"total_count"`
	SuccessCount int64           `json:"success_count"`
	SuccessRate  float64         `json:"success_rate"`
	PendingCount int64           `json:"pending_count"`
}
