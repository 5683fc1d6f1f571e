package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/internal/repository"
	"github.com/paydesk/backoffice/pkg/mq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IngestService is the creation boundary. Upstream feeds still mix legacy
// status synonyms, so every record is normalized before it enters the store;
// a redelivered trxID is acknowledged as already ingested.
type IngestService interface {
	CreateTransaction(ctx context.Context, cmd IngestTransactionCommand) error
}

type ingest struct {
	repo   repository.TransactionRepository
	logger *zap.Logger
}

func NewIngestService(repo repository.TransactionRepository, logger *zap.Logger) IngestService {
	return &ingest{repo: repo, logger: logger}
}

func (i *ingest) CreateTransaction(ctx context.Context, cmd IngestTransactionCommand) error {
	trx, err := i.buildTransaction(cmd)
	if err != nil {
		i.logger.Warn("Dropping unusable ingest record",
			zap.String("trxID", cmd.TrxID),
			zap.Error(err))
		return nil
	}

	err = i.repo.Create(ctx, trx)
	if err == nil {
		i.logger.Info("Transaction ingested",
			zap.String("trxID", trx.TrxID),
			zap.String("status", string(trx.Status)))
		return nil
	}

	if errors.Is(err, repository.ErrTransactionDuplicate) {
		i.logger.Info("Transaction already ingested", zap.String("trxID", cmd.TrxID))
		return nil
	}

	i.logger.Error("Failed to ingest transaction",
		zap.String("trxID", cmd.TrxID),
		zap.Error(err))
	return mq.Temporary(err)
}

func (i *ingest) buildTransaction(cmd IngestTransactionCommand) (*model.Transaction, error) {
	if cmd.TrxID == "" {
		return nil, fmt.Errorf("missing trx_id")
	}

	trxType, err := parseTrxType(cmd.TrxType)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(cmd.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", cmd.Amount, err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("negative amount %q", cmd.Amount)
	}

	status := model.StatusPending
	if cmd.Status != "" {
		status, err = model.NormalizeStatus(cmd.Status)
		if err != nil {
			return nil, err
		}
	}

	feeAmount := decimal.Zero
	if cmd.FeeAmount != "" {
		feeAmount, err = decimal.NewFromString(cmd.FeeAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid fee amount %q: %w", cmd.FeeAmount, err)
		}
	}

	now := time.Now()
	trx := &model.Transaction{
		TrxID:     cmd.TrxID,
		TrxType:   trxType,
		TrxMethod: cmd.TrxMethod,
		TrxMode:   cmd.TrxMode,
		Amount:    amount,
		Ccy:       cmd.Ccy,
		FeeAmount: feeAmount,
		FeeCcy:    cmd.FeeCcy,
		Status:    status,
		Remark:    cmd.Remark,
		Detail:    cmd.Detail,
		Country:   cmd.Country,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if status.IsTerminal() {
		completed := now
		trx.CompletedAt = &completed
	}

	return trx, nil
}
