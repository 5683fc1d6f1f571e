package service

import (
	"context"
	"fmt"
	"time"

	"github.com/paydesk/backoffice/internal/constants"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportPageSize = 500

// ExportService renders the filtered transaction list as an XLSX workbook for
// the console's export action. It pages through the store with the same query
// the list endpoint uses, so the exported rows always match what the operator
// is looking at.
type ExportService interface {
	Export(ctx context.Context, query ListTransactionsQuery) (*excelize.File, error)
}

type export struct {
	transactions TransactionService
	logger       *zap.Logger
}

func NewExportService(transactions TransactionService, logger *zap.Logger) ExportService {
	return &export{transactions: transactions, logger: logger}
}

var exportHeaders = []string{
	"Trx ID", "Type", "Method", "Amount", "Ccy", "Status",
	"Reference ID", "Channel Trx ID", "Created At", "Completed At",
}

func (e *export) Export(ctx context.Context, query ListTransactionsQuery) (*excelize.File, error) {
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	query.Page = 1
	query.PageSize = exportPageSize
	row := 2

	for {
		result, err := e.transactions.List(ctx, query)
		if err != nil {
			e.logger.Error("Export query failed",
				zap.Int("page", query.Page),
				zap.Error(err))
			return nil, err
		}

		for _, trx := range result.Items {
			if err := writeRow(file, sheet, row, trx); err != nil {
				return nil, NewServiceError(constants.ErrCodeInternalError, err)
			}
			row++
		}

		if query.Page >= result.TotalPages {
			break
		}
		query.Page++
	}

	e.logger.Info("Transactions exported", zap.Int("rows", row-2))

	return file, nil
}

func writeRow(file *excelize.File, sheet string, row int, trx model.Transaction) error {
	values := []interface{}{
		trx.TrxID,
		string(trx.TrxType),
		trx.TrxMethod,
		trx.Amount.String(),
		trx.Ccy,
		trx.Status.DisplayName(),
		deref(trx.ReferenceID),
		deref(trx.ChannelTrxID),
		trx.CreatedAt.Format(time.RFC3339),
		formatCompleted(trx.CompletedAt),
	}

	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}

	return nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatCompleted(completed *time.Time) string {
	if completed == nil {
		return ""
	}
	return completed.Format(time.RFC3339)
}
