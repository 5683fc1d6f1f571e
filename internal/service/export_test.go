package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/paydesk/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExport(t *testing.T) {
	ctx := context.Background()

	t.Run("writes header and one row per transaction", func(t *testing.T) {
		repo, list := newListFixture(t)
		for i := 0; i < 3; i++ {
			seedPayout(t, repo, fmt.Sprintf("T%d", i), model.StatusPending)
		}

		svc := NewExportService(list, zap.NewNop())

		file, err := svc.Export(ctx, ListTransactionsQuery{Page: 1})
		require.NoError(t, err)

		sheet := file.GetSheetName(0)

		header, err := file.GetCellValue(sheet, "A1")
		require.NoError(t, err)
		assert.Equal(t, "Trx ID", header)

		rows, err := file.GetRows(sheet)
		require.NoError(t, err)
		assert.Len(t, rows, 4)

		status, err := file.GetCellValue(sheet, "F2")
		require.NoError(t, err)
		assert.Equal(t, "Pending", status)
	})

	t.Run("respects the list filter", func(t *testing.T) {
		repo, list := newListFixture(t)
		seedPayout(t, repo, "KEEP", model.StatusPending)
		seedPayout(t, repo, "SKIP", model.StatusFailed)

		svc := NewExportService(list, zap.NewNop())

		file, err := svc.Export(ctx, ListTransactionsQuery{Page: 1, Status: "pending"})
		require.NoError(t, err)

		rows, err := file.GetRows(file.GetSheetName(0))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "KEEP", rows[1][0])
	})

	t.Run("invalid filter propagates", func(t *testing.T) {
		_, list := newListFixture(t)
		svc := NewExportService(list, zap.NewNop())

		_, err := svc.Export(ctx, ListTransactionsQuery{Page: 1, TrxType: "TRANSFER"})
		assert.Error(t, err)
	})
}
