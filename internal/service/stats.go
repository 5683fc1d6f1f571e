package service

import (
	"context"
	"time"

	"github.com/paydesk/backoffice/internal/constants"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatsService projects daily counters from the transaction store. The day
// window runs from midnight to midnight in the configured location, applied
// to both bounds.
type StatsService interface {
	Today(ctx context.Context, trxType string) (model.DailyStats, error)
}

type stats struct {
	repo     repository.TransactionRepository
	location *time.Location
	logger   *zap.Logger
}

func NewStatsService(repo repository.TransactionRepository, location *time.Location, logger *zap.Logger) StatsService {
	return &stats{repo: repo, location: location, logger: logger}
}

func (s *stats) Today(ctx context.Context, trxType string) (model.DailyStats, error) {
	parsed, err := parseTrxType(trxType)
	if err != nil {
		return model.DailyStats{}, err
	}

	from, to := dayWindow(time.Now().In(s.location))

	row, err := s.repo.TodayStats(ctx, parsed, from, to)
	if err != nil {
		s.logger.Error("Failed to aggregate today stats",
			zap.String("trxType", trxType),
			zap.Error(err))
		return model.DailyStats{}, NewServiceError(constants.ErrCodeStoreUnavailable, err)
	}

	return model.DailyStats{
		TotalAmount:  row.TotalAmount,
		TotalCount:   row.TotalCount,
		SuccessCount: row.SuccessCount,
		SuccessRate:  successRate(row.SuccessCount, row.TotalCount),
		PendingCount: row.PendingCount,
	}, nil
}

func dayWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1)
}

// successRate is successCount/totalCount*100 rounded to 2 decimals, and 0 for
// an empty day so callers never divide by zero.
func successRate(successCount, totalCount int64) float64 {
	if totalCount == 0 {
		return 0
	}

	rate := decimal.NewFromInt(successCount * 100).
		Div(decimal.NewFromInt(totalCount)).
		Round(2)

	value, _ := rate.Float64()
	return value
}
