package service

import (
	"context"
	"errors"
	"strings"

	"github.com/paydesk/backoffice/internal/constants"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/internal/repository"
	"github.com/paydesk/backoffice/pkg/search"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListTransactionsResult struct {
	Items      []model.Transaction
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type TransactionService interface {
	List(ctx context.Context, query ListTransactionsQuery) (ListTransactionsResult, error)
	Detail(ctx context.Context, trxID string) (*model.Transaction, error)
}

type transaction struct {
	repo   repository.TransactionRepository
	logger *zap.Logger
}

func NewTransactionService(repo repository.TransactionRepository, logger *zap.Logger) TransactionService {
	return &transaction{repo: repo, logger: logger}
}

func (t *transaction) List(ctx context.Context, query ListTransactionsQuery) (ListTransactionsResult, error) {
	repoQuery, err := buildQuery(query)
	if err != nil {
		return ListTransactionsResult{}, err
	}

	items, total, err := t.repo.Query(ctx, repoQuery)
	if err != nil {
		t.logger.Error("Failed to query transactions", zap.Error(err))
		return ListTransactionsResult{}, NewServiceError(constants.ErrCodeStoreUnavailable, err)
	}

	totalPages := int((total + int64(repoQuery.PageSize) - 1) / int64(repoQuery.PageSize))

	return ListTransactionsResult{
		Items:      items,
		Total:      total,
		Page:       repoQuery.Page,
		PageSize:   repoQuery.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (t *transaction) Detail(ctx context.Context, trxID string) (*model.Transaction, error) {
	trx, err := t.repo.GetByTrxID(ctx, trxID)
	if err == nil {
		return trx, nil
	}

	if errors.Is(err, repository.ErrTransactionNotFound) {
		return nil, NewServiceError(constants.ErrCodeTransactionNotFound, err)
	}

	t.logger.Error("Failed to load transaction", zap.String("trxID", trxID), zap.Error(err))
	return nil, NewServiceError(constants.ErrCodeStoreUnavailable, err)
}

func buildQuery(query ListTransactionsQuery) (repository.TransactionQuery, error) {
	if query.Page < 1 {
		return repository.TransactionQuery{}, NewServiceError(constants.ErrCodeValidationFailed, ErrInvalidPage)
	}

	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	repoQuery := repository.TransactionQuery{
		Page:        query.Page,
		PageSize:    pageSize,
		CreatedFrom: query.CreatedFrom,
		CreatedTo:   query.CreatedTo,
	}

	if query.TrxType != "" {
		trxType, err := parseTrxType(query.TrxType)
		if err != nil {
			return repository.TransactionQuery{}, err
		}
		repoQuery.TrxType = trxType
	}

	if query.Status != "" {
		status, err := model.NormalizeStatus(query.Status)
		if err != nil {
			return repository.TransactionQuery{}, NewServiceError(constants.ErrCodeValidationFailed, err)
		}
		repoQuery.Status = status
	}

	term := strings.TrimSpace(query.Search)
	switch search.Classify(term) {
	case search.FieldReferenceID:
		repoQuery.ReferenceID = term
	case search.FieldChannelTrxID:
		repoQuery.ChannelTrxID = term
	default:
		repoQuery.TrxID = term
	}

	return repoQuery, nil
}

func parseTrxType(raw string) (model.TrxType, error) {
	switch model.TrxType(raw) {
	case model.TrxTypePayin:
		return model.TrxTypePayin, nil
	case model.TrxTypePayout:
		return model.TrxTypePayout, nil
	}
	return "", NewServiceError(constants.ErrCodeValidationFailed, ErrUnknownTrxType)
}
