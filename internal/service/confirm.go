package service

import (
	"context"
	"errors"
	"strings"

	"github.com/paydesk/backoffice/internal/constants"
	"github.com/paydesk/backoffice/internal/metrics"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/internal/publishers"
	"github.com/paydesk/backoffice/internal/repository"
	"go.uber.org/zap"
)

// ConfirmService drives the two-phase confirmation of a pending payout.
// Propose validates and returns the record for operator review without
// mutating anything; Commit performs exactly one guarded transition that
// writes the settlement reference. Retrying Commit after the first success
// surfaces STATUS_CONFLICT instead of a second financial effect.
type ConfirmService interface {
	Propose(ctx context.Context, cmd ConfirmTransactionCommand) (*model.Transaction, error)
	Commit(ctx context.Context, cmd ConfirmTransactionCommand) (*model.Transaction, error)
}

type confirm struct {
	repo   repository.TransactionRepository
	txm    repository.TxManager
	events publishers.EventPublisher
	logger *zap.Logger
}

func NewConfirmService(repo repository.TransactionRepository, txm repository.TxManager,
	events publishers.EventPublisher, logger *zap.Logger) ConfirmService {
	return &confirm{repo: repo, txm: txm, events: events, logger: logger}
}

func (c *confirm) Propose(ctx context.Context, cmd ConfirmTransactionCommand) (*model.Transaction, error) {
	if _, err := validateReference(cmd.ReferenceID); err != nil {
		return nil, err
	}

	trx, err := c.loadConfirmable(ctx, cmd.TrxID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Confirmation proposed",
		zap.String("trxID", trx.TrxID),
		zap.String("amount", trx.Amount.String()),
		zap.String("ccy", trx.Ccy))

	return trx, nil
}

func (c *confirm) Commit(ctx context.Context, cmd ConfirmTransactionCommand) (*model.Transaction, error) {
	reference, err := validateReference(cmd.ReferenceID)
	if err != nil {
		return nil, err
	}

	var trx *model.Transaction
	err = c.txm.WithTx(ctx, func(ctx context.Context) error {
		if _, err := c.loadConfirmable(ctx, cmd.TrxID); err != nil {
			return err
		}

		changes := repository.TransactionChanges{ReferenceID: &reference}

		var txErr error
		trx, txErr = c.repo.Transition(ctx, cmd.TrxID, model.StatusPending, model.StatusSuccess, changes)
		return txErr
	})
	if err != nil {
		var svcErr Error
		if errors.As(err, &svcErr) {
			return nil, err
		}

		if errors.Is(err, repository.ErrStatusConflict) || errors.Is(err, repository.ErrInvalidTransition) {
			c.logger.Warn("Confirmation rejected, status already advanced",
				zap.String("trxID", cmd.TrxID))
			return nil, NewServiceError(constants.ErrCodeStatusConflict, err)
		}

		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, NewServiceError(constants.ErrCodeTransactionNotFound, err)
		}

		c.logger.Error("Confirmation commit failed",
			zap.String("trxID", cmd.TrxID),
			zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeStoreUnavailable, err)
	}

	c.logger.Info("Payout confirmed",
		zap.String("trxID", trx.TrxID),
		zap.String("referenceID", reference))

	metrics.RecordTransition(string(model.StatusPending), string(trx.Status))

	c.publishEvent(ctx, trx, model.StatusPending, reference)

	return trx, nil
}

// publishEvent is best effort: the transition is already durable, so a broker
// hiccup must not turn a confirmed payout into a caller-visible failure.
func (c *confirm) publishEvent(ctx context.Context, trx *model.Transaction, previous model.TrxStatus, reference string) {
	event := publishers.TransactionEvent{
		TrxID:          trx.TrxID,
		PreviousStatus: previous,
		Status:         trx.Status,
		ReferenceID:    reference,
	}

	if err := c.events.PublishStatusChanged(ctx, event); err != nil {
		c.logger.Warn("Status change event not published",
			zap.String("trxID", trx.TrxID),
			zap.Error(err))
	}
}

func (c *confirm) loadConfirmable(ctx context.Context, trxID string) (*model.Transaction, error) {
	trx, err := c.repo.GetByTrxID(ctx, trxID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, NewServiceError(constants.ErrCodeTransactionNotFound, err)
		}

		c.logger.Error("Failed to load transaction for confirmation",
			zap.String("trxID", trxID), zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeStoreUnavailable, err)
	}

	if trx.TrxType != model.TrxTypePayout {
		return nil, NewServiceError(constants.ErrCodeValidationFailed, ErrNotPayout)
	}

	if trx.Status != model.StatusPending {
		return nil, NewServiceError(constants.ErrCodeStatusConflict, ErrNotConfirmable)
	}

	return trx, nil
}

func validateReference(raw string) (string, error) {
	reference := strings.TrimSpace(raw)
	if reference == "" {
		return "", NewServiceError(constants.ErrCodeValidationFailed, ErrEmptyReference)
	}
	return reference, nil
}
