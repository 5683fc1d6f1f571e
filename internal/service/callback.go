package service

import (
	"context"
	"errors"

	"github.com/paydesk/backoffice/internal/metrics"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/internal/publishers"
	"github.com/paydesk/backoffice/internal/repository"
	"github.com/paydesk/backoffice/pkg/mq"
	"go.uber.org/zap"
)

// CallbackService applies channel-side settlement results through the same
// guarded transition the human confirmation uses. It is the non-human
// confirmation path; a record that already reached a terminal state is
// acknowledged and dropped, never rewound.
type CallbackService interface {
	ApplyChannelResult(ctx context.Context, cmd ChannelResultCommand) error
}

type callback struct {
	repo   repository.TransactionRepository
	events publishers.EventPublisher
	logger *zap.Logger
}

func NewCallbackService(repo repository.TransactionRepository, events publishers.EventPublisher,
	logger *zap.Logger) CallbackService {
	return &callback{repo: repo, events: events, logger: logger}
}

func (c *callback) ApplyChannelResult(ctx context.Context, cmd ChannelResultCommand) error {
	next, err := parseChannelResult(cmd.Status)
	if err != nil {
		c.logger.Warn("Dropping callback with unusable result",
			zap.String("trxID", cmd.TrxID),
			zap.String("status", cmd.Status))
		return nil
	}

	trx, err := c.repo.GetByTrxID(ctx, cmd.TrxID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			c.logger.Warn("Callback for unknown transaction", zap.String("trxID", cmd.TrxID))
			return nil
		}

		return mq.Temporary(err)
	}

	if trx.Status.IsTerminal() {
		c.logger.Info("Callback after terminal state, ignoring",
			zap.String("trxID", cmd.TrxID),
			zap.String("status", string(trx.Status)))
		return nil
	}

	updated, err := c.repo.Transition(ctx, cmd.TrxID, trx.Status, next, c.changes(cmd))
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) || errors.Is(err, repository.ErrInvalidTransition) {
			c.logger.Info("Callback lost the race, status already advanced",
				zap.String("trxID", cmd.TrxID))
			return nil
		}

		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil
		}

		c.logger.Error("Failed to apply channel result",
			zap.String("trxID", cmd.TrxID),
			zap.Error(err))
		return mq.Temporary(err)
	}

	c.logger.Info("Channel result applied",
		zap.String("trxID", cmd.TrxID),
		zap.String("from", string(trx.Status)),
		zap.String("to", string(updated.Status)))

	metrics.RecordTransition(string(trx.Status), string(updated.Status))

	event := publishers.TransactionEvent{
		TrxID:          updated.TrxID,
		PreviousStatus: trx.Status,
		Status:         updated.Status,
	}
	if err := c.events.PublishStatusChanged(ctx, event); err != nil {
		c.logger.Warn("Status change event not published",
			zap.String("trxID", updated.TrxID),
			zap.Error(err))
	}

	return nil
}

func (c *callback) changes(cmd ChannelResultCommand) repository.TransactionChanges {
	changes := repository.TransactionChanges{}
	if cmd.ChannelTrxID != "" {
		changes.ChannelTrxID = &cmd.ChannelTrxID
	}
	if cmd.ResCode != "" {
		changes.ResCode = &cmd.ResCode
	}
	if cmd.ResMsg != "" {
		changes.ResMsg = &cmd.ResMsg
	}
	if cmd.Reason != "" {
		changes.Reason = &cmd.Reason
	}
	return changes
}

func parseChannelResult(raw string) (model.TrxStatus, error) {
	status, err := model.NormalizeStatus(raw)
	if err != nil {
		return "", ErrUnknownCallback
	}

	if status != model.StatusSuccess && status != model.StatusFailed {
		return "", ErrUnknownCallback
	}

	return status, nil
}
