package publishers

import (
	"context"
	"encoding/json"

	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/pkg/mq"
	"go.uber.org/zap"
)

const EventsQueue = "payout.events"

type TransactionEvent struct {
	TrxID          string          `json:"trx_id"`
	PreviousStatus model.TrxStatus `json:"previous_status"`
	Status         model.TrxStatus `json:"status"`
	ReferenceID    string          `json:"reference_id,omitempty"`
}

type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event TransactionEvent) error
}

type eventPublisher struct {
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewEventPublisher(publisher mq.Publisher, logger *zap.Logger) EventPublisher {
	return &eventPublisher{publisher: publisher, logger: logger}
}

func (p *eventPublisher) PublishStatusChanged(ctx context.Context, event TransactionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(ctx, "", EventsQueue, body); err != nil {
		p.logger.Error("Failed to publish transaction event",
			zap.String("trxID", event.TrxID),
			zap.Error(err))
		return err
	}

	return nil
}
