package consumers

import (
	"context"
	"encoding/json"

	"github.com/paydesk/backoffice/internal/metrics"
	"github.com/paydesk/backoffice/internal/service"
	"github.com/paydesk/backoffice/pkg/mq"
	"go.uber.org/zap"
)

const CallbackQueue = "payout.callback"

// CallbackConsumer feeds channel settlement results into the transaction
// lifecycle. Malformed payloads are acked and dropped; only store outages
// requeue.
type CallbackConsumer struct {
	consumer mq.Consumer
	service  service.CallbackService
	prefetch int
	logger   *zap.Logger
}

func NewCallbackConsumer(consumer mq.Consumer, svc service.CallbackService,
	prefetch int, logger *zap.Logger) *CallbackConsumer {
	return &CallbackConsumer{consumer: consumer, service: svc, prefetch: prefetch, logger: logger}
}

func (c *CallbackConsumer) Start(ctx context.Context) error {
	c.logger.Info("Callback consumer starting", zap.String("queue", CallbackQueue))

	return c.consumer.Consume(ctx, c.prefetch, CallbackQueue, c.handle)
}

func (c *CallbackConsumer) handle(ctx context.Context, body []byte) error {
	var cmd service.ChannelResultCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		c.logger.Warn("Dropping malformed callback payload", zap.Error(err))
		metrics.RecordMessage(CallbackQueue, "malformed")
		return nil
	}

	if err := c.service.ApplyChannelResult(ctx, cmd); err != nil {
		metrics.RecordMessage(CallbackQueue, "requeued")
		return err
	}

	metrics.RecordMessage(CallbackQueue, "ok")
	return nil
}
