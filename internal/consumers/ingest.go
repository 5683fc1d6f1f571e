package consumers

import (
	"context"
	"encoding/json"

	"github.com/paydesk/backoffice/internal/metrics"
	"github.com/paydesk/backoffice/internal/service"
	"github.com/paydesk/backoffice/pkg/mq"
	"go.uber.org/zap"
)

const IngestQueue = "payout.created"

// IngestConsumer pulls newly created transactions off the upstream feed and
// writes them into the store.
type IngestConsumer struct {
	consumer mq.Consumer
	service  service.IngestService
	prefetch int
	logger   *zap.Logger
}

func NewIngestConsumer(consumer mq.Consumer, svc service.IngestService,
	prefetch int, logger *zap.Logger) *IngestConsumer {
	return &IngestConsumer{consumer: consumer, service: svc, prefetch: prefetch, logger: logger}
}

func (c *IngestConsumer) Start(ctx context.Context) error {
	c.logger.Info("Ingest consumer starting", zap.String("queue", IngestQueue))

	return c.consumer.Consume(ctx, c.prefetch, IngestQueue, c.handle)
}

func (c *IngestConsumer) handle(ctx context.Context, body []byte) error {
	var cmd service.IngestTransactionCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		c.logger.Warn("Dropping malformed ingest payload", zap.Error(err))
		metrics.RecordMessage(IngestQueue, "malformed")
		return nil
	}

	if err := c.service.CreateTransaction(ctx, cmd); err != nil {
		metrics.RecordMessage(IngestQueue, "requeued")
		return err
	}

	metrics.RecordMessage(IngestQueue, "ok")
	return nil
}
