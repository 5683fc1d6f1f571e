package main

import (
	"context"
	"errors"

	"github.com/paydesk/backoffice/internal/config"
	"github.com/paydesk/backoffice/internal/consumers"
	"github.com/paydesk/backoffice/internal/repository"
	"github.com/paydesk/backoffice/internal/service"
	"github.com/paydesk/backoffice/pkg/mq"
	"github.com/paydesk/backoffice/pkg/mysql"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			newLogger,
			config.Load,
			newDatabase,
			newRabbitMQ,
			newConsumer,
			repository.NewTransactionRepository,
			service.NewIngestService,
			newIngestConsumer,
		),
		fx.Invoke(registerHooks),
	).Run()
}

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func newDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return mysql.NewConnection(context.Background(), cfg.Database, logger)
}

func newRabbitMQ(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	conn, err := mq.NewConnection(cfg.RabbitMQ, logger)
	if err != nil {
		return nil, err
	}

	if err := conn.DeclareTopology([]string{consumers.IngestQueue}); err != nil {
		return nil, err
	}

	return conn, nil
}

func newConsumer(conn *mq.RabbitMQ) (mq.Consumer, error) {
	return conn.CreateConsumer()
}

func newIngestConsumer(consumer mq.Consumer, svc service.IngestService,
	cfg *config.Config, logger *zap.Logger) *consumers.IngestConsumer {
	return consumers.NewIngestConsumer(consumer, svc, cfg.Worker.Prefetch, logger)
}

func registerHooks(lc fx.Lifecycle, consumer *consumers.IngestConsumer,
	conn *mq.RabbitMQ, logger *zap.Logger) {
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := consumer.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Fatal("Ingest consumer stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return conn.Close()
		},
	})
}
