package main

import (
	"context"
	"errors"

	"github.com/paydesk/backoffice/internal/config"
	"github.com/paydesk/backoffice/internal/consumers"
	"github.com/paydesk/backoffice/internal/publishers"
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
			newPublisher,
			newConsumer,
			publishers.NewEventPublisher,
			repository.NewTransactionRepository,
			service.NewCallbackService,
			newCallbackConsumer,
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

	queues := []string{consumers.CallbackQueue, publishers.EventsQueue}
	if err := conn.DeclareTopology(queues); err != nil {
		return nil, err
	}

	return conn, nil
}

func newPublisher(conn *mq.RabbitMQ) (mq.Publisher, error) {
	return conn.CreatePublisher()
}

func newConsumer(conn *mq.RabbitMQ) (mq.Consumer, error) {
	return conn.CreateConsumer()
}

func newCallbackConsumer(consumer mq.Consumer, svc service.CallbackService,
	cfg *config.Config, logger *zap.Logger) *consumers.CallbackConsumer {
	return consumers.NewCallbackConsumer(consumer, svc, cfg.Worker.Prefetch, logger)
}

func registerHooks(lc fx.Lifecycle, consumer *consumers.CallbackConsumer,
	conn *mq.RabbitMQ, logger *zap.Logger) {
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := consumer.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Fatal("Callback consumer stopped", zap.Error(err))
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
