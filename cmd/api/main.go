package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paydesk/backoffice/internal/api"
	v1 "github.com/paydesk/backoffice/internal/api/v1"
	"github.com/paydesk/backoffice/internal/api/validator"
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
			newLocation,
			publishers.NewEventPublisher,
			repository.NewTransactionRepository,
			repository.NewTransactionManager,
			service.NewTransactionService,
			service.NewConfirmService,
			service.NewStatsService,
			service.NewExportService,
			validator.New,
			v1.NewHandler,
			newFiberApp,
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

	queues := []string{consumers.IngestQueue, consumers.CallbackQueue, publishers.EventsQueue}
	if err := conn.DeclareTopology(queues); err != nil {
		return nil, err
	}

	return conn, nil
}

func newPublisher(conn *mq.RabbitMQ) (mq.Publisher, error) {
	return conn.CreatePublisher()
}

func newLocation(cfg *config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Stats.Timezone)
}

func newFiberApp(logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "backoffice-api",
		ErrorHandler: api.ErrorHandler(logger),
	})
}

func registerHooks(lc fx.Lifecycle, app *fiber.App, handler *v1.Handler,
	conn *mq.RabbitMQ, cfg *config.Config, logger *zap.Logger) {
	api.SetupRoutes(app, handler)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(":" + cfg.API.Port); err != nil {
					logger.Fatal("API server stopped", zap.Error(err))
				}
			}()

			logger.Info("API server started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := app.Shutdown(); err != nil {
				logger.Error("API server shutdown failed", zap.Error(err))
			}
			return conn.Close()
		},
	})
}
