package api

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	v1 "github.com/paydesk/backoffice/internal/api/v1"
	"github.com/paydesk/backoffice/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Use(metrics.HTTPMiddleware())

	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	transactions := api.Group("/transactions")
	transactions.Get("/", handler.ListTransactions)
	transactions.Get("/export", handler.ExportTransactions)
	transactions.Get("/stats/today", handler.TodayStats)
	transactions.Get("/:trx_id", handler.GetTransaction)
	transactions.Post("/:trx_id/confirm", handler.ConfirmTransaction)
}
