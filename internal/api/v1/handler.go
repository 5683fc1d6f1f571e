package v1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paydesk/backoffice/internal/api/validator"
	"github.com/paydesk/backoffice/internal/constants"
	"github.com/paydesk/backoffice/internal/metrics"
	"github.com/paydesk/backoffice/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	transactions service.TransactionService
	confirm      service.ConfirmService
	stats        service.StatsService
	export       service.ExportService
	validator    *validator.XValidator
	logger       *zap.Logger
}

func NewHandler(transactions service.TransactionService, confirm service.ConfirmService,
	stats service.StatsService, export service.ExportService,
	xv *validator.XValidator, logger *zap.Logger) *Handler {
	return &Handler{
		transactions: transactions,
		confirm:      confirm,
		stats:        stats,
		export:       export,
		validator:    xv,
		logger:       logger,
	}
}

func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	query, err := listQuery(c)
	if err != nil {
		return err
	}

	result, err := h.transactions.List(c.Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(OK(ListTransactionsResponse{
		Items:      toTransactionResponses(result.Items),
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}))
}

func (h *Handler) GetTransaction(c *fiber.Ctx) error {
	trx, err := h.transactions.Detail(c.Context(), c.Params("trx_id"))
	if err != nil {
		return err
	}

	return c.JSON(OK(toTransactionResponse(*trx)))
}

func (h *Handler) TodayStats(c *fiber.Ctx) error {
	trxType := c.Query("trx_type", "PAYOUT")

	stats, err := h.stats.Today(c.Context(), trxType)
	if err != nil {
		return err
	}

	return c.JSON(OK(stats))
}

// ConfirmTransaction runs one phase of the two-phase payout confirmation.
// dry_run=true only validates and echoes the record for operator review;
// dry_run=false performs the guarded commit.
func (h *Handler) ConfirmTransaction(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		return service.NewServiceError(constants.ErrCodeValidationFailed,
			fmt.Errorf("%s", validator.Describe(errs)))
	}

	cmd := service.ConfirmTransactionCommand{
		TrxID:       c.Params("trx_id"),
		ReferenceID: req.ReferenceID,
	}

	phase, run := "commit", h.confirm.Commit
	if req.DryRun {
		phase, run = "propose", h.confirm.Propose
	}

	trx, err := run(c.Context(), cmd)
	if err != nil {
		metrics.RecordConfirmation(phase, "rejected")
		return err
	}

	metrics.RecordConfirmation(phase, "ok")

	return c.JSON(OK(toTransactionResponse(*trx)))
}

func (h *Handler) ExportTransactions(c *fiber.Ctx) error {
	query, err := listQuery(c)
	if err != nil {
		return err
	}

	file, err := h.export.Export(c.Context(), query)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := file.Write(c.Response().BodyWriter()); err != nil {
		h.logger.Error("Failed to stream export", zap.Error(err))
		return service.NewServiceError(constants.ErrCodeInternalError, err)
	}

	return nil
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.JSON(OK("pong"))
}
