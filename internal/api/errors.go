package api

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	v1 "github.com/paydesk/backoffice/internal/api/v1"
	"github.com/paydesk/backoffice/internal/constants"
	"github.com/paydesk/backoffice/internal/service"
	"go.uber.org/zap"
)

var statusByCode = map[string]int{
	constants.ErrCodeTransactionNotFound: fiber.StatusNotFound,
	constants.ErrCodeStatusConflict:      fiber.StatusConflict,
	constants.ErrCodeValidationFailed:    fiber.StatusUnprocessableEntity,
	constants.ErrCodeInvalidRequestBody:  fiber.StatusBadRequest,
	constants.ErrCodeStoreUnavailable:    fiber.StatusServiceUnavailable,
	constants.ErrCodeInternalError:       fiber.StatusInternalServerError,
}

// ErrorHandler turns service errors into the envelope the console expects.
// Unrecognized errors are logged and collapsed to INTERNAL_ERROR so no raw
// driver message leaks to the operator.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var svcErr service.Error
		if stderrors.As(err, &svcErr) {
			status, ok := statusByCode[svcErr.Code]
			if !ok {
				status = fiber.StatusInternalServerError
			}

			return c.Status(status).JSON(v1.Response{
				Code:    svcErr.Code,
				Message: constants.GetErrorMessage(svcErr.Code),
			})
		}

		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(v1.Response{
				Code:    constants.ErrCodeInternalError,
				Message: fiberErr.Message,
			})
		}

		logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(v1.Response{
			Code:    constants.ErrCodeInternalError,
			Message: constants.ErrMsgInternalError,
		})
	}
}
