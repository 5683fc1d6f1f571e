package v1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paydesk/backoffice/internal/constants"
	"github.com/paydesk/backoffice/internal/service"
)

type ConfirmRequest struct {
	ReferenceID string `json:"reference_id" validate:"required"`
	DryRun      bool   `json:"dry_run"`
}

// listQuery maps the console's filter bar onto the list command. Empty params
// fall through to service-side defaults; a malformed date is an error rather
// than a silently widened result set.
func listQuery(c *fiber.Ctx) (service.ListTransactionsQuery, error) {
	createdFrom, err := parseTimeParam(c.Query("created_from"))
	if err != nil {
		return service.ListTransactionsQuery{}, service.NewServiceError(constants.ErrCodeValidationFailed, err)
	}

	createdTo, err := parseTimeParam(c.Query("created_to"))
	if err != nil {
		return service.ListTransactionsQuery{}, service.NewServiceError(constants.ErrCodeValidationFailed, err)
	}

	return service.ListTransactionsQuery{
		TrxType:     c.Query("trx_type"),
		Status:      c.Query("status"),
		Search:      c.Query("search"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
		Page:        c.QueryInt("page", 1),
		PageSize:    c.QueryInt("page_size", 0),
	}, nil
}

func parseTimeParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, nil
	}

	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed, nil
	}

	return nil, fmt.Errorf("invalid date %q", raw)
}
