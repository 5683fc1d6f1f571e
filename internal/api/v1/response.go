package v1

import (
	"time"

	"github.com/paydesk/backoffice/internal/model"
)

type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}

func OK(result interface{}) Response {
	return Response{Code: "SUCCESS", Message: "success", Result: result}
}

// TransactionResponse flattens a record together with the display metadata the
// console renders: human label, badge color and coarse group per status.
type TransactionResponse struct {
	TrxID         string  `json:"trx_id"`
	TrxType       string  `json:"trx_type"`
	TrxMethod     string  `json:"trx_method,omitempty"`
	TrxMode       string  `json:"trx_mode,omitempty"`
	Amount        string  `json:"amount"`
	Ccy           string  `json:"ccy"`
	FeeAmount     string  `json:"fee_amount"`
	FeeCcy        string  `json:"fee_ccy,omitempty"`
	Status        string  `json:"status"`
	StatusDisplay string  `json:"status_display"`
	StatusColor   string  `json:"status_color"`
	StatusGroup   string  `json:"status_group"`
	ChannelTrxID  *string `json:"channel_trx_id"`
	ReferenceID   *string `json:"reference_id"`
	FlowNo        *string `json:"flow_no"`
	ResCode       *string `json:"res_code"`
	ResMsg        *string `json:"res_msg"`
	Reason        *string `json:"reason"`
	Remark        string  `json:"remark,omitempty"`
	Country       string  `json:"country,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	CompletedAt   *string `json:"completed_at"`
}

type ListTransactionsResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

func toTransactionResponse(trx model.Transaction) TransactionResponse {
	return TransactionResponse{
		TrxID:         trx.TrxID,
		TrxType:       string(trx.TrxType),
		TrxMethod:     trx.TrxMethod,
		TrxMode:       trx.TrxMode,
		Amount:        trx.Amount.String(),
		Ccy:           trx.Ccy,
		FeeAmount:     trx.FeeAmount.String(),
		FeeCcy:        trx.FeeCcy,
		Status:        string(trx.Status),
		StatusDisplay: trx.Status.DisplayName(),
		StatusColor:   string(trx.Status.Color()),
		StatusGroup:   string(trx.Status.Group()),
		ChannelTrxID:  trx.ChannelTrxID,
		ReferenceID:   trx.ReferenceID,
		FlowNo:        trx.FlowNo,
		ResCode:       trx.ResCode,
		ResMsg:        trx.ResMsg,
		Reason:        trx.Reason,
		Remark:        trx.Remark,
		Country:       trx.Country,
		CreatedAt:     trx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     trx.UpdatedAt.Format(time.RFC3339),
		CompletedAt:   formatTimePtr(trx.CompletedAt),
	}
}

func toTransactionResponses(items []model.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(items))
	for _, trx := range items {
		responses = append(responses, toTransactionResponse(trx))
	}
	return responses
}

func formatTimePtr(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(time.RFC3339)
	return &formatted
}
