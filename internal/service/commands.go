package service

import "time"

type ListTransactionsQuery struct {
	TrxType     string
	Status      string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	PageSize    int
}

type ConfirmTransactionCommand struct {
	TrxID       string
	ReferenceID string
}

type ChannelResultCommand struct {
	TrxID        string `json:"trx_id"`
	Status       string `json:"status"`
	ChannelTrxID string `json:"channel_trx_id"`
	ResCode      string `json:"res_code"`
	ResMsg       string `json:"res_msg"`
	Reason       string `json:"reason"`
}

type IngestTransactionCommand struct {
	TrxID     string `json:"trx_id"`
	TrxType   string `json:"trx_type"`
	TrxMethod string `json:"trx_method"`
	TrxMode   string `json:"trx_mode"`
	Amount    string `json:"amount"`
	Ccy       string `json:"ccy"`
	FeeAmount string `json:"fee_amount"`
	FeeCcy    string `json:"fee_ccy"`
	Status    string `json:"status"`
	Remark    string `json:"remark"`
	Detail    string `json:"detail"`
	Country   string `json:"country"`
}
