package service

import "errors"

var (
	ErrEmptyReference  = errors.New("EMPTY_REFERENCE_ID")
	ErrInvalidPage     = errors.New("INVALID_PAGE")
	ErrNotPayout       = errors.New("NOT_A_PAYOUT")
	ErrNotConfirmable  = errors.New("NOT_CONFIRMABLE")
	ErrUnknownTrxType  = errors.New("UNKNOWN_TRX_TYPE")
	ErrUnknownCallback = errors.New("UNKNOWN_CALLBACK_RESULT")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
