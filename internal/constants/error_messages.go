package constants

const (
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeStatusConflict      = "STATUS_CONFLICT"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	ErrCodeStoreUnavailable    = "STORE_UNAVAILABLE"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

const (
	ErrMsgTransactionNotFound = "transaction not found"
	ErrMsgStatusConflict      = "transaction status has changed, refresh and review before retrying"
	ErrMsgValidationFailed    = "request validation failed"
	ErrMsgInvalidRequestBody  = "failed to parse request body"
	ErrMsgStoreUnavailable    = "transaction store unavailable, retry with the same reference"
	ErrMsgInternalError       = "internal server error"
)

var errorMessages = map[string]string{
	ErrCodeTransactionNotFound: ErrMsgTransactionNotFound,
	ErrCodeStatusConflict:      ErrMsgStatusConflict,
	ErrCodeValidationFailed:    ErrMsgValidationFailed,
	ErrCodeInvalidRequestBody:  ErrMsgInvalidRequestBody,
	ErrCodeStoreUnavailable:    ErrMsgStoreUnavailable,
	ErrCodeInternalError:       ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}
