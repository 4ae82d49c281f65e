package transaction

import appErrors "dailypay-backend/pkg/errors"

var (
	ErrTransactionNotFound = appErrors.NotFound("Transaction not found")
	ErrInvalidAmount       = appErrors.Validation("Invalid amount", nil)
	ErrStatusChanged       = appErrors.Validation("Transaction status has changed, reload and retry", nil)
)
