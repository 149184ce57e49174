package ledger

import domainerrors "trivest/internal/errors"

// Service errors
var (
	ErrTransactionNotFound = domainerrors.New(
		domainerrors.KindNotFound, "TRANSACTION_NOT_FOUND", "transaction not found")
	ErrInvalidAction = domainerrors.New(
		domainerrors.KindConflict, "INVALID_ACTION", "transaction cannot transition from its current status")
	ErrBelowMinimumRecharge = domainerrors.New(
		domainerrors.KindValidation, "BELOW_MINIMUM_RECHARGE", "recharge amount is below the minimum of 1000")
	ErrBelowMinimumWithdrawal = domainerrors.New(
		domainerrors.KindValidation, "BELOW_MINIMUM_WITHDRAWAL", "withdrawal amount is below the minimum of 300")
	ErrUnsupportedType = domainerrors.New(
		domainerrors.KindValidation, "UNSUPPORTED_TYPE", "unsupported transaction type")
)
