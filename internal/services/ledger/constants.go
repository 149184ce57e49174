package ledger

import "trivest/internal/money"

// Request thresholds, enforced at creation time.
var (
	MinRecharge   = money.FromMajor(1000)
	MinWithdrawal = money.FromMajor(300)
)

// WithdrawalFeePercent is applied to the displayed payout only; the
// ledger settles the full requested amount.
const WithdrawalFeePercent = 25

// Default history page size
const DefaultHistoryLimit = 20
