package models

import (
	"time"

	"trivest/internal/money"
)

// Transaction types
const (
	TransactionTypeRecharge       = "recharge"
	TransactionTypeWithdraw       = "withdraw"
	TransactionTypeDailyIncome    = "daily_income"
	TransactionTypeReferralIncome = "referral_income"
	TransactionTypeCouponRedeem   = "coupon_redeem"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusApproved  = "approved"
	TransactionStatusRejected  = "rejected"
	TransactionStatusCompleted = "completed"
)

// Transaction is an immutable ledger fact referencing an account by
// phone number. Created once; only its status ever changes, and only
// through a pending -> approved/rejected transition. Recharge and
// withdraw entries start pending; income, commission and coupon
// entries are created already completed.
type Transaction struct {
	ID             uint         `gorm:"primarykey"`
	TransactionID  string       `gorm:"uniqueIndex;not null"`
	AccountPhone   string       `gorm:"index;not null"`
	Type           string       `gorm:"not null"`
	Status         string       `gorm:"not null;default:'pending'"`
	Amount         money.Amount `gorm:"not null"`
	WithdrawalFee  money.Amount `gorm:"default:0"` // Display only, never settled
	AmountAfterFee money.Amount `gorm:"default:0"`
	Description    string
	PaymentMethod  string // e.g. bkash, nagad, card
	PaymentNumber  string // Sender wallet number or masked card
	Metadata       JSON   `gorm:"type:jsonb"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsImmediate reports whether the type settles without approval.
func IsImmediate(txType string) bool {
	switch txType {
	case TransactionTypeDailyIncome, TransactionTypeReferralIncome, TransactionTypeCouponRedeem:
		return true
	}
	return false
}
