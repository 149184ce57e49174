package models

import (
	"time"

	"trivest/internal/money"
)

// Account holds the authoritative monetary state for one user, keyed
// by phone number. EarnBalance is a running total of everything ever
// credited as income/bonus/commission; it is mirrored into Balance
// rather than spent separately.
type Account struct {
	ID                    uint         `gorm:"primarykey"`
	Phone                 string       `gorm:"uniqueIndex;not null"`
	Balance               money.Amount `gorm:"not null;default:0"`
	EarnBalance           money.Amount `gorm:"not null;default:0"`
	TotalRecharge         money.Amount `gorm:"not null;default:0"`
	ReferralCommission    money.Amount `gorm:"not null;default:0"`
	TotalCommissionEarned money.Amount `gorm:"not null;default:0"`
	ReferredBy            string       `gorm:"index;default:''"` // Upstream account's phone number
	LastDailyIncomeDate   *time.Time   // Last calendar date a daily credit was applied
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
