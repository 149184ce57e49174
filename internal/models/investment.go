package models

import (
	"time"

	"trivest/internal/money"
)

// Investment snapshots a plan's terms at purchase time so later plan
// edits never change a running investment. At most one active
// investment exists per account.
type Investment struct {
	ID              uint         `gorm:"primarykey"`
	AccountPhone    string       `gorm:"index;not null"`
	PlanID          uint         `gorm:"not null"`
	PlanName        string       `gorm:"not null"`
	InvestAmount    money.Amount `gorm:"not null"`
	DailyIncome     money.Amount `gorm:"not null"`
	Validity        string       `gorm:"not null"` // e.g. "30 days"; unparsable never expires
	InvestDate      time.Time    `gorm:"not null"`
	FirstIncomeDate time.Time    `gorm:"not null"` // InvestDate + 24h
	IsActive        bool         `gorm:"not null;default:true"`
	TotalEarned     money.Amount `gorm:"not null;default:0"`
	LastIncomeDate  *time.Time   // Per-investment daily credit gate
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
