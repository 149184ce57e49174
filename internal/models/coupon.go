package models

import (
	"time"

	"trivest/internal/money"
)

// Coupon is a single-use-per-account bonus code. The redeemed-by set
// lives in CouponUsage rows; the unique (coupon, account) index is
// what enforces one redemption per account.
type Coupon struct {
	ID          uint         `gorm:"primarykey"`
	Code        string       `gorm:"uniqueIndex;not null"`
	BonusAmount money.Amount `gorm:"not null"`
	MaxUsage    *int         // nil = unlimited
	UsageCount  int          `gorm:"not null;default:0"`
	IsActive    bool         `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanBeUsed reports whether the usage cap still has room.
func (c *Coupon) CanBeUsed() bool {
	if c.MaxUsage == nil {
		return true
	}
	return c.UsageCount < *c.MaxUsage
}

type CouponUsage struct {
	ID           uint      `gorm:"primarykey"`
	CouponID     uint      `gorm:"not null;uniqueIndex:idx_coupon_account"`
	AccountPhone string    `gorm:"not null;uniqueIndex:idx_coupon_account"`
	RedeemedAt   time.Time `gorm:"not null"`
}
