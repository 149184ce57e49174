package models

import "time"

// PaymentSetting holds the receiving wallet number shown to users for
// a given recharge method (bkash, nagad, rocket, ...).
type PaymentSetting struct {
	ID        uint   `gorm:"primarykey"`
	Method    string `gorm:"uniqueIndex;not null"`
	Number    string `gorm:"not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
