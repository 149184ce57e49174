package models

import (
	"time"

	"trivest/internal/money"
)

// Plan is the admin-managed template an investment is bought from.
type Plan struct {
	ID           uint         `gorm:"primarykey"`
	Name         string       `gorm:"not null"`
	InvestAmount money.Amount `gorm:"not null"`
	DailyIncome  money.Amount `gorm:"not null"`
	Validity     string       `gorm:"not null"`
	ImageURL     string
	IsActive     bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
