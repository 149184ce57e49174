package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Phone               string `gorm:"uniqueIndex;not null"` // External account identifier
	Password            string `gorm:"not null"`
	Name                string `gorm:"not null"`
	Role                string `gorm:"default:'user'"`
	Status              string `gorm:"default:'active'"`
	TokenVersion        int    `gorm:"default:1"`
	FailedLoginAttempts int    `gorm:"default:0"`
}
