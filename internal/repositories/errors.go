package repositories

import "errors"

// Repository errors
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvestmentNotFound  = errors.New("investment not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrSettingNotFound     = errors.New("payment setting not found")
	ErrDuplicateRecord     = errors.New("duplicate record")
)
