package coupon

import domainerrors "trivest/internal/errors"

// Service errors
var (
	ErrCouponNotFound = domainerrors.New(
		domainerrors.KindNotFound, "COUPON_NOT_FOUND", "coupon not found")
	ErrCouponInactive = domainerrors.New(
		domainerrors.KindConflict, "COUPON_INACTIVE", "coupon is not active")
	ErrUsageExceeded = domainerrors.New(
		domainerrors.KindConflict, "COUPON_USAGE_EXCEEDED", "coupon usage limit reached")
	ErrAlreadyUsed = domainerrors.New(
		domainerrors.KindConflict, "COUPON_ALREADY_USED", "coupon already redeemed by this account")
	ErrCodeExists = domainerrors.New(
		domainerrors.KindConflict, "COUPON_CODE_EXISTS", "coupon code already exists")
)
