package handlers

import (
	"trivest/internal/services/coupon"
	"trivest/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CouponHandler struct {
	couponService coupon.Service
}

func NewCouponHandler(couponService coupon.Service) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

func (h *CouponHandler) Redeem(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Code == "" {
		return utils.BadRequest(c, "code is required")
	}

	result, err := h.couponService.Redeem(c.Context(), input.Code, claims.Phone)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Coupon redeemed",
		"bonus":       result.Bonus.Float(),
		"new_balance": result.NewBalance.Float(),
	})
}

// CreateCoupon is admin-only.
func (h *CouponHandler) CreateCoupon(c *fiber.Ctx) error {
	var input struct {
		Code     string      `json:"code"`
		Bonus    interface{} `json:"bonus"`
		MaxUsage *int        `json:"max_usage"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	bonus, err := parseAmountField(input.Bonus)
	if err != nil {
		return utils.BadRequest(c, "Invalid bonus amount")
	}

	created, err := h.couponService.Create(c.Context(), input.Code, bonus, input.MaxUsage)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Coupon created",
		"coupon": fiber.Map{
			"id":        created.ID,
			"code":      created.Code,
			"bonus":     created.BonusAmount.Float(),
			"max_usage": created.MaxUsage,
			"is_active": created.IsActive,
		},
	})
}
