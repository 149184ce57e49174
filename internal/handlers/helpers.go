package handlers

import (
	"trivest/internal/models"
	"trivest/internal/money"

	"github.com/gofiber/fiber/v2"
)

// extractUserClaims pulls the authenticated claims set by the auth
// middleware.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// parseAmountField accepts an amount sent either as a JSON number or
// as a display string like "5,000" and converts it to minor units.
func parseAmountField(v interface{}) (money.Amount, error) {
	switch val := v.(type) {
	case string:
		return money.Parse(val)
	case float64:
		return money.FromFloat(val)
	default:
		return 0, money.ErrInvalidAmount
	}
}

// accountPayload is the JSON shape for an account's monetary state.
func accountPayload(a *models.Account) fiber.Map {
	return fiber.Map{
		"phone":                   a.Phone,
		"balance":                 a.Balance.Float(),
		"earn_balance":            a.EarnBalance.Float(),
		"total_recharge":          a.TotalRecharge.Float(),
		"referral_commission":     a.ReferralCommission.Float(),
		"total_commission_earned": a.TotalCommissionEarned.Float(),
		"referred_by":             a.ReferredBy,
	}
}
