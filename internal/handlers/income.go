package handlers

import (
	"fmt"

	"trivest/internal/services/income"
	"trivest/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type IncomeHandler struct {
	incomeService income.Service
}

func NewIncomeHandler(incomeService income.Service) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CheckDailyIncome settles any due daily income for the caller. The
// client invokes it on app open; there is no server-side scheduler.
func (h *IncomeHandler) CheckDailyIncome(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	result, err := h.incomeService.CheckAndCredit(c.Context(), claims.Phone)
	if err != nil {
		return utils.DomainError(c, err)
	}

	payload := fiber.Map{
		"credited":       result.Credited.Float(),
		"credited_count": result.CreditedCount,
		"already_paid":   result.AlreadyPaid,
	}
	switch {
	case result.CreditedCount > 0:
		payload["message"] = "Daily income credited"
	case result.AlreadyPaid:
		payload["message"] = "Today's income has already been credited"
	case result.HoursRemaining > 0:
		payload["message"] = fmt.Sprintf("First income available in %.1f hours", result.HoursRemaining)
		payload["hours_remaining"] = result.HoursRemaining
	default:
		payload["message"] = "No active investments eligible for income"
	}
	return utils.Success(c, payload)
}
