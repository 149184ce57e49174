package handlers

import (
	"time"

	"trivest/internal/models"
	"trivest/internal/services/investment"
	"trivest/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type InvestmentHandler struct {
	investmentService investment.Service
}

func NewInvestmentHandler(investmentService investment.Service) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

func planPayload(p *models.Plan) fiber.Map {
	return fiber.Map{
		"id":            p.ID,
		"name":          p.Name,
		"invest_amount": p.InvestAmount.Float(),
		"daily_income":  p.DailyIncome.Float(),
		"validity":      p.Validity,
		"image_url":     p.ImageURL,
	}
}

func investmentPayload(inv *models.Investment, now time.Time) fiber.Map {
	return fiber.Map{
		"id":                inv.ID,
		"plan_id":           inv.PlanID,
		"plan_name":         inv.PlanName,
		"invest_amount":     inv.InvestAmount.Float(),
		"daily_income":      inv.DailyIncome.Float(),
		"validity":          inv.Validity,
		"invest_date":       inv.InvestDate,
		"first_income_date": inv.FirstIncomeDate,
		"is_active":         inv.IsActive,
		"total_earned":      inv.TotalEarned.Float(),
		"remaining_days":    investment.RemainingDays(inv, now),
	}
}

func (h *InvestmentHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.investmentService.ActivePlans(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to load plans")
	}

	payload := make([]fiber.Map, 0, len(plans))
	for i := range plans {
		payload = append(payload, planPayload(&plans[i]))
	}
	return utils.Success(c, fiber.Map{"plans": payload})
}

func (h *InvestmentHandler) Purchase(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		PlanID uint `json:"plan_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.PlanID == 0 {
		return utils.BadRequest(c, "plan_id is required")
	}

	inv, err := h.investmentService.Purchase(c.Context(), claims.Phone, input.PlanID)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":    "Plan purchased",
		"investment": investmentPayload(inv, time.Now()),
	})
}

func (h *InvestmentHandler) ListInvestments(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	// Expired plans get swept on read so listings never show a stale
	// active flag.
	if _, err := h.investmentService.DeactivateExpired(c.Context(), claims.Phone); err != nil {
		return utils.InternalError(c, "Failed to refresh investments")
	}

	invs, err := h.investmentService.ListForAccount(c.Context(), claims.Phone)
	if err != nil {
		return utils.InternalError(c, "Failed to load investments")
	}

	now := time.Now()
	payload := make([]fiber.Map, 0, len(invs))
	for i := range invs {
		payload = append(payload, investmentPayload(&invs[i], now))
	}
	return utils.Success(c, fiber.Map{"investments": payload})
}

func (h *InvestmentHandler) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid investment id")
	}

	if err := h.investmentService.Cancel(c.Context(), uint(id)); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "Investment cancelled"})
}
