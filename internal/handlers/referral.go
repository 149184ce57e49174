package handlers

import (
	"trivest/internal/services/referral"
	"trivest/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReferralHandler struct {
	referralService referral.Service
}

func NewReferralHandler(referralService referral.Service) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

func memberPayloads(members []referral.Member) []fiber.Map {
	out := make([]fiber.Map, 0, len(members))
	for _, m := range members {
		out = append(out, fiber.Map{
			"phone":    m.Phone,
			"activity": m.Activity.Float(),
		})
	}
	return out
}

func breakdownPayload(b *referral.Breakdown) fiber.Map {
	return fiber.Map{
		"level_a":           memberPayloads(b.LevelA),
		"level_b":           memberPayloads(b.LevelB),
		"level_c":           memberPayloads(b.LevelC),
		"level_a_income":    b.LevelAIncome.Float(),
		"level_b_income":    b.LevelBIncome.Float(),
		"level_c_income":    b.LevelCIncome.Float(),
		"total_team_income": b.TotalTeamIncome.Float(),
	}
}

// GetTeam returns the caller's three-level downstream tree with each
// member's activity and the per-level commission totals.
func (h *ReferralHandler) GetTeam(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	breakdown, err := h.referralService.Compute(c.Context(), claims.Phone)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.Map{"team": breakdownPayload(breakdown)})
}

// ApplyCommission recomputes the caller's team commission and credits
// the outstanding amount.
func (h *ReferralHandler) ApplyCommission(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	result, err := h.referralService.Apply(c.Context(), claims.Phone)
	if err != nil {
		return utils.DomainError(c, err)
	}

	msg := "Commission credited"
	if result.Credited <= 0 {
		msg = "No commission available"
	}
	return utils.Success(c, fiber.Map{
		"message":  msg,
		"credited": result.Credited.Float(),
		"team":     breakdownPayload(&result.Breakdown),
	})
}
