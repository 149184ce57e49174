package handlers

import (
	"trivest/internal/models"
	"trivest/internal/repositories"
	"trivest/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler covers plan and payment-setting management. All of its
// routes sit behind the admin role check.
type AdminHandler struct {
	planRepo     repositories.PlanRepository
	settingsRepo repositories.SettingsRepository
}

func NewAdminHandler(planRepo repositories.PlanRepository, settingsRepo repositories.SettingsRepository) *AdminHandler {
	return &AdminHandler{planRepo: planRepo, settingsRepo: settingsRepo}
}

func (h *AdminHandler) CreatePlan(c *fiber.Ctx) error {
	var input struct {
		Name         string      `json:"name"`
		InvestAmount interface{} `json:"invest_amount"`
		DailyIncome  interface{} `json:"daily_income"`
		Validity     string      `json:"validity"`
		ImageURL     string      `json:"image_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Name == "" || input.Validity == "" {
		return utils.BadRequest(c, "name and validity are required")
	}

	investAmount, err := parseAmountField(input.InvestAmount)
	if err != nil || investAmount <= 0 {
		return utils.BadRequest(c, "Invalid invest_amount")
	}
	dailyIncome, err := parseAmountField(input.DailyIncome)
	if err != nil || dailyIncome <= 0 {
		return utils.BadRequest(c, "Invalid daily_income")
	}

	plan := &models.Plan{
		Name:         input.Name,
		InvestAmount: investAmount,
		DailyIncome:  dailyIncome,
		Validity:     input.Validity,
		ImageURL:     input.ImageURL,
		IsActive:     true,
	}
	if err := h.planRepo.Create(plan); err != nil {
		return utils.InternalError(c, "Failed to create plan")
	}

	return utils.Success(c, fiber.Map{
		"message": "Plan created",
		"plan":    planPayload(plan),
	})
}

func (h *AdminHandler) UpdatePlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid plan id")
	}

	plan, err := h.planRepo.GetByID(uint(id))
	if err != nil {
		return utils.NotFound(c, "Plan not found")
	}

	var input struct {
		Name         *string     `json:"name"`
		InvestAmount interface{} `json:"invest_amount"`
		DailyIncome  interface{} `json:"daily_income"`
		Validity     *string     `json:"validity"`
		ImageURL     *string     `json:"image_url"`
		IsActive     *bool       `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.InvestAmount != nil {
		amount, err := parseAmountField(input.InvestAmount)
		if err != nil || amount <= 0 {
			return utils.BadRequest(c, "Invalid invest_amount")
		}
		plan.InvestAmount = amount
	}
	if input.DailyIncome != nil {
		amount, err := parseAmountField(input.DailyIncome)
		if err != nil || amount <= 0 {
			return utils.BadRequest(c, "Invalid daily_income")
		}
		plan.DailyIncome = amount
	}
	if input.Validity != nil {
		plan.Validity = *input.Validity
	}
	if input.ImageURL != nil {
		plan.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := h.planRepo.Update(plan); err != nil {
		return utils.InternalError(c, "Failed to update plan")
	}

	return utils.Success(c, fiber.Map{
		"message": "Plan updated",
		"plan":    planPayload(plan),
	})
}

func (h *AdminHandler) UpsertPaymentSetting(c *fiber.Ctx) error {
	var input struct {
		Method   string `json:"method"`
		Number   string `json:"number"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Method == "" || input.Number == "" {
		return utils.BadRequest(c, "method and number are required")
	}

	setting := &models.PaymentSetting{
		Method:   input.Method,
		Number:   input.Number,
		IsActive: true,
	}
	if input.IsActive != nil {
		setting.IsActive = *input.IsActive
	}

	if err := h.settingsRepo.Upsert(setting); err != nil {
		return utils.InternalError(c, "Failed to save payment setting")
	}

	return utils.Success(c, fiber.Map{
		"message": "Payment setting saved",
		"setting": fiber.Map{
			"method":    setting.Method,
			"number":    setting.Number,
			"is_active": setting.IsActive,
		},
	})
}

// ListPaymentSettings is public: clients need the receiving wallet
// numbers to submit a recharge.
func (h *AdminHandler) ListPaymentSettings(c *fiber.Ctx) error {
	settings, err := h.settingsRepo.ListActive()
	if err != nil {
		return utils.InternalError(c, "Failed to load payment settings")
	}

	payload := make([]fiber.Map, 0, len(settings))
	for _, s := range settings {
		payload = append(payload, fiber.Map{
			"method": s.Method,
			"number": s.Number,
		})
	}
	return utils.Success(c, fiber.Map{"settings": payload})
}
