package handlers

import (
	"trivest/internal/models"
	"trivest/internal/services/ledger"
	"trivest/internal/services/payment"
	"trivest/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	ledgerService ledger.Service
}

func NewTransactionHandler(ledgerService ledger.Service) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

func transactionPayload(tx *models.Transaction) fiber.Map {
	m := fiber.Map{
		"transaction_id": tx.TransactionID,
		"account_phone":  tx.AccountPhone,
		"type":           tx.Type,
		"status":         tx.Status,
		"amount":         tx.Amount.Float(),
		"description":    tx.Description,
		"payment_method": tx.PaymentMethod,
		"payment_number": tx.PaymentNumber,
		"created_at":     tx.CreatedAt,
	}
	if tx.Type == models.TransactionTypeWithdraw {
		m["withdrawal_fee"] = tx.WithdrawalFee.Float()
		m["amount_after_fee"] = tx.AmountAfterFee.Float()
	}
	return m
}

func (h *TransactionHandler) CreateRecharge(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount        interface{}        `json:"amount"`
		PaymentMethod string             `json:"payment_method"`
		PaymentNumber string             `json:"payment_number"`
		Card          *payment.CardInput `json:"card"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	amount, err := parseAmountField(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}

	meta := ledger.PaymentMeta{
		Method: input.PaymentMethod,
		Number: input.PaymentNumber,
	}
	if input.Card != nil {
		token, err := payment.TokenizeCard(*input.Card)
		if err != nil {
			return utils.BadRequest(c, err.Error())
		}
		meta.Method = "card"
		meta.Number = token.Last4
		meta.Extra = map[string]interface{}{
			"card_token": token.Token,
			"card_type":  token.CardType,
		}
	}

	tx, err := h.ledgerService.CreateRecharge(c.Context(), claims.Phone, amount, meta)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Recharge request submitted",
		"transaction": transactionPayload(tx),
	})
}

func (h *TransactionHandler) CreateWithdrawal(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount        interface{} `json:"amount"`
		PaymentMethod string      `json:"payment_method"`
		PaymentNumber string      `json:"payment_number"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	amount, err := parseAmountField(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}

	tx, err := h.ledgerService.CreateWithdrawal(c.Context(), claims.Phone, amount, ledger.PaymentMeta{
		Method: input.PaymentMethod,
		Number: input.PaymentNumber,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Withdrawal request submitted",
		"transaction": transactionPayload(tx),
	})
}

func (h *TransactionHandler) History(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", ledger.DefaultHistoryLimit)
	offset := c.QueryInt("offset", 0)

	txs, err := h.ledgerService.History(c.Context(), claims.Phone, limit, offset)
	if err != nil {
		return utils.InternalError(c, "Failed to load history")
	}

	payload := make([]fiber.Map, 0, len(txs))
	for i := range txs {
		payload = append(payload, transactionPayload(&txs[i]))
	}
	return utils.Success(c, fiber.Map{"transactions": payload})
}

// Admin endpoints

func (h *TransactionHandler) ListPending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", ledger.DefaultHistoryLimit)
	offset := c.QueryInt("offset", 0)

	txs, err := h.ledgerService.ListPending(c.Context(), limit, offset)
	if err != nil {
		return utils.InternalError(c, "Failed to load pending transactions")
	}

	payload := make([]fiber.Map, 0, len(txs))
	for i := range txs {
		payload = append(payload, transactionPayload(&txs[i]))
	}
	return utils.Success(c, fiber.Map{"transactions": payload})
}

func (h *TransactionHandler) Review(c *fiber.Ctx) error {
	transactionID := c.Params("id")

	var input struct {
		Action string `json:"action"` // approve | reject
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	var tx *models.Transaction
	var err error
	switch input.Action {
	case "approve":
		tx, err = h.ledgerService.Approve(c.Context(), transactionID)
	case "reject":
		tx, err = h.ledgerService.Reject(c.Context(), transactionID)
	default:
		return utils.BadRequest(c, "Action must be approve or reject")
	}
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Transaction " + tx.Status,
		"transaction": transactionPayload(tx),
	})
}
