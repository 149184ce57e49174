package repositories

import (
	"trivest/internal/models"
	"trivest/internal/money"
)

// TransactionRepository is the read surface over the ledger.
type TransactionRepository interface {
	GetByTransactionID(transactionID string) (*models.Transaction, error)
	ListByAccount(phone string, limit, offset int) ([]models.Transaction, error)
	ListByStatus(status string, limit, offset int) ([]models.Transaction, error)
	// SumSettledByAccount totals an account's terminally settled
	// (approved or completed) transactions of the given types; the
	// referral engine uses it for lifetime activity sums.
	SumSettledByAccount(phone string, types []string) (money.Amount, error)
}
