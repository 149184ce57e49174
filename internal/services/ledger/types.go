package ledger

import (
	"context"

	"trivest/internal/models"
	"trivest/internal/money"
)

// PaymentMeta carries the external payment details attached to a
// recharge or withdrawal request. It never affects settlement.
type PaymentMeta struct {
	Method string // bkash, nagad, rocket, card
	Number string // sender wallet number / payout number / masked card
	Extra  map[string]interface{}
}

// Service is the transaction ledger: every money-affecting request is
// recorded here, and account balances mutate only on terminal
// approval (or immediately, for the non-approval income types).
type Service interface {
	CreateRecharge(ctx context.Context, phone string, amount money.Amount, meta PaymentMeta) (*models.Transaction, error)
	CreateWithdrawal(ctx context.Context, phone string, amount money.Amount, meta PaymentMeta) (*models.Transaction, error)
	Approve(ctx context.Context, transactionID string) (*models.Transaction, error)
	Reject(ctx context.Context, transactionID string) (*models.Transaction, error)
	RecordImmediate(ctx context.Context, phone, txType string, amount money.Amount, description string) (*models.Transaction, error)

	GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error)
	History(ctx context.Context, phone string, limit, offset int) ([]models.Transaction, error)
	ListPending(ctx context.Context, limit, offset int) ([]models.Transaction, error)
}

// AccountCache is the cache invalidation surface the ledger needs.
type AccountCache interface {
	InvalidateAccount(ctx context.Context, phone string)
}

// AccountLocker serializes compound mutations per account.
type AccountLocker interface {
	Lock(key string)
	Unlock(key string)
}

// MetricsCollector records ledger activity.
type MetricsCollector interface {
	RecordTransaction(txType string, amount float64)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransaction(string, float64) {}
func (n *NoopMetricsCollector) RecordError(string, string)        {}
