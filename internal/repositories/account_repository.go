package repositories

import "trivest/internal/models"

// AccountRepository is the write surface for compound balance
// mutations. Like the ledger itself it spans accounts, transactions,
// investments and coupons, because a single business operation
// touches several of them and must commit or fail as one unit via
// ExecuteInTransaction.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByPhone(phone string) (*models.Account, error)
	Update(account *models.Account) error
	ListByReferredBy(phone string) ([]models.Account, error)

	CreateTransaction(tx *models.Transaction) error
	SaveTransaction(tx *models.Transaction) error

	CreateInvestment(inv *models.Investment) error
	SaveInvestment(inv *models.Investment) error

	SaveCoupon(coupon *models.Coupon) error
	CreateCouponUsage(usage *models.CouponUsage) error

	// ExecuteInTransaction runs fn against a repository bound to a
	// database transaction; every write inside commits atomically.
	ExecuteInTransaction(fn func(tx AccountRepository) error) error
}
