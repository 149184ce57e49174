package repositories

import (
	"fmt"

	"trivest/internal/models"

	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByPhone(phone string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("phone = ?", phone).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(account *models.Account) error {
	if err := r.db.Save(account).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

func (r *accountRepository) ListByReferredBy(phone string) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("referred_by = ?", phone).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list referred accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *accountRepository) SaveTransaction(tx *models.Transaction) error {
	if err := r.db.Save(tx).Error; err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *accountRepository) CreateInvestment(inv *models.Investment) error {
	if err := r.db.Create(inv).Error; err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

func (r *accountRepository) SaveInvestment(inv *models.Investment) error {
	if err := r.db.Save(inv).Error; err != nil {
		return fmt.Errorf("failed to save investment: %w", err)
	}
	return nil
}

func (r *accountRepository) SaveCoupon(coupon *models.Coupon) error {
	if err := r.db.Save(coupon).Error; err != nil {
		return fmt.Errorf("failed to save coupon: %w", err)
	}
	return nil
}

func (r *accountRepository) CreateCouponUsage(usage *models.CouponUsage) error {
	if err := r.db.Create(usage).Error; err != nil {
		return fmt.Errorf("failed to create coupon usage: %w", err)
	}
	return nil
}

func (r *accountRepository) ExecuteInTransaction(fn func(tx AccountRepository) error) error {
	return r.db.Transaction(func(dtx *gorm.DB) error {
		return fn(&accountRepository{db: dtx})
	})
}
