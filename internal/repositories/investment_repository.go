package repositories

import (
	"fmt"

	"trivest/internal/models"

	"gorm.io/gorm"
)

// InvestmentRepository is the read surface over investments; writes
// run through AccountRepository so they join the account's unit of work.
type InvestmentRepository interface {
	GetByID(id uint) (*models.Investment, error)
	GetActiveByAccount(phone string) (*models.Investment, error)
	ListActiveByAccount(phone string) ([]models.Investment, error)
	ListByAccount(phone string) ([]models.Investment, error)
}

type investmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) InvestmentRepository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) GetByID(id uint) (*models.Investment, error) {
	var inv models.Investment
	if err := r.db.First(&inv, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvestmentNotFound
		}
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	return &inv, nil
}

func (r *investmentRepository) GetActiveByAccount(phone string) (*models.Investment, error) {
	var inv models.Investment
	err := r.db.Where("account_phone = ? AND is_active = ?", phone, true).First(&inv).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvestmentNotFound
		}
		return nil, fmt.Errorf("failed to get active investment: %w", err)
	}
	return &inv, nil
}

func (r *investmentRepository) ListActiveByAccount(phone string) ([]models.Investment, error) {
	var invs []models.Investment
	err := r.db.Where("account_phone = ? AND is_active = ?", phone, true).
		Order("invest_date ASC").
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active investments: %w", err)
	}
	return invs, nil
}

func (r *investmentRepository) ListByAccount(phone string) ([]models.Investment, error) {
	var invs []models.Investment
	err := r.db.Where("account_phone = ?", phone).
		Order("invest_date DESC").
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return invs, nil
}
