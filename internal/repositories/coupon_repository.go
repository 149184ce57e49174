package repositories

import (
	"fmt"
	"strings"

	"trivest/internal/models"

	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *models.Coupon) error
	GetByCode(code string) (*models.Coupon, error)
	HasUsed(couponID uint, phone string) (bool, error)
	ListUsages(couponID uint) ([]models.CouponUsage, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *models.Coupon) error {
	if err := r.db.Create(coupon).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return ErrDuplicateRecord
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *couponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return &coupon, nil
}

func (r *couponRepository) HasUsed(couponID uint, phone string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CouponUsage{}).
		Where("coupon_id = ? AND account_phone = ?", couponID, phone).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check coupon usage: %w", err)
	}
	return count > 0, nil
}

func (r *couponRepository) ListUsages(couponID uint) ([]models.CouponUsage, error) {
	var usages []models.CouponUsage
	err := r.db.Where("coupon_id = ?", couponID).
		Order("redeemed_at ASC").
		Find(&usages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list coupon usages: %w", err)
	}
	return usages, nil
}
