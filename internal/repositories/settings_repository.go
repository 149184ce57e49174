package repositories

import (
	"fmt"

	"trivest/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	ListActive() ([]models.PaymentSetting, error)
	Upsert(setting *models.PaymentSetting) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) ListActive() ([]models.PaymentSetting, error) {
	var settings []models.PaymentSetting
	if err := r.db.Where("is_active = ?", true).Order("method ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment settings: %w", err)
	}
	return settings, nil
}

func (r *settingsRepository) Upsert(setting *models.PaymentSetting) error {
	var existing models.PaymentSetting
	err := r.db.Where("method = ?", setting.Method).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := r.db.Create(setting).Error; err != nil {
			return fmt.Errorf("failed to create payment setting: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up payment setting: %w", err)
	}

	existing.Number = setting.Number
	existing.IsActive = setting.IsActive
	if err := r.db.Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update payment setting: %w", err)
	}
	*setting = existing
	return nil
}
