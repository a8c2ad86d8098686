package repository

import (
	"errors"

	"imeiku/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the singleton settings row.
func (r *SettingsRepository) Get() (*models.SiteSettings, error) {
	var s models.SiteSettings
	if err := r.db.First(&s, 1).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) SavePayment(p models.PaymentSettings) error {
	return r.db.Model(&models.SiteSettings{}).Where("id = ?", 1).
		Update("payment", p).Error
}

func (r *SettingsRepository) SaveReferral(rs models.ReferralSettings) error {
	return r.db.Model(&models.SiteSettings{}).Where("id = ?", 1).
		Update("referral", rs).Error
}

func (r *SettingsRepository) SaveCompany(c models.CompanySettings) error {
	return r.db.Model(&models.SiteSettings{}).Where("id = ?", 1).
		Update("company", c).Error
}

// SeedDefaults inserts the default settings row if it does not exist.
func (r *SettingsRepository) SeedDefaults() error {
	var s models.SiteSettings
	err := r.db.First(&s, 1).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(models.DefaultSiteSettings()).Error
}
