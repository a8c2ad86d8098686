package repository

import (
	"imeiku/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) List() ([]models.Referral, error) {
	var list []models.Referral
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *ReferralRepository) GetByCode(code string) (*models.Referral, error) {
	var ref models.Referral
	if err := r.db.Where("referral_code = ?", code).First(&ref).Error; err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *ReferralRepository) Create(ref *models.Referral) error {
	return r.db.Create(ref).Error
}

// Save writes the whole ledger record back; counter and history move
// together in one record write.
func (r *ReferralRepository) Save(ref *models.Referral) error {
	return r.db.Save(ref).Error
}

func (r *ReferralRepository) Delete(code string) error {
	res := r.db.Where("referral_code = ?", code).Delete(&models.Referral{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkUsagePaid flips one history entry from pending to paid.
func (r *ReferralRepository) MarkUsagePaid(code, orderID string) error {
	ref, err := r.GetByCode(code)
	if err != nil {
		return err
	}
	for i := range ref.History {
		if ref.History[i].OrderID == orderID {
			ref.History[i].Status = models.PayoutPaid
			return r.Save(ref)
		}
	}
	return gorm.ErrRecordNotFound
}
