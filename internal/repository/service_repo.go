package repository

import (
	"imeiku/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List() ([]models.Service, error) {
	var list []models.Service
	err := r.db.Order("harga ASC").Find(&list).Error
	return list, err
}

func (r *ServiceRepository) ListActive() ([]models.Service, error) {
	var list []models.Service
	err := r.db.Where("active = ?", true).Order("harga ASC").Find(&list).Error
	return list, err
}

func (r *ServiceRepository) GetByServiceID(serviceID string) (*models.Service, error) {
	var s models.Service
	if err := r.db.Where("service_id = ?", serviceID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActiveByServiceID is the lookup used for the order-time snapshot;
// inactive tiers cannot be purchased.
func (r *ServiceRepository) GetActiveByServiceID(serviceID string) (*models.Service, error) {
	var s models.Service
	err := r.db.Where("service_id = ? AND active = ?", serviceID, true).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert creates or replaces a catalog entry keyed by service_id.
func (r *ServiceRepository) Upsert(s *models.Service) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "service_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"nama", "harga", "estimasi", "garansi", "garansi_bulan", "success_rate", "active", "updated_at",
		}),
	}).Create(s).Error
}

func (r *ServiceRepository) Delete(serviceID string) error {
	res := r.db.Where("service_id = ?", serviceID).Delete(&models.Service{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
