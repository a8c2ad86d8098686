package repository

import (
	"imeiku/internal/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(o *models.Order) error {
	return r.db.Create(o).Error
}

func (r *OrderRepository) GetByOrderID(orderID string) (*models.Order, error) {
	var o models.Order
	if err := r.db.Where("order_id = ?", orderID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetLatestByIMEI returns the most recent order for an IMEI; customers
// can track with either the order number or the device IMEI.
func (r *OrderRepository) GetLatestByIMEI(imei string) (*models.Order, error) {
	var o models.Order
	err := r.db.Where("imei = ?", imei).Order("created_at DESC").First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) List() ([]models.Order, error) {
	var list []models.Order
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

// UpdateLifecycle persists the mutable lifecycle fields of an order in a
// single record write so status and timeline can never diverge.
func (r *OrderRepository) UpdateLifecycle(o *models.Order) error {
	res := r.db.Model(&models.Order{}).
		Where("order_id = ?", o.OrderID).
		Select("status", "timeline", "failure_reason", "unblock_date", "expiration_date").
		Updates(o)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepository) SetNotificationSent(orderID string, sent bool) error {
	res := r.db.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		UpdateColumn("notification_sent", sent)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the order row for good; there is no soft delete.
func (r *OrderRepository) Delete(orderID string) error {
	res := r.db.Where("order_id = ?", orderID).Delete(&models.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
