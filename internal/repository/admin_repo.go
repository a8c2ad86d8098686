package repository

import (
	"imeiku/internal/models"

	"gorm.io/gorm"
)

// DashboardStats mirrors the back-office overview cards.
type DashboardStats struct {
	TotalOrders     int64 `json:"total_orders"`
	ActiveOrders    int64 `json:"active_orders"`
	CompletedOrders int64 `json:"completed_orders"`
	FailedOrders    int64 `json:"failed_orders"`
	TotalRevenue    int64 `json:"total_revenue"`
	TotalReferrals  int64 `json:"total_referrals"`
	TotalCommission int64 `json:"total_commission"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByUsername(username string) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepository) Create(u *models.AdminUser) error {
	return r.db.Create(u).Error
}

func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	r.db.Model(&models.Order{}).Count(&s.TotalOrders)
	// "active" is everything not yet selesai, matching the storefront's
	// dashboard cards (failed orders count as active there too).
	r.db.Model(&models.Order{}).Where("status <> ?", models.StatusSelesai).Count(&s.ActiveOrders)
	r.db.Model(&models.Order{}).Where("status = ?", models.StatusSelesai).Count(&s.CompletedOrders)
	r.db.Model(&models.Order{}).Where("status = ?", models.StatusGagal).Count(&s.FailedOrders)

	var rev struct{ Total int64 }
	r.db.Model(&models.Order{}).Select("COALESCE(SUM(harga), 0) as total").Scan(&rev)
	s.TotalRevenue = rev.Total

	r.db.Model(&models.Referral{}).Count(&s.TotalReferrals)

	var kom struct{ Total int64 }
	r.db.Model(&models.Referral{}).Select("COALESCE(SUM(total_komisi), 0) as total").Scan(&kom)
	s.TotalCommission = kom.Total

	return &s, nil
}
