package models

import (
	"time"
)

// Service is a purchasable tier in the catalog. Orders copy nama, harga
// and garansi_bulan at creation time and never join back to this table.
type Service struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	ServiceID    string    `gorm:"uniqueIndex;size:40;not null" json:"service_id"`
	Nama         string    `gorm:"size:100;not null" json:"nama"`
	Harga        int64     `gorm:"not null" json:"harga"`
	Estimasi     string    `gorm:"size:100" json:"estimasi"`
	Garansi      string    `gorm:"size:100" json:"garansi"`
	GaransiBulan *int      `json:"garansi_bulan,omitempty"`
	SuccessRate  int       `gorm:"not null;default:0" json:"success_rate"`
	Active       bool      `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "services" }
