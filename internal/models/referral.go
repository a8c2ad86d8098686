package models

import (
	"time"
)

const (
	PayoutPending = "pending"
	PayoutPaid    = "paid"
)

// ReferralUsage is one attributed order in a referral's history.
type ReferralUsage struct {
	OrderID string    `json:"order_id"`
	Tanggal time.Time `json:"tanggal"`
	Komisi  int64     `json:"komisi"`
	Status  string    `json:"status"` // pending or paid
}

// Referral is the commission ledger for one referral code.
// TotalUser always equals len(History) and TotalKomisi the sum of the
// history's komisi amounts; Credit is the only path that grows either.
type Referral struct {
	ID           uint            `gorm:"primaryKey" json:"-"`
	ReferralCode string          `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	TotalUser    int             `gorm:"not null;default:0" json:"total_user"`
	TotalKomisi  int64           `gorm:"not null;default:0" json:"total_komisi"`
	History      []ReferralUsage `gorm:"serializer:json" json:"history"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Referral) TableName() string { return "referrals" }
