package models

import (
	"time"
)

type BankAccount struct {
	ID       string `json:"id"`
	Bank     string `json:"bank"`
	Nomor    string `json:"nomor"`
	AtasNama string `json:"atas_nama"`
	Active   bool   `json:"active"`
}

type EWallet struct {
	ID     string `json:"id"`
	Nama   string `json:"nama"`
	Nomor  string `json:"nomor"`
	Active bool   `json:"active"`
}

type QRISConfig struct {
	Enabled bool   `json:"enabled"`
	Image   string `json:"image,omitempty"`
}

type PaymentSettings struct {
	BankAccounts []BankAccount `json:"bank_accounts"`
	EWallets     []EWallet     `json:"ewallets"`
	QRIS         QRISConfig    `json:"qris"`
}

type ReferralSettings struct {
	CommissionPercentage float64 `json:"commission_percentage"` // 0..100
	MinPayout            int64   `json:"min_payout"`
	Enabled              bool    `json:"enabled"`
}

type CompanySettings struct {
	Name      string `json:"name"`
	WhatsApp  string `json:"whatsapp"`
	Copyright string `json:"copyright"`
	Schedule  string `json:"schedule"`
	Address   string `json:"address,omitempty"`
}

// SiteSettings is a singleton row (id = 1) holding the three
// admin-editable configuration sections as typed JSON columns.
type SiteSettings struct {
	ID        uint             `gorm:"primaryKey" json:"-"`
	Payment   PaymentSettings  `gorm:"serializer:json" json:"payment"`
	Referral  ReferralSettings `gorm:"serializer:json" json:"referral"`
	Company   CompanySettings  `gorm:"serializer:json" json:"company"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (SiteSettings) TableName() string { return "site_settings" }

// DefaultSiteSettings seeds the singleton on first boot.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		ID: 1,
		Payment: PaymentSettings{
			BankAccounts: []BankAccount{},
			EWallets:     []EWallet{},
			QRIS:         QRISConfig{Enabled: false},
		},
		Referral: ReferralSettings{
			CommissionPercentage: 10,
			MinPayout:            100000,
			Enabled:              true,
		},
		Company: CompanySettings{
			Name:      "IMEI Unblock",
			WhatsApp:  "+62 812-3456-7890",
			Copyright: "IMEI Unblock. Semua hak dilindungi.",
			Schedule:  "Senin - Jumat: 09:00 - 18:00 WIB",
		},
	}
}
