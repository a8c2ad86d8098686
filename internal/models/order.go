package models

import (
	"time"
)

// OrderStatus values are persisted as-is; the literals must not change
// or existing rows become unreadable.
type OrderStatus string

const (
	StatusPesananDibuat      OrderStatus = "pesanan_dibuat"
	StatusPembayaranDiterima OrderStatus = "pembayaran_diterima"
	StatusDalamProses        OrderStatus = "dalam_proses"
	StatusBerhasilUnblock    OrderStatus = "berhasil_unblock"
	StatusSelesai            OrderStatus = "selesai"
	StatusGagal              OrderStatus = "gagal"
)

// CanonicalStatuses is the display ordering of the happy path. gagal is
// not part of the progression; it is rendered as a banner.
var CanonicalStatuses = []OrderStatus{
	StatusPesananDibuat,
	StatusPembayaranDiterima,
	StatusDalamProses,
	StatusBerhasilUnblock,
	StatusSelesai,
}

var statusLabels = map[OrderStatus]string{
	StatusPesananDibuat:      "Pesanan Dibuat",
	StatusPembayaranDiterima: "Pembayaran Diterima",
	StatusDalamProses:        "IMEI Dalam Proses Unblock",
	StatusBerhasilUnblock:    "IMEI Berhasil Di-unblock",
	StatusSelesai:            "Pesanan Selesai",
	StatusGagal:              "Gagal",
}

// Valid reports whether s is one of the six known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusSelesai || s == StatusGagal
}

// Label returns the Indonesian display label for the status.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// TimelineEntry is one status change in the order's audit trail.
type TimelineEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// Order is one customer purchase of a service tier. IMEI, device and
// layanan fields are snapshots taken at creation time; later catalog
// edits never alter an existing order.
type Order struct {
	ID               uint            `gorm:"primaryKey" json:"-"`
	OrderID          string          `gorm:"uniqueIndex;size:40;not null" json:"order_id"`
	IMEI             string          `gorm:"column:imei;size:15;not null;index" json:"imei"`
	Brand            string          `gorm:"size:50;not null" json:"brand"`
	Model            string          `gorm:"size:100;not null" json:"model"`
	WhatsApp         string          `gorm:"size:20;not null" json:"whatsapp"`
	LayananID        string          `gorm:"size:40;not null" json:"layanan_id"`
	LayananNama      string          `gorm:"size:100;not null" json:"layanan_nama"`
	Harga            int64           `gorm:"not null" json:"harga"`
	GaransiBulan     *int            `json:"garansi_bulan,omitempty"`
	Status           OrderStatus     `gorm:"size:30;not null;index" json:"status"`
	Timeline         []TimelineEntry `gorm:"serializer:json" json:"timeline"`
	ReferralCode     string          `gorm:"size:20" json:"referral_code,omitempty"`
	PaymentProof     string          `gorm:"size:500" json:"payment_proof,omitempty"`
	PaymentMethod    string          `gorm:"size:20" json:"payment_method,omitempty"`
	NotificationSent bool            `gorm:"default:false" json:"notification_sent"`
	FailureReason    string          `gorm:"size:500" json:"failure_reason,omitempty"`
	UnblockDate      *time.Time      `json:"unblock_date,omitempty"`
	ExpirationDate   *time.Time      `json:"expiration_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"-"`
}

// No gorm.DeletedAt here: admin delete is a hard delete.
func (Order) TableName() string { return "orders" }
