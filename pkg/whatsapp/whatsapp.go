// Package whatsapp composes the outbound WhatsApp texts for orders.
// It only produces strings and wa.me deep links; actually opening the
// chat stays with the caller.
package whatsapp

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"imeiku/internal/models"
)

var jakarta = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}()

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatTimestamp renders a time in Jakarta local time the way the
// storefront shows it, e.g. "2 Januari 2025 15.04.05 WIB".
func FormatTimestamp(t time.Time) string {
	t = t.In(jakarta)
	return fmt.Sprintf("%d %s %d %02d.%02d.%02d WIB",
		t.Day(), monthNames[t.Month()-1], t.Year(), t.Hour(), t.Minute(), t.Second())
}

// FormatCurrency renders an IDR amount with Indonesian grouping,
// e.g. 300000 -> "Rp 300.000".
func FormatCurrency(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}

var nonPhone = regexp.MustCompile(`[^\d+]`)

// BuildLink returns a wa.me deep link that opens a chat with the given
// number and the message prefilled.
func BuildLink(phone, message string) string {
	clean := nonPhone.ReplaceAllString(phone, "")
	clean = strings.TrimPrefix(clean, "+")
	return "https://wa.me/" + clean + "?text=" + url.QueryEscape(message)
}

const divider = "━━━━━━━━━━━━━━━━"

// OrderConfirmationMessage is sent by the customer to confirm their new
// order.
func OrderConfirmationMessage(o *models.Order, trackingURL string) string {
	return fmt.Sprintf(`🎉 *PESANAN BERHASIL DIBUAT*

📋 *Detail Pesanan:*
%s
Nomor Pesanan: *%s*
IMEI: %s
Device: %s %s
Layanan: %s
Harga: %s
%s

📍 *Status:* %s
🕐 *Waktu:* %s

🔗 *Lacak Pesanan:*
%s

Terima kasih telah menggunakan layanan kami! 🙏`,
		divider, o.OrderID, o.IMEI, o.Brand, o.Model, o.LayananNama,
		FormatCurrency(o.Harga), divider, o.Status.Label(),
		FormatTimestamp(o.CreatedAt), trackingURL)
}

// NewOrderMessage notifies the admin that a paid order came in.
func NewOrderMessage(o *models.Order, trackingURL string) string {
	return fmt.Sprintf(`🆕 *PESANAN BARU*

📋 *Detail Pesanan:*
%s
Nomor Pesanan: *%s*
IMEI: %s
Device: %s %s
Layanan: %s
Harga: %s
%s

📞 *WhatsApp Customer:* %s
🕐 *Waktu Order:* %s

🔗 *Lacak:* %s

*Bukti pembayaran sudah di-upload.*`,
		divider, o.OrderID, o.IMEI, o.Brand, o.Model, o.LayananNama,
		FormatCurrency(o.Harga), divider, o.WhatsApp,
		FormatTimestamp(o.CreatedAt), trackingURL)
}

// StatusUpdateMessage tells the customer about a status change. Failed
// orders get their own template embedding the failure reason.
func StatusUpdateMessage(o *models.Order, trackingURL string) string {
	updatedAt := o.CreatedAt
	if n := len(o.Timeline); n > 0 {
		updatedAt = o.Timeline[n-1].Timestamp
	}

	if o.Status == models.StatusGagal {
		reason := o.FailureReason
		if reason == "" {
			reason = "Tidak tersedia"
		}
		return fmt.Sprintf(`⚠️ *PESANAN GAGAL DIPROSES*

📋 *Nomor Pesanan:* %s
%s

📍 *Status:* Gagal
🕐 *Waktu Update:* %s

IMEI: %s
Device: %s %s

❌ *Alasan Kegagalan:*
%s

🔗 *Detail Pesanan:*
%s

Silakan hubungi kami untuk informasi lebih lanjut. 🙏`,
			o.OrderID, divider, FormatTimestamp(updatedAt),
			o.IMEI, o.Brand, o.Model, reason, trackingURL)
	}

	return fmt.Sprintf(`📢 *UPDATE STATUS PESANAN*

📋 *Nomor Pesanan:* %s
%s

📍 *Status Baru:* %s
🕐 *Waktu Update:* %s

IMEI: %s
Device: %s %s

🔗 *Lacak Pesanan:*
%s

Terima kasih! 🙏`,
		o.OrderID, divider, o.Status.Label(), FormatTimestamp(updatedAt),
		o.IMEI, o.Brand, o.Model, trackingURL)
}

// PaymentConfirmationMessage is sent by the customer to the admin after
// uploading proof of payment.
func PaymentConfirmationMessage(o *models.Order) string {
	return fmt.Sprintf(`💳 *KONFIRMASI PEMBAYARAN*

📋 *Detail Pesanan:*
%s
Nomor Pesanan: *%s*
IMEI: %s
Device: %s %s
Layanan: %s
%s

💰 *Total Pembayaran:* %s

Saya sudah melakukan pembayaran untuk pesanan di atas.
Mohon diproses segera. Terima kasih! 🙏`,
		divider, o.OrderID, o.IMEI, o.Brand, o.Model, o.LayananNama,
		divider, FormatCurrency(o.Harga))
}

// ReferralShareMessage is the storefront share text for spreading a
// referral code. servicesURL points at the public service catalog.
func ReferralShareMessage(code, servicesURL string) string {
	return fmt.Sprintf(`🎁 *Dapatkan layanan IMEI Unblock dengan diskon khusus!*

Gunakan kode referral saya: *%s*

Kunjungi: %s

Layanan unblock IMEI cepat, aman, dan terpercaya! 🚀`, code, servicesURL)
}
