package whatsapp

import (
	"strings"
	"testing"
	"time"

	"imeiku/internal/models"
)

func sampleOrder() *models.Order {
	created := time.Date(2025, 5, 2, 3, 30, 0, 0, time.UTC) // 10:30 WIB
	return &models.Order{
		OrderID:     "IME-ABC123-XY7Q",
		IMEI:        "356938035643809",
		Brand:       "Apple",
		Model:       "iPhone 14",
		WhatsApp:    "+6281234567890",
		LayananNama: "Unblock Permanen",
		Harga:       500000,
		Status:      models.StatusPesananDibuat,
		Timeline: []models.TimelineEntry{
			{Status: models.StatusPesananDibuat, Timestamp: created},
		},
		CreatedAt: created,
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[int64]string{
		0:       "Rp 0",
		500:     "Rp 500",
		1500:    "Rp 1.500",
		300000:  "Rp 300.000",
		1250000: "Rp 1.250.000",
	}
	for in, want := range cases {
		if got := FormatCurrency(in); got != want {
			t.Fatalf("FormatCurrency(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatTimestampJakarta(t *testing.T) {
	ts := time.Date(2025, 5, 2, 3, 30, 15, 0, time.UTC)
	got := FormatTimestamp(ts)
	if got != "2 Mei 2025 10.30.15 WIB" {
		t.Fatalf("FormatTimestamp = %q", got)
	}
}

func TestBuildLink(t *testing.T) {
	link := BuildLink("+62 812-3456-7890", "Halo admin")
	if !strings.HasPrefix(link, "https://wa.me/6281234567890?text=") {
		t.Fatalf("link = %q", link)
	}
	if !strings.Contains(link, "Halo+admin") {
		t.Fatalf("message not encoded: %q", link)
	}
}

func TestOrderConfirmationMessage(t *testing.T) {
	msg := OrderConfirmationMessage(sampleOrder(), "https://example.com/lacak?order=IME-ABC123-XY7Q")
	for _, want := range []string{
		"PESANAN BERHASIL DIBUAT",
		"IME-ABC123-XY7Q",
		"Apple iPhone 14",
		"Rp 500.000",
		"Pesanan Dibuat",
		"https://example.com/lacak?order=IME-ABC123-XY7Q",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestStatusUpdateMessageFailed(t *testing.T) {
	o := sampleOrder()
	o.Status = models.StatusGagal
	o.FailureReason = "IMEI already blacklisted"
	o.Timeline = append(o.Timeline, models.TimelineEntry{
		Status:    models.StatusGagal,
		Timestamp: o.CreatedAt.Add(time.Hour),
	})

	msg := StatusUpdateMessage(o, "https://example.com/lacak")
	if !strings.Contains(msg, "PESANAN GAGAL DIPROSES") {
		t.Fatalf("failed orders need the failure template:\n%s", msg)
	}
	if !strings.Contains(msg, "IMEI already blacklisted") {
		t.Fatal("failure reason must be embedded")
	}
}

func TestStatusUpdateMessageRegular(t *testing.T) {
	o := sampleOrder()
	o.Status = models.StatusDalamProses
	o.Timeline = append(o.Timeline, models.TimelineEntry{
		Status:    models.StatusDalamProses,
		Timestamp: o.CreatedAt.Add(time.Hour),
	})

	msg := StatusUpdateMessage(o, "https://example.com/lacak")
	if !strings.Contains(msg, "UPDATE STATUS PESANAN") {
		t.Fatalf("unexpected template:\n%s", msg)
	}
	if !strings.Contains(msg, "IMEI Dalam Proses Unblock") {
		t.Fatal("status label missing")
	}
	if strings.Contains(msg, "Alasan Kegagalan") {
		t.Fatal("regular update must not mention failure")
	}
}

func TestPaymentConfirmationMessage(t *testing.T) {
	msg := PaymentConfirmationMessage(sampleOrder())
	if !strings.Contains(msg, "KONFIRMASI PEMBAYARAN") || !strings.Contains(msg, "Rp 500.000") {
		t.Fatalf("unexpected message:\n%s", msg)
	}
}

func TestReferralShareMessage(t *testing.T) {
	msg := ReferralShareMessage("REF-ABC123", "https://imeiku.example.com/layanan")
	if !strings.Contains(msg, "*REF-ABC123*") {
		t.Fatal("referral code missing from share text")
	}
	if !strings.Contains(msg, "https://imeiku.example.com/layanan") {
		t.Fatal("catalog link missing from share text")
	}

	// The share link targets no particular number; WhatsApp asks the
	// sender to pick a chat.
	link := BuildLink("", msg)
	if !strings.HasPrefix(link, "https://wa.me/?text=") {
		t.Fatalf("unexpected share link: %s", link)
	}
	if !strings.Contains(link, "REF-ABC123") {
		t.Fatal("share link must carry the code")
	}
}
