package service

import (
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"imeiku/internal/models"

	"gorm.io/gorm"
)

const defaultCommissionPercentage = 10

// mintAttempts bounds the retry loop on code collisions. Six chars of
// A-Z0-9 make collisions vanishingly rare; ten tries is plenty.
const mintAttempts = 10

var (
	ErrReferralNotFound = errors.New("kode referral tidak ditemukan")
	ErrProgramDisabled  = errors.New("program referral sedang tidak aktif")
)

// ReferralStore is the slice of the referral ledger the commission
// accrual and the storefront program need.
type ReferralStore interface {
	GetByCode(code string) (*models.Referral, error)
	Create(ref *models.Referral) error
	Save(ref *models.Referral) error
}

// SettingsStore provides the singleton site configuration.
type SettingsStore interface {
	Get() (*models.SiteSettings, error)
}

// ReferralService owns the referral program: commission accrual as a
// side effect of order creation, and the storefront surface that mints
// codes and shows a code's ledger.
type ReferralService struct {
	referrals ReferralStore
	settings  SettingsStore
	now       func() time.Time
}

func NewReferralService(referrals ReferralStore, settings SettingsStore) *ReferralService {
	return &ReferralService{referrals: referrals, settings: settings, now: time.Now}
}

// Credit attributes an order to a referral code: total_user +1,
// total_komisi += harga * pct/100, one pending history entry. Unknown
// codes are skipped silently; order creation never fails because of a
// bad code. Accrual happens exactly once, at creation time, and is
// never reversed by later transitions.
func (s *ReferralService) Credit(code, orderID string, harga int64) {
	if code == "" {
		return
	}
	ref, err := s.referrals.GetByCode(code)
	if err != nil || ref == nil {
		return
	}

	komisi := s.commission(harga)
	ref.TotalUser++
	ref.TotalKomisi += komisi
	ref.History = append(ref.History, models.ReferralUsage{
		OrderID: orderID,
		Tanggal: s.now(),
		Komisi:  komisi,
		Status:  models.PayoutPending,
	})
	if err := s.referrals.Save(ref); err != nil {
		log.Printf("[referral] failed to credit %s for order %s: %v", code, orderID, err)
	}
}

func (s *ReferralService) commission(harga int64) int64 {
	pct := float64(defaultCommissionPercentage)
	if settings, err := s.settings.Get(); err == nil {
		pct = settings.Referral.CommissionPercentage
	}
	return int64(math.Round(float64(harga) * pct / 100))
}

// Program returns the current referral program configuration, falling
// back to the seeded defaults when the settings row is missing.
func (s *ReferralService) Program() (models.ReferralSettings, error) {
	settings, err := s.settings.Get()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultSiteSettings().Referral, nil
		}
		return models.ReferralSettings{}, err
	}
	return settings.Referral, nil
}

// Mint creates a fresh ledger under a newly generated code. Only a
// duplicate-key error is worth retrying; anything else is a store
// failure and is returned as-is.
func (s *ReferralService) Mint() (*models.Referral, error) {
	var lastErr error
	for i := 0; i < mintAttempts; i++ {
		ref := &models.Referral{
			ReferralCode: GenerateReferralCode(),
			History:      []models.ReferralUsage{},
		}
		err := s.referrals.Create(ref)
		if err == nil {
			return ref, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Join mints a ledger for a storefront visitor, provided the program
// is running. The back-office mints through Mint directly and is not
// gated by the enabled flag.
func (s *ReferralService) Join() (*models.Referral, error) {
	program, err := s.Program()
	if err != nil {
		return nil, err
	}
	if !program.Enabled {
		return nil, ErrProgramDisabled
	}
	return s.Mint()
}

// Ledger returns the commission ledger for a code.
func (s *ReferralService) Ledger(code string) (*models.Referral, error) {
	ref, err := s.referrals.GetByCode(strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return ref, nil
}
