package service

import (
	"errors"
	"strings"
	"time"

	"imeiku/internal/domain"
	"imeiku/internal/models"
	"imeiku/internal/validate"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound   = errors.New("pesanan tidak ditemukan")
	ErrServiceNotFound = errors.New("layanan tidak ditemukan atau tidak aktif")
	ErrInvalidIMEI     = errors.New("IMEI harus 15 digit angka")
	ErrInvalidStatus   = errors.New("status pesanan tidak dikenal")
	ErrTerminalState   = errors.New("pesanan sudah berada di status akhir")
	ErrReasonRequired  = errors.New("alasan kegagalan wajib diisi")
	ErrInvalidPayment  = errors.New("metode pembayaran tidak dikenal")
)

// OrderStore is the persistence the lifecycle depends on. The gorm
// repository satisfies it; tests plug in an in-memory fake.
type OrderStore interface {
	Create(o *models.Order) error
	GetByOrderID(orderID string) (*models.Order, error)
	GetLatestByIMEI(imei string) (*models.Order, error)
	List() ([]models.Order, error)
	UpdateLifecycle(o *models.Order) error
	SetNotificationSent(orderID string, sent bool) error
	Delete(orderID string) error
}

// CatalogStore is the single read the snapshot needs at creation time.
type CatalogStore interface {
	GetActiveByServiceID(serviceID string) (*models.Service, error)
}

// OrderService owns the order lifecycle: creation with catalog
// snapshot, the status state machine with its timeline audit trail,
// guarantee-date computation and the referral credit side effect.
type OrderService struct {
	orders    OrderStore
	catalog   CatalogStore
	referrals *ReferralService
	now       func() time.Time
}

func NewOrderService(orders OrderStore, catalog CatalogStore, referrals *ReferralService) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, referrals: referrals, now: time.Now}
}

type CreateOrderInput struct {
	IMEI          string
	Brand         string
	Model         string
	WhatsApp      string
	LayananID     string
	ReferralCode  string
	PaymentProof  string
	PaymentMethod string
}

// Create validates the submission, snapshots the chosen service tier
// and writes the order in its initial state. A supplied referral code
// is credited best-effort afterwards.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	imei := strings.TrimSpace(in.IMEI)
	if !validate.IMEI(imei) {
		return nil, ErrInvalidIMEI
	}
	wa, err := validate.NormalizeWhatsApp(in.WhatsApp)
	if err != nil {
		return nil, err
	}
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, ErrInvalidPayment
	}

	tier, err := s.catalog.GetActiveByServiceID(in.LayananID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	now := s.now()
	order := &models.Order{
		OrderID:       GenerateOrderID(now),
		IMEI:          imei,
		Brand:         strings.TrimSpace(in.Brand),
		Model:         strings.TrimSpace(in.Model),
		WhatsApp:      wa,
		LayananID:     tier.ServiceID,
		LayananNama:   tier.Nama,
		Harga:         tier.Harga,
		GaransiBulan:  tier.GaransiBulan,
		Status:        models.StatusPesananDibuat,
		Timeline:      []models.TimelineEntry{{Status: models.StatusPesananDibuat, Timestamp: now}},
		ReferralCode:  strings.TrimSpace(in.ReferralCode),
		PaymentProof:  in.PaymentProof,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	if order.ReferralCode != "" {
		s.referrals.Credit(order.ReferralCode, order.OrderID, order.Harga)
	}
	return order, nil
}

// Transition moves an order to newStatus, appending a timeline entry
// with a server-assigned timestamp. Terminal orders reject any further
// transition; everything else is permissive so an admin can correct a
// mistaken update. gagal requires a reason and is the only path that
// sets failure_reason. Entering berhasil_unblock starts the guarantee
// clock once, using the months snapshotted at creation.
func (s *OrderService) Transition(orderID string, newStatus models.OrderStatus, failureReason string) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}
	if newStatus == models.StatusGagal && strings.TrimSpace(failureReason) == "" {
		return nil, ErrReasonRequired
	}

	order, err := s.orders.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrTerminalState
	}

	now := s.now()
	order.Timeline = append(order.Timeline, models.TimelineEntry{Status: newStatus, Timestamp: now})
	order.Status = newStatus

	switch newStatus {
	case models.StatusBerhasilUnblock:
		if order.GaransiBulan != nil && order.UnblockDate == nil {
			unblocked := now
			expires := AddMonthsClamped(now, *order.GaransiBulan)
			order.UnblockDate = &unblocked
			order.ExpirationDate = &expires
		}
	case models.StatusGagal:
		order.FailureReason = strings.TrimSpace(failureReason)
	}

	if err := s.orders.UpdateLifecycle(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Get(orderID string) (*models.Order, error) {
	order, err := s.orders.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// Track looks a query up as an order number first and falls back to the
// most recent order for that IMEI.
func (s *OrderService) Track(query string) (*models.Order, error) {
	query = strings.TrimSpace(query)
	order, err := s.orders.GetByOrderID(query)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	order, err = s.orders.GetLatestByIMEI(query)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) List() ([]models.Order, error) {
	return s.orders.List()
}

func (s *OrderService) MarkNotified(orderID string) error {
	err := s.orders.SetNotificationSent(orderID, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	return err
}

func (s *OrderService) Delete(orderID string) error {
	err := s.orders.Delete(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	return err
}
