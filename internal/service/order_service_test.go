package service

import (
	"errors"
	"testing"
	"time"

	"imeiku/internal/models"

	"gorm.io/gorm"
)

// In-memory stores standing in for the gorm repositories.

type memOrders struct {
	m map[string]*models.Order
}

func newMemOrders() *memOrders { return &memOrders{m: make(map[string]*models.Order)} }

func (s *memOrders) Create(o *models.Order) error {
	cp := *o
	s.m[o.OrderID] = &cp
	return nil
}

func (s *memOrders) GetByOrderID(orderID string) (*models.Order, error) {
	o, ok := s.m[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memOrders) GetLatestByIMEI(imei string) (*models.Order, error) {
	var latest *models.Order
	for _, o := range s.m {
		if o.IMEI != imei {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (s *memOrders) List() ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.m {
		out = append(out, *o)
	}
	return out, nil
}

func (s *memOrders) UpdateLifecycle(o *models.Order) error {
	stored, ok := s.m[o.OrderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = o.Status
	stored.Timeline = append([]models.TimelineEntry(nil), o.Timeline...)
	stored.FailureReason = o.FailureReason
	stored.UnblockDate = o.UnblockDate
	stored.ExpirationDate = o.ExpirationDate
	return nil
}

func (s *memOrders) SetNotificationSent(orderID string, sent bool) error {
	o, ok := s.m[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.NotificationSent = sent
	return nil
}

func (s *memOrders) Delete(orderID string) error {
	if _, ok := s.m[orderID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.m, orderID)
	return nil
}

type memCatalog struct {
	m map[string]*models.Service
}

func (c *memCatalog) GetActiveByServiceID(serviceID string) (*models.Service, error) {
	svc, ok := c.m[serviceID]
	if !ok || !svc.Active {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *svc
	return &cp, nil
}

type memReferrals struct {
	m map[string]*models.Referral
}

func (r *memReferrals) GetByCode(code string) (*models.Referral, error) {
	ref, ok := r.m[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ref
	cp.History = append([]models.ReferralUsage(nil), ref.History...)
	return &cp, nil
}

func (r *memReferrals) Create(ref *models.Referral) error {
	if _, ok := r.m[ref.ReferralCode]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *ref
	r.m[ref.ReferralCode] = &cp
	return nil
}

func (r *memReferrals) Save(ref *models.Referral) error {
	cp := *ref
	r.m[ref.ReferralCode] = &cp
	return nil
}

type memSettings struct {
	s *models.SiteSettings
}

func (m *memSettings) Get() (*models.SiteSettings, error) {
	if m.s == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.s, nil
}

func intPtr(v int) *int { return &v }

type fixture struct {
	orders    *memOrders
	referrals *memReferrals
	svc       *OrderService
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	orders := newMemOrders()
	catalog := &memCatalog{m: map[string]*models.Service{
		"svc-1": {ServiceID: "svc-1", Nama: "Unblock Permanen", Harga: 500000, GaransiBulan: intPtr(3), Active: true},
		"svc-2": {ServiceID: "svc-2", Nama: "Unblock Sementara", Harga: 300000, Active: true},
	}}
	referrals := &memReferrals{m: map[string]*models.Referral{
		"REF-AAAAAA": {ReferralCode: "REF-AAAAAA"},
	}}
	settings := &memSettings{s: models.DefaultSiteSettings()}

	refSvc := NewReferralService(referrals, settings)
	refSvc.now = func() time.Time { return now }
	svc := NewOrderService(orders, catalog, refSvc)
	svc.now = func() time.Time { return now }
	return &fixture{orders: orders, referrals: referrals, svc: svc}
}

func TestCreateSnapshotsServiceAndStartsTimeline(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	order, err := f.svc.Create(CreateOrderInput{
		IMEI:      "356938035643809",
		Brand:     "Apple",
		Model:     "iPhone 14",
		WhatsApp:  "081234567890",
		LayananID: "svc-1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Status != models.StatusPesananDibuat {
		t.Fatalf("status = %s, want pesanan_dibuat", order.Status)
	}
	if len(order.Timeline) != 1 || order.Timeline[0].Status != models.StatusPesananDibuat {
		t.Fatalf("expected single created timeline entry, got %+v", order.Timeline)
	}
	if order.LayananNama != "Unblock Permanen" || order.Harga != 500000 {
		t.Fatalf("snapshot wrong: %s / %d", order.LayananNama, order.Harga)
	}
	if order.GaransiBulan == nil || *order.GaransiBulan != 3 {
		t.Fatalf("guarantee months not snapshotted")
	}
	if order.WhatsApp != "+6281234567890" {
		t.Fatalf("whatsapp not normalized: %s", order.WhatsApp)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	f := newFixture(t, time.Now())

	_, err := f.svc.Create(CreateOrderInput{IMEI: "123", WhatsApp: "081234567890", LayananID: "svc-1"})
	if !errors.Is(err, ErrInvalidIMEI) {
		t.Fatalf("want ErrInvalidIMEI, got %v", err)
	}
	_, err = f.svc.Create(CreateOrderInput{IMEI: "356938035643809", WhatsApp: "081234567890", LayananID: "nope"})
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("want ErrServiceNotFound, got %v", err)
	}
}

func TestReferralCommissionAccrual(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	// 10% of 300000 = 30000 with the default settings.
	order, err := f.svc.Create(CreateOrderInput{
		IMEI:         "356938035643809",
		Brand:        "Samsung",
		Model:        "S24",
		WhatsApp:     "081234567890",
		LayananID:    "svc-2",
		ReferralCode: "REF-AAAAAA",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ref := f.referrals.m["REF-AAAAAA"]
	if ref.TotalUser != 1 {
		t.Fatalf("total_user = %d, want 1", ref.TotalUser)
	}
	if ref.TotalKomisi != 30000 {
		t.Fatalf("total_komisi = %d, want 30000", ref.TotalKomisi)
	}
	if len(ref.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(ref.History))
	}
	h := ref.History[0]
	if h.OrderID != order.OrderID || h.Komisi != 30000 || h.Status != models.PayoutPending {
		t.Fatalf("unexpected history entry %+v", h)
	}
}

func TestUnknownReferralCodeIsSkippedSilently(t *testing.T) {
	f := newFixture(t, time.Now())

	_, err := f.svc.Create(CreateOrderInput{
		IMEI:         "356938035643809",
		Brand:        "Xiaomi",
		Model:        "13T",
		WhatsApp:     "081234567890",
		LayananID:    "svc-2",
		ReferralCode: "REF-UNKNOWN",
	})
	if err != nil {
		t.Fatalf("order creation must not fail on a bad referral code: %v", err)
	}
	if got := f.referrals.m["REF-AAAAAA"].TotalUser; got != 0 {
		t.Fatalf("ledger must be untouched, total_user = %d", got)
	}
}

func TestTransitionHappyPathWithGuarantee(t *testing.T) {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, created)

	order, err := f.svc.Create(CreateOrderInput{
		IMEI: "356938035643809", Brand: "Apple", Model: "iPhone 14",
		WhatsApp: "081234567890", LayananID: "svc-1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	unblockAt := time.Date(2025, 3, 15, 12, 30, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return unblockAt }

	for _, st := range []models.OrderStatus{
		models.StatusPembayaranDiterima,
		models.StatusDalamProses,
		models.StatusBerhasilUnblock,
	} {
		if order, err = f.svc.Transition(order.OrderID, st, ""); err != nil {
			t.Fatalf("Transition(%s): %v", st, err)
		}
	}

	if len(order.Timeline) != 4 {
		t.Fatalf("timeline length = %d, want 4", len(order.Timeline))
	}
	if order.Status != models.StatusBerhasilUnblock {
		t.Fatalf("status = %s", order.Status)
	}
	if order.Status != order.Timeline[len(order.Timeline)-1].Status {
		t.Fatal("status must equal last timeline entry")
	}
	if order.UnblockDate == nil || !order.UnblockDate.Equal(unblockAt) {
		t.Fatalf("unblock_date = %v, want %v", order.UnblockDate, unblockAt)
	}
	wantExpiry := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)
	if order.ExpirationDate == nil || !order.ExpirationDate.Equal(wantExpiry) {
		t.Fatalf("expiration_date = %v, want %v", order.ExpirationDate, wantExpiry)
	}
	if order.FailureReason != "" {
		t.Fatal("failure_reason must stay unset on success")
	}
}

func TestTransitionDirectFailure(t *testing.T) {
	f := newFixture(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	order, err := f.svc.Create(CreateOrderInput{
		IMEI: "356938035643809", Brand: "OPPO", Model: "Reno", WhatsApp: "081234567890", LayananID: "svc-2",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	order, err = f.svc.Transition(order.OrderID, models.StatusGagal, "IMEI already blacklisted")
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if len(order.Timeline) != 2 {
		t.Fatalf("timeline length = %d, want 2", len(order.Timeline))
	}
	if order.Status != models.StatusGagal {
		t.Fatalf("status = %s", order.Status)
	}
	if order.FailureReason != "IMEI already blacklisted" {
		t.Fatalf("failure_reason = %q", order.FailureReason)
	}
	if order.UnblockDate != nil || order.ExpirationDate != nil {
		t.Fatal("guarantee dates must stay unset on failure")
	}
}

func TestFailureReasonRequired(t *testing.T) {
	f := newFixture(t, time.Now())
	order, _ := f.svc.Create(CreateOrderInput{
		IMEI: "356938035643809", Brand: "Vivo", Model: "V30", WhatsApp: "081234567890", LayananID: "svc-2",
	})

	if _, err := f.svc.Transition(order.OrderID, models.StatusGagal, "   "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("want ErrReasonRequired, got %v", err)
	}
	// The failed attempt must not have touched the order.
	stored, _ := f.orders.GetByOrderID(order.OrderID)
	if len(stored.Timeline) != 1 || stored.Status != models.StatusPesananDibuat {
		t.Fatalf("order mutated by rejected transition: %+v", stored)
	}
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	f := newFixture(t, time.Now())
	order, _ := f.svc.Create(CreateOrderInput{
		IMEI: "356938035643809", Brand: "Apple", Model: "iPhone 13", WhatsApp: "081234567890", LayananID: "svc-2",
	})

	if _, err := f.svc.Transition(order.OrderID, models.StatusSelesai, ""); err != nil {
		t.Fatalf("Transition to selesai: %v", err)
	}
	if _, err := f.svc.Transition(order.OrderID, models.StatusDalamProses, ""); !errors.Is(err, ErrTerminalState) {
		t.Fatalf("want ErrTerminalState, got %v", err)
	}

	failed, _ := f.svc.Create(CreateOrderInput{
		IMEI: "490154203237518", Brand: "Apple", Model: "iPhone 13", WhatsApp: "081234567890", LayananID: "svc-2",
	})
	if _, err := f.svc.Transition(failed.OrderID, models.StatusGagal, "stolen device"); err != nil {
		t.Fatalf("Transition to gagal: %v", err)
	}
	if _, err := f.svc.Transition(failed.OrderID, models.StatusSelesai, ""); !errors.Is(err, ErrTerminalState) {
		t.Fatalf("want ErrTerminalState, got %v", err)
	}
}

func TestDuplicateStatusAppendsAgain(t *testing.T) {
	f := newFixture(t, time.Now())
	order, _ := f.svc.Create(CreateOrderInput{
		IMEI: "356938035643809", Brand: "Realme", Model: "GT", WhatsApp: "081234567890", LayananID: "svc-2",
	})

	if _, err := f.svc.Transition(order.OrderID, models.StatusDalamProses, ""); err != nil {
		t.Fatal(err)
	}
	order, err := f.svc.Transition(order.OrderID, models.StatusDalamProses, "")
	if err != nil {
		t.Fatal(err)
	}
	// Not deduplicated: two dalam_proses entries on top of the initial one.
	if len(order.Timeline) != 3 {
		t.Fatalf("timeline length = %d, want 3", len(order.Timeline))
	}
}

func TestGuaranteeComputedOnce(t *testing.T) {
	first := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, first)
	order, _ := f.svc.Create(CreateOrderInput{
		IMEI: "356938035643809", Brand: "Apple", Model: "iPhone 14", WhatsApp: "081234567890", LayananID: "svc-1",
	})

	if _, err := f.svc.Transition(order.OrderID, models.StatusBerhasilUnblock, ""); err != nil {
		t.Fatal(err)
	}
	// Admin corrects the status back and forth; the guarantee window
	// set on first success must not move.
	f.svc.now = func() time.Time { return first.AddDate(0, 0, 30) }
	if _, err := f.svc.Transition(order.OrderID, models.StatusDalamProses, ""); err != nil {
		t.Fatal(err)
	}
	order, err := f.svc.Transition(order.OrderID, models.StatusBerhasilUnblock, "")
	if err != nil {
		t.Fatal(err)
	}
	if order.UnblockDate == nil || !order.UnblockDate.Equal(first) {
		t.Fatalf("unblock_date moved: %v", order.UnblockDate)
	}
}

func TestTransitionUnknownOrder(t *testing.T) {
	f := newFixture(t, time.Now())
	if _, err := f.svc.Transition("IME-NOPE", models.StatusSelesai, ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestTrackFallsBackToIMEI(t *testing.T) {
	f := newFixture(t, time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC))
	order, _ := f.svc.Create(CreateOrderInput{
		IMEI: "356938035643809", Brand: "Sony", Model: "Xperia", WhatsApp: "081234567890", LayananID: "svc-2",
	})

	byID, err := f.svc.Track(order.OrderID)
	if err != nil || byID.OrderID != order.OrderID {
		t.Fatalf("track by id: %v", err)
	}
	byIMEI, err := f.svc.Track("356938035643809")
	if err != nil || byIMEI.OrderID != order.OrderID {
		t.Fatalf("track by imei: %v", err)
	}
	if _, err := f.svc.Track("000000000000000"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}
