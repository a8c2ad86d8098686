package domain

const (
	RoleAdmin = "ADMIN"
)

// Payment methods a customer can pick on the payment step.
const (
	PaymentMethodBank    = "bank"
	PaymentMethodEWallet = "ewallet"
	PaymentMethodQRIS    = "qris"
)

// Device brands offered in the order form dropdown.
var DeviceBrands = []string{
	"Apple",
	"Samsung",
	"Xiaomi",
	"OPPO",
	"Vivo",
	"Realme",
	"Huawei",
	"OnePlus",
	"Google",
	"Sony",
	"Lainnya",
}

// ValidPaymentMethod reports whether m is a known payment method.
// Empty is allowed; the method is optional on an order.
func ValidPaymentMethod(m string) bool {
	switch m {
	case "", PaymentMethodBank, PaymentMethodEWallet, PaymentMethodQRIS:
		return true
	}
	return false
}
