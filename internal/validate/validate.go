package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	imeiPattern     = regexp.MustCompile(`^\d{15}$`)
	whatsappPattern = regexp.MustCompile(`^(\+62|62|08)\d{8,12}$`)
	nonDigit        = regexp.MustCompile(`\D`)
)

var ErrInvalidWhatsApp = errors.New("nomor WhatsApp tidak valid, format: +62xxx atau 08xxx")

// IMEI reports whether s is exactly 15 digits.
func IMEI(s string) bool {
	return imeiPattern.MatchString(strings.TrimSpace(s))
}

// WhatsApp reports whether s is an Indonesian WhatsApp number in
// +62, 62 or 08 notation.
func WhatsApp(s string) bool {
	return whatsappPattern.MatchString(strings.TrimSpace(s))
}

// NormalizeWhatsApp converts an accepted Indonesian number to canonical
// +62 form, e.g. "0812xxxx" -> "+62812xxxx".
func NormalizeWhatsApp(s string) (string, error) {
	if !WhatsApp(s) {
		return "", ErrInvalidWhatsApp
	}
	cleaned := nonDigit.ReplaceAllString(s, "")
	switch {
	case strings.HasPrefix(cleaned, "62"):
		return "+" + cleaned, nil
	case strings.HasPrefix(cleaned, "0"):
		return "+62" + cleaned[1:], nil
	}
	return "+62" + cleaned, nil
}

// Register adds the custom "imei" and "wanumber" tags to a validator
// engine, typically gin's binding validator.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("imei", func(fl validator.FieldLevel) bool {
		return IMEI(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("wanumber", func(fl validator.FieldLevel) bool {
		return WhatsApp(fl.Field().String())
	})
}
