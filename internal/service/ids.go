package service

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomCode returns n characters drawn from codeAlphabet using
// crypto/rand. Uniqueness is optimistic; the unique index on the store
// is the backstop.
func randomCode(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	out := make([]byte, n)
	for i, v := range b {
		out[i] = codeAlphabet[int(v)%len(codeAlphabet)]
	}
	return string(out)
}

// GenerateOrderID builds a human-typable order number, e.g.
// IME-LX2K3F9A-7Q4Z: millisecond timestamp in base36 plus a short
// random suffix.
func GenerateOrderID(t time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
	return "IME-" + ts + "-" + randomCode(4)
}

// GenerateReferralCode returns a code like REF-8FK2QX.
func GenerateReferralCode() string {
	return "REF-" + randomCode(6)
}
