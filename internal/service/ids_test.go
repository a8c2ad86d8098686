package service

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateOrderIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^IME-[0-9A-Z]+-[0-9A-Z]{4}$`)
	id := GenerateOrderID(time.Now())
	if !pattern.MatchString(id) {
		t.Fatalf("unexpected order id %q", id)
	}
}

func TestGenerateOrderIDDistinctAcrossTime(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateOrderID(now.Add(time.Duration(i) * time.Millisecond))
		if seen[id] {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateReferralCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^REF-[0-9A-Z]{6}$`)
	for i := 0; i < 100; i++ {
		code := GenerateReferralCode()
		if !pattern.MatchString(code) {
			t.Fatalf("unexpected referral code %q", code)
		}
	}
}
