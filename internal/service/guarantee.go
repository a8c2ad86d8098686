package service

import (
	"time"
)

// AddMonthsClamped advances t by the given number of calendar months,
// keeping the day-of-month where possible and clamping to the last
// valid day of the target month otherwise (Jan 31 + 1 -> Feb 28/29).
// This is deliberately not time.Time.AddDate, which normalizes overflow
// into the following month.
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	target := m + time.Month(months)
	lastDay := time.Date(y, target+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	h, min, sec := t.Clock()
	return time.Date(y, target, d, h, min, sec, t.Nanosecond(), t.Location())
}
