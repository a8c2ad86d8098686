package service

import (
	"time"

	"imeiku/internal/models"
)

// StepState describes how one canonical step should be rendered.
type StepState string

const (
	StepCompleted    StepState = "completed"     // reached, shown with its timestamp
	StepCurrent      StepState = "current"       // the order is here now
	StepPending      StepState = "pending"       // awaiting the prior step
	StepNotProcessed StepState = "not_processed" // skipped because the order failed earlier
)

type TimelineStep struct {
	Status    models.OrderStatus `json:"status"`
	Label     string             `json:"label"`
	State     StepState          `json:"state"`
	Timestamp *time.Time         `json:"timestamp,omitempty"`
}

// FailureBanner carries the failure details shown above a failed
// order's timeline.
type FailureBanner struct {
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}

type TimelineView struct {
	Steps   []TimelineStep `json:"steps"`
	Failure *FailureBanner `json:"failure,omitempty"`
}

// DeriveTimeline maps an order's stored timeline onto the canonical
// five-step progression. It is a pure read: the same Order value always
// yields the same view.
//
// A failed order still shows the steps it reached before failing as
// completed; everything after the point of failure is not_processed.
func DeriveTimeline(o *models.Order) TimelineView {
	failed := o.Status == models.StatusGagal

	firstAt := make(map[models.OrderStatus]time.Time)
	canonicalCount := 0
	var failedAt time.Time
	for _, e := range o.Timeline {
		if e.Status == models.StatusGagal {
			failedAt = e.Timestamp
			continue
		}
		canonicalCount++
		if _, seen := firstAt[e.Status]; !seen {
			firstAt[e.Status] = e.Timestamp
		}
	}
	// Index of the last canonical step reached before the failure.
	failedAtIndex := canonicalCount - 1

	currentIndex := -1
	for i, st := range models.CanonicalStatuses {
		if st == o.Status {
			currentIndex = i
		}
	}

	steps := make([]TimelineStep, 0, len(models.CanonicalStatuses))
	for i, st := range models.CanonicalStatuses {
		step := TimelineStep{Status: st, Label: st.Label()}
		ts, reached := firstAt[st]
		if reached {
			step.Timestamp = &ts
		}
		switch {
		case failed && reached && i <= failedAtIndex:
			step.State = StepCompleted
		case failed:
			step.State = StepNotProcessed
		case i == currentIndex:
			step.State = StepCurrent
		case i < currentIndex && reached:
			step.State = StepCompleted
		default:
			step.State = StepPending
		}
		steps = append(steps, step)
	}

	view := TimelineView{Steps: steps}
	if failed {
		view.Failure = &FailureBanner{Reason: o.FailureReason, FailedAt: failedAt}
	}
	return view
}
