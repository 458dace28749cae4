package internal

import "time"

// Status is the derived display state of an account. It is never persisted;
// it is recomputed from the stored dates every time it is shown.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	StatusAtRisk  Status = "at_risk"
	StatusPending Status = "pending"
)

// Classify derives the status of an account at the given time. Comparisons
// are on calendar days; the time of day of now is ignored.
//
// Cutoff risk outranks a missed due date: once today is within the at-risk
// window before the cutoff date, the account is flagged at_risk even if the
// due date has already passed. An account with no cutoff date can never be
// at_risk.
func Classify(a Account, now time.Time, atRiskWindowDays int) Status {
	if a.Paid {
		return StatusPaid
	}
	today := dateOnly(now)
	if !a.CutoffDate.IsZero() {
		windowStart := dateOnly(a.CutoffDate).AddDate(0, 0, -atRiskWindowDays)
		if !today.Before(windowStart) {
			return StatusAtRisk
		}
	}
	if today.After(dateOnly(a.DueDate)) {
		return StatusOverdue
	}
	return StatusPending
}

// DaysUntilDue returns the number of whole days from today to the due date.
// Negative when the due date has passed, zero when it is today.
func DaysUntilDue(a Account, now time.Time) int {
	delta := dateOnly(a.DueDate).Sub(dateOnly(now))
	return int(delta.Hours() / 24)
}

// DueToday reports whether the account's due date is today.
func DueToday(a Account, now time.Time) bool {
	return DaysUntilDue(a, now) == 0
}

// DueWithin reports whether the account falls due within the next n days
// (excluding today and excluding already-overdue accounts).
func DueWithin(a Account, now time.Time, n int) bool {
	d := DaysUntilDue(a, now)
	return d > 0 && d <= n
}
