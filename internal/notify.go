package internal

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// Reminders buckets unpaid accounts by urgency for a reminder message.
// Each account lands in exactly one bucket.
type Reminders struct {
	DueToday []Account
	DueSoon  []Account
	AtRisk   []Account
	Overdue  []Account
}

// Empty reports whether there is nothing to remind about.
func (r Reminders) Empty() bool {
	return len(r.DueToday) == 0 && len(r.DueSoon) == 0 && len(r.AtRisk) == 0 && len(r.Overdue) == 0
}

// CollectReminders sorts unpaid accounts into reminder buckets. Accounts at
// risk of cutoff are reported as such even when also past due, matching the
// status classification.
func CollectReminders(accounts []Account, now time.Time, dueSoonDays, atRiskWindowDays int) Reminders {
	var r Reminders
	for _, a := range accounts {
		switch Classify(a, now, atRiskWindowDays) {
		case StatusPaid:
			continue
		case StatusAtRisk:
			r.AtRisk = append(r.AtRisk, a)
		case StatusOverdue:
			r.Overdue = append(r.Overdue, a)
		default:
			if DueToday(a, now) {
				r.DueToday = append(r.DueToday, a)
			} else if DueWithin(a, now, dueSoonDays) {
				r.DueSoon = append(r.DueSoon, a)
			}
		}
	}
	return r
}

// FormatReminderBody builds the plain-text reminder message.
func FormatReminderBody(r Reminders, now time.Time) string {
	var b strings.Builder
	b.WriteString("Utility bill reminders\n\n")

	section := func(title string, accounts []Account, line func(Account) string) {
		if len(accounts) == 0 {
			return
		}
		b.WriteString(title + "\n")
		for _, a := range accounts {
			b.WriteString("  - " + line(a) + "\n")
		}
		b.WriteString("\n")
	}

	section("DUE TODAY:", r.DueToday, func(a Account) string {
		return fmt.Sprintf("%s: %s - %s", a.Service.Label(), FormatCLP(a.Amount), a.Description)
	})
	section("DUE SOON:", r.DueSoon, func(a Account) string {
		return fmt.Sprintf("%s: %s - due in %d days", a.Service.Label(), FormatCLP(a.Amount), DaysUntilDue(a, now))
	})
	section("AT RISK OF CUTOFF:", r.AtRisk, func(a Account) string {
		return fmt.Sprintf("%s: %s - cutoff %s", a.Service.Label(), FormatCLP(a.Amount), a.CutoffDate.Format(DateFormat))
	})
	section("OVERDUE:", r.Overdue, func(a Account) string {
		return fmt.Sprintf("%s: %s - was due %s", a.Service.Label(), FormatCLP(a.Amount), a.DueDate.Format(DateFormat))
	})

	return b.String()
}

// SendReminder sends the reminder by mail using the configured SMTP
// settings. Fire and forget: one attempt, no delivery confirmation.
func SendReminder(cfg EmailConfig, subject, body string) error {
	if !cfg.Enabled {
		return fmt.Errorf("email notifications are disabled in the config")
	}
	if cfg.Host == "" || cfg.From == "" || cfg.To == "" {
		return fmt.Errorf("email config is incomplete (host, from and to are required)")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", cfg.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending reminder mail: %w", err)
	}
	return nil
}
