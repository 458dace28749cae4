package internal

import (
	"fmt"
	"strings"
	"time"
)

// ServiceType identifies which household service a bill belongs to.
type ServiceType string

const (
	ServiceElectricity ServiceType = "electricity"
	ServiceWater       ServiceType = "water"
	ServiceGas         ServiceType = "gas"
	ServiceInternet    ServiceType = "internet"
	ServiceSharedFees  ServiceType = "shared_fees"
)

// ServiceTypes lists all valid service types in display order.
var ServiceTypes = []ServiceType{
	ServiceElectricity,
	ServiceWater,
	ServiceGas,
	ServiceInternet,
	ServiceSharedFees,
}

// ParseServiceType parses a service type string (case-insensitive).
func ParseServiceType(s string) (ServiceType, error) {
	st := ServiceType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ServiceTypes {
		if st == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown service type: %s (available: %v)", s, ServiceTypes)
}

// Label returns a human-readable name for the service type.
func (s ServiceType) Label() string {
	switch s {
	case ServiceElectricity:
		return "Electricity"
	case ServiceWater:
		return "Water"
	case ServiceGas:
		return "Gas"
	case ServiceInternet:
		return "Internet"
	case ServiceSharedFees:
		return "Shared fees"
	default:
		return string(s)
	}
}

// ChangeKind categorizes entries in an account's history.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeEdited  ChangeKind = "edited"
	ChangePaid    ChangeKind = "paid"
)

// HistoryEntry records one change to an account. The history is append-only;
// there is no rollback.
type HistoryEntry struct {
	Kind      ChangeKind
	Timestamp time.Time
	Field     string // set for edits, empty otherwise
	Old       string
	New       string
	Note      string
}

// Account is one recurring service bill. Amount is in integer Chilean pesos
// (CLP has no decimal subunits). Optional dates use the zero time when unset.
type Account struct {
	ID              string
	Service         ServiceType
	Description     string
	Notes           string
	Amount          int64
	IssueDate       time.Time
	DueDate         time.Time
	NextReadingDate time.Time
	CutoffDate      time.Time
	Paid            bool
	PaidDate        time.Time
	History         []HistoryEntry
}

// NewAccountID builds an account ID from the service type and creation time,
// e.g. "water_20240510_153000".
func NewAccountID(service ServiceType, now time.Time) string {
	return fmt.Sprintf("%s_%s", service, now.Format("20060102_150405"))
}

// EnsureUniqueID appends a numeric suffix until id does not collide with any
// existing account.
func EnsureUniqueID(id string, accounts []Account) string {
	taken := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		taken[a.ID] = true
	}
	if !taken[id] {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", id, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// NewAccount creates an account with a fresh ID and a creation history entry.
// The caller is expected to run ValidateAccount first.
func NewAccount(service ServiceType, description, notes string, amount int64,
	issueDate, dueDate, cutoffDate, nextReadingDate time.Time, now time.Time) Account {
	a := Account{
		ID:              NewAccountID(service, now),
		Service:         service,
		Description:     strings.TrimSpace(description),
		Notes:           strings.TrimSpace(notes),
		Amount:          amount,
		IssueDate:       issueDate,
		DueDate:         dueDate,
		CutoffDate:      cutoffDate,
		NextReadingDate: nextReadingDate,
	}
	a.History = append(a.History, HistoryEntry{
		Kind:      ChangeCreated,
		Timestamp: now,
		Note:      fmt.Sprintf("%s bill created, amount %s", a.Service.Label(), FormatCLP(a.Amount)),
	})
	return a
}

// MarkPaid flags the account as paid and records it in the history.
// Marking an already-paid account is a no-op.
func (a *Account) MarkPaid(paidDate, now time.Time) bool {
	if a.Paid {
		return false
	}
	if paidDate.IsZero() {
		paidDate = dateOnly(now)
	}
	a.Paid = true
	a.PaidDate = paidDate
	a.History = append(a.History, HistoryEntry{
		Kind:      ChangePaid,
		Timestamp: now,
		Field:     "paid",
		Old:       "false",
		New:       "true",
		Note:      fmt.Sprintf("marked paid on %s, amount %s", paidDate.Format(DateFormat), FormatCLP(a.Amount)),
	})
	return true
}

// AccountEdit carries proposed field changes for an account. Nil fields are
// left untouched.
type AccountEdit struct {
	Service         *ServiceType
	Description     *string
	Notes           *string
	Amount          *int64
	IssueDate       *time.Time
	DueDate         *time.Time
	NextReadingDate *time.Time
	CutoffDate      *time.Time
}

// Apply writes the edit into the account, appending one history entry per
// field that actually changed. Returns true if anything changed.
func (e AccountEdit) Apply(a *Account, now time.Time) bool {
	changed := false
	record := func(field, old, new string) {
		if old == new {
			return
		}
		a.History = append(a.History, HistoryEntry{
			Kind:      ChangeEdited,
			Timestamp: now,
			Field:     field,
			Old:       old,
			New:       new,
		})
		changed = true
	}

	if e.Service != nil && *e.Service != a.Service {
		record("service_type", string(a.Service), string(*e.Service))
		a.Service = *e.Service
	}
	if e.Description != nil {
		desc := strings.TrimSpace(*e.Description)
		record("description", a.Description, desc)
		a.Description = desc
	}
	if e.Notes != nil {
		notes := strings.TrimSpace(*e.Notes)
		record("notes", a.Notes, notes)
		a.Notes = notes
	}
	if e.Amount != nil && *e.Amount != a.Amount {
		record("amount", fmt.Sprintf("%d", a.Amount), fmt.Sprintf("%d", *e.Amount))
		a.Amount = *e.Amount
	}
	if e.IssueDate != nil {
		record("issue_date", formatOptionalDate(a.IssueDate), formatOptionalDate(*e.IssueDate))
		a.IssueDate = *e.IssueDate
	}
	if e.DueDate != nil {
		record("due_date", formatOptionalDate(a.DueDate), formatOptionalDate(*e.DueDate))
		a.DueDate = *e.DueDate
	}
	if e.NextReadingDate != nil {
		record("next_reading_date", formatOptionalDate(a.NextReadingDate), formatOptionalDate(*e.NextReadingDate))
		a.NextReadingDate = *e.NextReadingDate
	}
	if e.CutoffDate != nil {
		record("cutoff_date", formatOptionalDate(a.CutoffDate), formatOptionalDate(*e.CutoffDate))
		a.CutoffDate = *e.CutoffDate
	}
	return changed
}

// DateFormat is the calendar date layout used everywhere in the app.
const DateFormat = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// FindAccount returns a pointer to the account with the given ID, or nil.
func FindAccount(accounts []Account, id string) *Account {
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}

// RemoveAccount deletes the account with the given ID from the list.
// Returns the new list and whether anything was removed.
func RemoveAccount(accounts []Account, id string) ([]Account, bool) {
	for i := range accounts {
		if accounts[i].ID == id {
			return append(accounts[:i], accounts[i+1:]...), true
		}
	}
	return accounts, false
}

func formatOptionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
