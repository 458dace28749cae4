package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ListOptions controls which accounts are displayed and how.
type ListOptions struct {
	StatusFilter  string // all, paid, overdue, at_risk, pending
	ServiceFilter string // empty or one of the service types
	Search        string // free-text search in id, description and notes
	SortField     string // due, issue, amount, service, description
	SortDir       string // asc, desc
	Now           time.Time
	AtRiskWindow  int
}

// FilterAccounts applies the status, service and search filters over the
// full in-memory list.
func FilterAccounts(accounts []Account, opts ListOptions) []Account {
	var result []Account
	query := strings.ToLower(strings.TrimSpace(opts.Search))
	for _, a := range accounts {
		if opts.StatusFilter != "" && opts.StatusFilter != "all" {
			if string(Classify(a, opts.Now, opts.AtRiskWindow)) != opts.StatusFilter {
				continue
			}
		}
		if opts.ServiceFilter != "" && string(a.Service) != opts.ServiceFilter {
			continue
		}
		if query != "" {
			haystack := strings.ToLower(a.ID + " " + a.Description + " " + a.Notes)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		result = append(result, a)
	}
	return result
}

// SortAccounts orders the list in place by the given column.
func SortAccounts(accounts []Account, field, dir string) {
	sort.SliceStable(accounts, func(i, j int) bool {
		var less bool
		switch field {
		case "amount":
			less = accounts[i].Amount < accounts[j].Amount
		case "service":
			less = accounts[i].Service < accounts[j].Service
		case "description":
			less = strings.ToLower(accounts[i].Description) < strings.ToLower(accounts[j].Description)
		case "issue":
			less = accounts[i].IssueDate.Before(accounts[j].IssueDate)
		default: // "due"
			less = accounts[i].DueDate.Before(accounts[j].DueDate)
		}
		if dir == "desc" {
			return !less
		}
		return less
	})
}

// JSONOutput is the root JSON output object for the list command.
type JSONOutput struct {
	Accounts []JSONAccount `json:"accounts"`
	Summary  JSONSummary   `json:"summary"`
}

// JSONSummary contains aggregate statistics over the displayed accounts.
type JSONSummary struct {
	Count        int    `json:"count"`
	PendingTotal int64  `json:"pending_total"`
	PaidTotal    int64  `json:"paid_total"`
	OverdueCount int    `json:"overdue_count"`
	AtRiskCount  int    `json:"at_risk_count"`
	Currency     string `json:"currency"`
}

// JSONAccount is the JSON output format for an account.
type JSONAccount struct {
	ID              string `json:"id"`
	Service         string `json:"service_type"`
	Description     string `json:"description"`
	Notes           string `json:"notes,omitempty"`
	Amount          int64  `json:"amount"`
	IssueDate       string `json:"issue_date"`
	DueDate         string `json:"due_date"`
	NextReadingDate string `json:"next_reading_date,omitempty"`
	CutoffDate      string `json:"cutoff_date,omitempty"`
	Paid            bool   `json:"paid"`
	PaidDate        string `json:"paid_date,omitempty"`
	Status          string `json:"status"`
}

// PrintAccountsJSON outputs accounts in JSON format with derived statuses.
func PrintAccountsJSON(w io.Writer, accounts []Account, now time.Time, atRiskWindowDays int) {
	out := JSONOutput{Summary: JSONSummary{Currency: "CLP"}}
	for _, a := range accounts {
		status := Classify(a, now, atRiskWindowDays)
		out.Accounts = append(out.Accounts, JSONAccount{
			ID:              a.ID,
			Service:         string(a.Service),
			Description:     a.Description,
			Notes:           a.Notes,
			Amount:          a.Amount,
			IssueDate:       formatOptionalDate(a.IssueDate),
			DueDate:         formatOptionalDate(a.DueDate),
			NextReadingDate: formatOptionalDate(a.NextReadingDate),
			CutoffDate:      formatOptionalDate(a.CutoffDate),
			Paid:            a.Paid,
			PaidDate:        formatOptionalDate(a.PaidDate),
			Status:          string(status),
		})
		out.Summary.Count++
		switch status {
		case StatusOverdue:
			out.Summary.OverdueCount++
		case StatusAtRisk:
			out.Summary.AtRiskCount++
		}
		if a.Paid {
			out.Summary.PaidTotal += a.Amount
		} else {
			out.Summary.PendingTotal += a.Amount
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

// statusCell renders a status with its display color: paid green, overdue
// red, at_risk yellow, pending plain.
func statusCell(s Status) string {
	switch s {
	case StatusPaid:
		return text.FgGreen.Sprint("PAID")
	case StatusOverdue:
		return text.FgRed.Sprint("OVERDUE")
	case StatusAtRisk:
		return text.FgYellow.Sprint("AT RISK")
	default:
		return "PENDING"
	}
}

// PrintAccountsTable outputs accounts as a formatted table. allAccounts is
// used for the summary line, displayAccounts for the rows.
func PrintAccountsTable(w io.Writer, allAccounts, displayAccounts []Account, opts ListOptions) {
	counts := CountByStatus(allAccounts, opts.Now, opts.AtRiskWindow)
	fmt.Fprintf(w, "Tracking %d accounts (%d pending, %d overdue, %d at risk, %d paid)\n",
		len(allAccounts), counts[StatusPending], counts[StatusOverdue], counts[StatusAtRisk], counts[StatusPaid])
	showing := opts.StatusFilter
	if showing == "" {
		showing = "all"
	}
	if opts.ServiceFilter != "" {
		showing += ", service: " + opts.ServiceFilter
	}
	if opts.Search != "" {
		showing += fmt.Sprintf(", search: %q", opts.Search)
	}
	fmt.Fprintf(w, "Showing: %s\n\n", showing)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Service", "Description", "Issued", "Due", "Cutoff", "Amount", "Status"})

	for _, a := range displayAccounts {
		cutoff := formatOptionalDate(a.CutoffDate)
		if cutoff == "" {
			cutoff = "-"
		}
		t.AppendRow(table.Row{
			a.ID,
			a.Service.Label(),
			a.Description,
			a.IssueDate.Format(DateFormat),
			a.DueDate.Format(DateFormat),
			cutoff,
			FormatCLP(a.Amount),
			statusCell(Classify(a, opts.Now, opts.AtRiskWindow)),
		})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", "", "", text.Bold.Sprint("Total (pending)"),
		text.Bold.Sprint(FormatCLP(TotalPending(displayAccounts))), ""})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 7, Align: text.AlignRight},
	})

	t.Render()
}

// PrintHistory outputs an account's audit trail, oldest first.
func PrintHistory(w io.Writer, a Account) {
	fmt.Fprintf(w, "History of %s (%s, %s)\n\n", a.ID, a.Service.Label(), FormatCLP(a.Amount))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"When", "Change", "Field", "Old", "New", "Note"})
	for _, h := range a.History {
		t.AppendRow(table.Row{
			h.Timestamp.Format("2006-01-02 15:04"),
			string(h.Kind),
			h.Field,
			h.Old,
			h.New,
			h.Note,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Render()
}
