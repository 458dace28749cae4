package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func listAccounts() []Account {
	return []Account{
		{ID: "electricity_1", Service: ServiceElectricity, Description: "April electricity", Amount: 42000,
			IssueDate: date("2024-04-01"), DueDate: date("2024-04-15")},
		{ID: "water_1", Service: ServiceWater, Description: "April water", Notes: "meter replaced", Amount: 25000,
			IssueDate: date("2024-04-05"), DueDate: date("2024-04-20"), Paid: true, PaidDate: date("2024-04-18")},
		{ID: "internet_1", Service: ServiceInternet, Description: "Fiber plan", Amount: 30000,
			IssueDate: date("2024-04-10"), DueDate: date("2024-05-25"), CutoffDate: date("2024-05-30")},
	}
}

func TestFilterAccounts(t *testing.T) {
	opts := ListOptions{Now: date("2024-05-28"), AtRiskWindow: 5}

	tests := []struct {
		name    string
		opts    ListOptions
		wantIDs []string
	}{
		{
			name:    "no filters keeps everything",
			opts:    opts,
			wantIDs: []string{"electricity_1", "water_1", "internet_1"},
		},
		{
			name:    "status all keeps everything",
			opts:    ListOptions{StatusFilter: "all", Now: opts.Now, AtRiskWindow: 5},
			wantIDs: []string{"electricity_1", "water_1", "internet_1"},
		},
		{
			name:    "overdue only",
			opts:    ListOptions{StatusFilter: "overdue", Now: opts.Now, AtRiskWindow: 5},
			wantIDs: []string{"electricity_1"},
		},
		{
			name:    "at_risk only",
			opts:    ListOptions{StatusFilter: "at_risk", Now: opts.Now, AtRiskWindow: 5},
			wantIDs: []string{"internet_1"},
		},
		{
			name:    "by service",
			opts:    ListOptions{ServiceFilter: "water", Now: opts.Now, AtRiskWindow: 5},
			wantIDs: []string{"water_1"},
		},
		{
			name:    "search matches description",
			opts:    ListOptions{Search: "fiber", Now: opts.Now, AtRiskWindow: 5},
			wantIDs: []string{"internet_1"},
		},
		{
			name:    "search matches notes",
			opts:    ListOptions{Search: "meter", Now: opts.Now, AtRiskWindow: 5},
			wantIDs: []string{"water_1"},
		},
		{
			name: "combined filters",
			opts: ListOptions{StatusFilter: "paid", Search: "april", Now: opts.Now, AtRiskWindow: 5},
			wantIDs: []string{"water_1"},
		},
		{
			name: "no matches",
			opts: ListOptions{Search: "no such bill", Now: opts.Now, AtRiskWindow: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAccounts(listAccounts(), tt.opts)
			var ids []string
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("expected %v, got %v", tt.wantIDs, ids)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("expected %v, got %v", tt.wantIDs, ids)
					break
				}
			}
		})
	}
}

func TestSortAccounts(t *testing.T) {
	tests := []struct {
		field   string
		dir     string
		firstID string
	}{
		{"due", "asc", "electricity_1"},
		{"due", "desc", "internet_1"},
		{"amount", "asc", "water_1"},
		{"amount", "desc", "electricity_1"},
		{"description", "asc", "electricity_1"},
		{"service", "asc", "electricity_1"},
		{"issue", "desc", "internet_1"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"_"+tt.dir, func(t *testing.T) {
			accounts := listAccounts()
			SortAccounts(accounts, tt.field, tt.dir)
			if accounts[0].ID != tt.firstID {
				t.Errorf("expected %s first, got %s", tt.firstID, accounts[0].ID)
			}
		})
	}
}

func TestPrintAccountsJSON(t *testing.T) {
	var buf bytes.Buffer
	PrintAccountsJSON(&buf, listAccounts(), date("2024-05-28"), 5)

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if out.Summary.Count != 3 {
		t.Errorf("expected count 3, got %d", out.Summary.Count)
	}
	if out.Summary.PendingTotal != 72000 || out.Summary.PaidTotal != 25000 {
		t.Errorf("unexpected totals: %+v", out.Summary)
	}
	if out.Summary.OverdueCount != 1 || out.Summary.AtRiskCount != 1 {
		t.Errorf("unexpected status counts: %+v", out.Summary)
	}
	if out.Summary.Currency != "CLP" {
		t.Errorf("expected CLP, got %s", out.Summary.Currency)
	}

	byID := make(map[string]JSONAccount)
	for _, a := range out.Accounts {
		byID[a.ID] = a
	}
	if byID["electricity_1"].Status != "overdue" {
		t.Errorf("expected electricity_1 overdue, got %s", byID["electricity_1"].Status)
	}
	if byID["internet_1"].Status != "at_risk" {
		t.Errorf("expected internet_1 at_risk, got %s", byID["internet_1"].Status)
	}
	if byID["water_1"].PaidDate != "2024-04-18" {
		t.Errorf("expected paid date, got %q", byID["water_1"].PaidDate)
	}
	if byID["electricity_1"].CutoffDate != "" {
		t.Errorf("absent cutoff should be omitted, got %q", byID["electricity_1"].CutoffDate)
	}
}

func TestPrintAccountsTable(t *testing.T) {
	accounts := listAccounts()
	var buf bytes.Buffer
	PrintAccountsTable(&buf, accounts, accounts, ListOptions{
		StatusFilter: "all",
		Now:          date("2024-05-28"),
		AtRiskWindow: 5,
	})

	out := buf.String()
	for _, want := range []string{
		"Tracking 3 accounts",
		"electricity_1",
		"April water",
		"$42.000",
		"Total (pending)",
		"$72.000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintHistory(t *testing.T) {
	a := validAccount()
	a.MarkPaid(date("2024-05-08"), date("2024-05-08").Add(9*time.Hour))

	var buf bytes.Buffer
	PrintHistory(&buf, a)

	out := buf.String()
	if !strings.Contains(out, "paid") || !strings.Contains(out, a.ID) {
		t.Errorf("history output incomplete:\n%s", out)
	}
}
