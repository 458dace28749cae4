package internal

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassify(t *testing.T) {
	base := Account{
		Service:     ServiceWater,
		Description: "May water bill",
		Amount:      25000,
		IssueDate:   date("2024-04-28"),
		DueDate:     date("2024-05-10"),
		CutoffDate:  date("2024-05-20"),
	}

	tests := []struct {
		name     string
		modify   func(a *Account)
		now      time.Time
		window   int
		expected Status
	}{
		{
			name:     "inside cutoff window while past due",
			now:      date("2024-05-16"),
			window:   5,
			expected: StatusAtRisk,
		},
		{
			name:     "past due before cutoff window opens",
			now:      date("2024-05-11"),
			window:   5,
			expected: StatusOverdue,
		},
		{
			name:     "before due date",
			now:      date("2024-05-05"),
			window:   5,
			expected: StatusPending,
		},
		{
			name:     "due date itself is not overdue",
			now:      date("2024-05-10"),
			window:   5,
			expected: StatusPending,
		},
		{
			name:     "window start day is at risk",
			now:      date("2024-05-15"),
			window:   5,
			expected: StatusAtRisk,
		},
		{
			name:     "paid wins over everything",
			modify:   func(a *Account) { a.Paid = true },
			now:      date("2024-06-01"),
			window:   5,
			expected: StatusPaid,
		},
		{
			name:     "no cutoff date can never be at risk",
			modify:   func(a *Account) { a.CutoffDate = time.Time{} },
			now:      date("2024-05-19"),
			window:   5,
			expected: StatusOverdue,
		},
		{
			name:     "zero window flags at risk on the cutoff day",
			now:      date("2024-05-20"),
			window:   0,
			expected: StatusAtRisk,
		},
		{
			name:     "time of day is ignored",
			now:      date("2024-05-10").Add(23 * time.Hour),
			window:   5,
			expected: StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			if tt.modify != nil {
				tt.modify(&a)
			}
			result := Classify(a, tt.now, tt.window)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	a := Account{
		DueDate:    date("2024-05-10"),
		CutoffDate: date("2024-05-20"),
	}
	now := date("2024-05-16")
	first := Classify(a, now, 5)
	for i := 0; i < 10; i++ {
		if got := Classify(a, now, 5); got != first {
			t.Fatalf("classification changed across calls: %s then %s", first, got)
		}
	}
}

func TestDaysUntilDue(t *testing.T) {
	a := Account{DueDate: date("2024-05-10")}

	tests := []struct {
		now      string
		expected int
	}{
		{"2024-05-10", 0},
		{"2024-05-08", 2},
		{"2024-05-12", -2},
	}

	for _, tt := range tests {
		if got := DaysUntilDue(a, date(tt.now)); got != tt.expected {
			t.Errorf("DaysUntilDue at %s: expected %d, got %d", tt.now, tt.expected, got)
		}
	}

	if !DueToday(a, date("2024-05-10")) {
		t.Errorf("expected due today on the due date")
	}
	if !DueWithin(a, date("2024-05-05"), 7) {
		t.Errorf("expected due within 7 days")
	}
	if DueWithin(a, date("2024-05-12"), 7) {
		t.Errorf("overdue account should not count as due within")
	}
}
