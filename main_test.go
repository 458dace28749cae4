package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/gigurra/bill-tracker/internal"
)

func TestSubcommandsBuildAsCobraCommands(t *testing.T) {
	tests := []struct {
		use   string
		build func() *cobra.Command
	}{
		{"add", addCmd},
		{"list", listCmd},
		{"edit", editCmd},
		{"pay", payCmd},
		{"rm", rmCmd},
		{"history", historyCmd},
		{"stats", statsCmd},
		{"report", reportCmd},
		{"chart", chartCmd},
		{"remind", remindCmd},
		{"init-config", initConfigCmd},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			cmd := tt.build()
			if cmd == nil {
				t.Fatal("expected a cobra command, got nil")
			}
			if got := strings.Fields(cmd.Use)[0]; got != tt.use {
				t.Errorf("expected use %q, got %q", tt.use, got)
			}
		})
	}
}

func TestEditExposesAllFieldFlags(t *testing.T) {
	cmd := editCmd()
	flags := []string{
		"service",
		"amount",
		"description",
		"issued",
		"due",
		"cutoff",
		"next-reading",
		"notes",
	}
	for _, name := range flags {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("edit is missing the --%s flag", name)
		}
	}
}

func TestListExposesFilterFlags(t *testing.T) {
	cmd := listCmd()
	for _, name := range []string{"status", "service", "search", "sort", "dir", "output"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("list is missing the --%s flag", name)
		}
	}
}

func TestPrintSummariesShowsMonthlySpread(t *testing.T) {
	accounts := []internal.Account{
		{
			ID:          "electricity_20240105_100000",
			Service:     internal.ServiceElectricity,
			Description: "January electricity",
			Amount:      30000,
			IssueDate:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			DueDate:     time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "water_20240303_100000",
			Service:     internal.ServiceWater,
			Description: "March water",
			Amount:      45000,
			IssueDate:   time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
			DueDate:     time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "gas_20240310_100000",
			Service:     internal.ServiceGas,
			Description: "March gas",
			Amount:      25000,
			IssueDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			DueDate:     time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	printSummaries(&buf, internal.SummarizeYear(accounts, 2024), 2024)
	out := buf.String()

	if !strings.Contains(out, "Monthly spend (months with bills): $30.000-$70.000") {
		t.Errorf("expected monthly spread line in output, got:\n%s", out)
	}
}

func TestPrintSummariesSingleMonthSpread(t *testing.T) {
	accounts := []internal.Account{
		{
			ID:          "internet_20240503_100000",
			Service:     internal.ServiceInternet,
			Description: "May internet",
			Amount:      28000,
			IssueDate:   time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
			DueDate:     time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	printSummaries(&buf, internal.SummarizeYear(accounts, 2024), 2024)
	out := buf.String()

	if !strings.Contains(out, "Monthly spend (months with bills): $28.000\n") {
		t.Errorf("expected single-month spend line in output, got:\n%s", out)
	}
	if strings.Contains(out, "$28.000-") {
		t.Errorf("did not expect a range for a single month, got:\n%s", out)
	}
}
