package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/gigurra/bill-tracker/internal"
)

type StatsParams struct {
	Config string `descr:"Path to config file" default:""`
	Year   int    `descr:"Year to summarize, defaults to the current year" default:"0"`
	Month  int    `descr:"Single month (1-12), 0 for the whole year" default:"0"`
}

func statsCmd() *cobra.Command {
	return boa.NewCmdT[StatsParams]("stats").
		WithShort("Monthly spending summary per service type").
		WithRunFunc(func(params *StatsParams) {
			ctx := context.Background()
			_, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)

			year := params.Year
			if year == 0 {
				year = time.Now().Year()
			}
			if params.Month < 0 || params.Month > 12 {
				fail("Error: month must be between 1 and 12")
			}

			var summaries []internal.MonthlySummary
			if params.Month != 0 {
				summaries = []internal.MonthlySummary{
					internal.SummarizeMonth(accounts, year, time.Month(params.Month)),
				}
			} else {
				summaries = internal.SummarizeYear(accounts, year)
			}

			printSummaries(os.Stdout, summaries, year)
			fmt.Printf("\nPending overall: %s\n", internal.FormatCLP(internal.TotalPending(accounts)))
		}).
		ToCobra()
}

func printSummaries(w io.Writer, summaries []internal.MonthlySummary, year int) {
	fmt.Fprintf(w, "Billed amounts for %d (CLP)\n\n", year)

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"Month"}
	for _, st := range internal.ServiceTypes {
		header = append(header, st.Label())
	}
	header = append(header, "Total")
	t.AppendHeader(header)

	totals := make(map[internal.ServiceType]int64)
	var grand int64
	for _, s := range summaries {
		row := table.Row{s.Month.String()}
		for _, st := range internal.ServiceTypes {
			row = append(row, internal.FormatCLP(s.ByService[st]))
			totals[st] += s.ByService[st]
		}
		row = append(row, internal.FormatCLP(s.Total))
		grand += s.Total
		t.AppendRow(row)
	}

	t.AppendSeparator()
	footer := table.Row{text.Bold.Sprint("Total")}
	for _, st := range internal.ServiceTypes {
		footer = append(footer, text.Bold.Sprint(internal.FormatCLP(totals[st])))
	}
	footer = append(footer, text.Bold.Sprint(internal.FormatCLP(grand)))
	t.AppendFooter(footer)

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	var colConfigs []table.ColumnConfig
	for i := 2; i <= len(internal.ServiceTypes)+2; i++ {
		colConfigs = append(colConfigs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	t.SetColumnConfigs(colConfigs)
	t.Render()

	if lo, hi, ok := monthlySpread(summaries); ok {
		spread := internal.FormatCLP(lo)
		if lo != hi {
			spread = internal.FormatCLPRange(lo, hi)
		}
		fmt.Fprintf(w, "Monthly spend (months with bills): %s\n", spread)
	}
}

// monthlySpread returns the lowest and highest monthly totals, skipping
// months without any bills.
func monthlySpread(summaries []internal.MonthlySummary) (lo, hi int64, ok bool) {
	for _, s := range summaries {
		if s.Total == 0 {
			continue
		}
		if !ok || s.Total < lo {
			lo = s.Total
		}
		if !ok || s.Total > hi {
			hi = s.Total
		}
		ok = true
	}
	return lo, hi, ok
}

type ReportParams struct {
	Config string `descr:"Path to config file" default:""`
	Format string `descr:"Report format" default:"pdf" alts:"pdf,xlsx" strict:"true"`
	Status string `descr:"Only include accounts with this status" default:"all" alts:"all,paid,overdue,at_risk,pending" strict:"true"`
}

func reportCmd() *cobra.Command {
	return boa.NewCmdT[ReportParams]("report").
		WithShort("Export a bill report (PDF or XLSX) into the reports directory").
		WithRunFunc(func(params *ReportParams) {
			ctx := context.Background()
			now := time.Now()
			cfg, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)

			accounts = internal.FilterAccounts(accounts, internal.ListOptions{
				StatusFilter: params.Status,
				Now:          now,
				AtRiskWindow: cfg.AtRiskWindowDays,
			})
			internal.SortAccounts(accounts, "due", "asc")

			var path string
			var err error
			switch params.Format {
			case "xlsx":
				path, err = internal.WriteAccountsXLSX(cfg.ReportsDir, accounts, now, cfg.AtRiskWindowDays)
			default:
				path, err = internal.WriteAccountsPDF(cfg.ReportsDir, accounts, now, cfg.AtRiskWindowDays)
			}
			if err != nil {
				fail("Error: %v", err)
			}
			fmt.Printf("Report written to %s (%d accounts)\n", path, len(accounts))
		}).
		ToCobra()
}

type ChartParams struct {
	Config string `descr:"Path to config file" default:""`
	Kind   string `descr:"Chart type" default:"monthly" alts:"monthly,services" strict:"true"`
	Year   int    `descr:"Year for the monthly chart, defaults to the current year" default:"0"`
}

func chartCmd() *cobra.Command {
	return boa.NewCmdT[ChartParams]("chart").
		WithShort("Render a spending chart (PNG) into the reports directory").
		WithRunFunc(func(params *ChartParams) {
			ctx := context.Background()
			now := time.Now()
			cfg, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)

			year := params.Year
			if year == 0 {
				year = now.Year()
			}

			var path string
			var err error
			switch params.Kind {
			case "services":
				path, err = internal.WriteServiceChart(cfg.ReportsDir, accounts, now)
			default:
				path, err = internal.WriteMonthlyChart(cfg.ReportsDir, accounts, year)
			}
			if err != nil {
				fail("Error: %v", err)
			}
			fmt.Printf("Chart written to %s\n", path)
		}).
		ToCobra()
}

type RemindParams struct {
	Config string `descr:"Path to config file" default:""`
	Send   bool   `descr:"Send the reminder by mail instead of only printing it" default:"false"`
}

func remindCmd() *cobra.Command {
	return boa.NewCmdT[RemindParams]("remind").
		WithShort("Show upcoming and overdue bills, optionally mail a reminder").
		WithRunFunc(func(params *RemindParams) {
			ctx := context.Background()
			now := time.Now()
			cfg, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)

			reminders := internal.CollectReminders(accounts, now, cfg.DueSoonDays, cfg.AtRiskWindowDays)
			if reminders.Empty() {
				fmt.Println("Nothing to remind about, all bills are in order.")
				return
			}

			body := internal.FormatReminderBody(reminders, now)
			fmt.Print(body)

			if !params.Send {
				return
			}
			subject := fmt.Sprintf("Utility bill reminders, %s", now.Format(internal.DateFormat))
			if err := internal.SendReminder(cfg.Email, subject, body); err != nil {
				fail("Error: %v", err)
			}
			fmt.Printf("Reminder sent to %s\n", cfg.Email.To)
		}).
		ToCobra()
}

type InitConfigParams struct {
	Path string `descr:"Where to write the config file, defaults to ~/.bill-tracker/config.yaml" default:""`
}

func initConfigCmd() *cobra.Command {
	return boa.NewCmdT[InitConfigParams]("init-config").
		WithShort("Write a config file with default settings").
		WithRunFunc(func(params *InitConfigParams) {
			path := params.Path
			if path == "" {
				path = internal.DefaultConfigPath()
			}
			if path == "" {
				fail("Error: could not determine a config path, pass --path")
			}
			if _, err := os.Stat(path); err == nil {
				fail("Error: %s already exists", path)
			}
			if err := internal.DefaultConfig().Save(path); err != nil {
				fail("Error: %v", err)
			}
			fmt.Printf("Config written to %s\n", path)
		}).
		ToCobra()
}
