package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/gigurra/bill-tracker/internal"
)

type AddParams struct {
	Config      string `descr:"Path to config file" default:""`
	Service     string `descr:"Service type" alts:"electricity,water,gas,internet,shared_fees" strict:"true"`
	Amount      int64  `descr:"Amount in Chilean pesos"`
	Description string `descr:"Bill description"`
	Issued      string `descr:"Issue date (YYYY-MM-DD)"`
	Due         string `descr:"Due date (YYYY-MM-DD)"`
	Cutoff      string `descr:"Service cutoff date (YYYY-MM-DD)" default:""`
	NextReading string `descr:"Next meter reading date (YYYY-MM-DD)" default:""`
	Notes       string `descr:"Additional notes" default:""`
}

func addCmd() *cobra.Command {
	return boa.NewCmdT[AddParams]("add").
		WithShort("Add a new bill").
		WithRunFunc(func(params *AddParams) {
			ctx := context.Background()
			now := time.Now()
			_, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)

			service, err := internal.ParseServiceType(params.Service)
			if err != nil {
				fail("Error: %v", err)
			}

			issued := mustParseDate(params.Issued)
			due := mustParseDate(params.Due)
			cutoff := parseOptionalDate(params.Cutoff)
			nextReading := parseOptionalDate(params.NextReading)

			account := internal.NewAccount(service, params.Description, params.Notes,
				params.Amount, issued, due, cutoff, nextReading, now)
			account.ID = internal.EnsureUniqueID(account.ID, accounts)

			if err := internal.ValidateAccount(account, now); err != nil {
				reportError(err)
			}

			accounts = append(accounts, account)
			saveAccounts(ctx, store, accounts)
			fmt.Printf("Added %s (%s, due %s)\n", account.ID, internal.FormatCLP(account.Amount), due.Format(internal.DateFormat))
		}).
		ToCobra()
}

type ListParams struct {
	Config  string `descr:"Path to config file" default:""`
	Status  string `descr:"Filter by status" default:"all" alts:"all,paid,overdue,at_risk,pending" strict:"true"`
	Service string `descr:"Filter by service type" default:""`
	Search  string `descr:"Free-text search in id, description and notes" default:""`
	Sort    string `descr:"Sort column" default:"due" alts:"due,issue,amount,service,description" strict:"true"`
	Dir     string `descr:"Sort direction" default:"asc" alts:"asc,desc" strict:"true"`
	Output  string `descr:"Output format" default:"table" alts:"table,json" strict:"true"`
}

func listCmd() *cobra.Command {
	return boa.NewCmdT[ListParams]("list").
		WithShort("List bills with status coloring").
		WithRunFunc(func(params *ListParams) {
			ctx := context.Background()
			cfg, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)

			if params.Service != "" {
				if _, err := internal.ParseServiceType(params.Service); err != nil {
					fail("Error: %v", err)
				}
			}

			opts := internal.ListOptions{
				StatusFilter:  params.Status,
				ServiceFilter: params.Service,
				Search:        params.Search,
				SortField:     params.Sort,
				SortDir:       params.Dir,
				Now:           time.Now(),
				AtRiskWindow:  cfg.AtRiskWindowDays,
			}

			display := internal.FilterAccounts(accounts, opts)
			internal.SortAccounts(display, opts.SortField, opts.SortDir)

			if params.Output == "json" {
				internal.PrintAccountsJSON(os.Stdout, display, opts.Now, opts.AtRiskWindow)
				return
			}
			internal.PrintAccountsTable(os.Stdout, accounts, display, opts)
		}).
		ToCobra()
}

type EditParams struct {
	Config      string               `descr:"Path to config file" default:""`
	Id          string               `descr:"Account id" positional:"true"`
	Service     string               `descr:"New service type" default:""`
	Amount      boa.Optional[int64]  `descr:"New amount in Chilean pesos"`
	Description boa.Optional[string] `descr:"New description"`
	Issued      string               `descr:"New issue date (YYYY-MM-DD)" default:""`
	Due         string               `descr:"New due date (YYYY-MM-DD)" default:""`
	Cutoff      string               `descr:"New cutoff date (YYYY-MM-DD)" default:""`
	NextReading string               `descr:"New next meter reading date (YYYY-MM-DD)" default:""`
	Notes       boa.Optional[string] `descr:"New notes"`
}

func editCmd() *cobra.Command {
	return boa.NewCmdT[EditParams]("edit").
		WithShort("Edit a bill (each change lands in its history)").
		WithRunFunc(func(params *EditParams) {
			ctx := context.Background()
			now := time.Now()
			_, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)
			account := mustFindAccount(accounts, params.Id)

			var edit internal.AccountEdit
			if params.Amount.HasValue() {
				edit.Amount = params.Amount.Value()
			}
			if params.Description.HasValue() {
				edit.Description = params.Description.Value()
			}
			if params.Notes.HasValue() {
				edit.Notes = params.Notes.Value()
			}
			if params.Service != "" {
				service, err := internal.ParseServiceType(params.Service)
				if err != nil {
					fail("Error: %v", err)
				}
				edit.Service = &service
			}
			if params.Issued != "" {
				d := mustParseDate(params.Issued)
				edit.IssueDate = &d
			}
			if params.Due != "" {
				d := mustParseDate(params.Due)
				edit.DueDate = &d
			}
			if params.Cutoff != "" {
				d := mustParseDate(params.Cutoff)
				edit.CutoffDate = &d
			}
			if params.NextReading != "" {
				d := mustParseDate(params.NextReading)
				edit.NextReadingDate = &d
			}

			// Validate the result before touching the stored account
			candidate := *account
			candidate.History = nil
			edit.Apply(&candidate, now)
			if err := internal.ValidateAccount(candidate, now); err != nil {
				reportError(err)
			}

			if !edit.Apply(account, now) {
				fmt.Println("Nothing to change")
				return
			}
			saveAccounts(ctx, store, accounts)
			fmt.Printf("Updated %s\n", account.ID)
		}).
		ToCobra()
}

type PayParams struct {
	Config string `descr:"Path to config file" default:""`
	Id     string `descr:"Account id" positional:"true"`
	Date   string `descr:"Payment date (YYYY-MM-DD), defaults to today" default:""`
}

func payCmd() *cobra.Command {
	return boa.NewCmdT[PayParams]("pay").
		WithShort("Mark a bill as paid").
		WithRunFunc(func(params *PayParams) {
			ctx := context.Background()
			_, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)
			account := mustFindAccount(accounts, params.Id)

			if !account.MarkPaid(parseOptionalDate(params.Date), time.Now()) {
				fmt.Printf("%s is already paid\n", account.ID)
				return
			}
			saveAccounts(ctx, store, accounts)
			fmt.Printf("Marked %s as paid (%s)\n", account.ID, internal.FormatCLP(account.Amount))
		}).
		ToCobra()
}

type RmParams struct {
	Config string `descr:"Path to config file" default:""`
	Id     string `descr:"Account id" positional:"true"`
}

func rmCmd() *cobra.Command {
	return boa.NewCmdT[RmParams]("rm").
		WithShort("Delete a bill").
		WithRunFunc(func(params *RmParams) {
			ctx := context.Background()
			_, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)

			accounts, removed := internal.RemoveAccount(accounts, params.Id)
			if !removed {
				fail("No account with id %s", params.Id)
			}
			saveAccounts(ctx, store, accounts)
			fmt.Printf("Deleted %s\n", params.Id)
		}).
		ToCobra()
}

type HistoryParams struct {
	Config string `descr:"Path to config file" default:""`
	Id     string `descr:"Account id" positional:"true"`
}

func historyCmd() *cobra.Command {
	return boa.NewCmdT[HistoryParams]("history").
		WithShort("Show a bill's audit trail").
		WithRunFunc(func(params *HistoryParams) {
			ctx := context.Background()
			_, store := loadApp(params.Config)
			accounts := loadAccounts(ctx, store)
			account := mustFindAccount(accounts, params.Id)
			internal.PrintHistory(os.Stdout, *account)
		}).
		ToCobra()
}

func mustParseDate(s string) time.Time {
	d, err := internal.ParseDate(s)
	if err != nil {
		fail("Error: %v", err)
	}
	return d
}

func parseOptionalDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	return mustParseDate(s)
}
