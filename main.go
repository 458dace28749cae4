package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gigurra/bill-tracker/internal"
)

func main() {
	// Secrets (SMTP password, Mongo URI) may live in a local .env
	godotenv.Load()

	boa.Cmd{
		Use:   "bill-tracker",
		Short: "Track recurring household utility bills",
		Long:  "Tracks recurring Chilean utility bills (electricity, water, gas, internet, shared building fees) with due-date status coloring, PDF/XLSX reports, charts and optional email reminders. Data lives in a local JSON file, optionally fronted by a MongoDB collection with transparent file fallback.",
		SubCmds: []*cobra.Command{
			addCmd(),
			listCmd(),
			editCmd(),
			payCmd(),
			rmCmd(),
			historyCmd(),
			statsCmd(),
			reportCmd(),
			chartCmd(),
			remindCmd(),
			initConfigCmd(),
		},
	}.Run()
}

// loadApp resolves the config and builds the store stack. Every subcommand
// goes through here.
func loadApp(configPath string) (*internal.Config, internal.Store) {
	cfg, err := internal.LoadConfigOrDefault(configPath)
	if err != nil {
		fail("Error loading config: %v", err)
	}
	return cfg, internal.NewStore(cfg, os.Stderr)
}

func loadAccounts(ctx context.Context, store internal.Store) []internal.Account {
	accounts, err := store.LoadAll(ctx)
	if err != nil {
		fail("Error loading accounts: %v", err)
	}
	return accounts
}

func saveAccounts(ctx context.Context, store internal.Store, accounts []internal.Account) {
	if err := store.SaveAll(ctx, accounts); err != nil {
		fail("Error saving accounts: %v", err)
	}
}

func mustFindAccount(accounts []internal.Account, id string) *internal.Account {
	a := internal.FindAccount(accounts, id)
	if a == nil {
		fail("No account with id %s", id)
	}
	return a
}

// reportError prints validation failures one field per line so every
// violated rule is visible at once; other errors get a single line.
func reportError(err error) {
	var verrs internal.ValidationErrors
	if errors.As(err, &verrs) {
		fmt.Fprintln(os.Stderr, "Validation failed:")
		for _, fe := range verrs {
			fmt.Fprintf(os.Stderr, "  - %s: %s\n", fe.Field, fe.Message)
		}
		os.Exit(1)
	}
	fail("Error: %v", err)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
