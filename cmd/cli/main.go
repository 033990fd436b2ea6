package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
		userID  string
		role    string
		token   string
	)

	rootCmd := &cobra.Command{
		Use:           "wealthledger-cli",
		Short:         "Wealthledger CLI tool",
		Long:          `A command line interface for the wealthledger cash ledger and IRR reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wealthledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", os.Getenv("WEALTHLEDGER_USER"), "Caller user ID, sent as X-User-ID when no token is given")
	rootCmd.PersistentFlags().StringVar(&role, "role", "", "Caller role, sent as X-User-Role when no token is given (the server must trust the header)")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("WEALTHLEDGER_TOKEN"), "Bearer token")

	client := func() *apiClient {
		return newAPIClient(baseURL, userID, role, token, timeout)
	}

	rootCmd.AddCommand(
		newCashCmd(client),
		newIRRCmd(client),
		newLedgerCmd(client),
		newTokenCmd(),
	)

	return rootCmd
}
