package main

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/wealthledger/internal/adapter/http/dto"
	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/infrastructure/auth"
)

func newCashCmd(client func() *apiClient) *cobra.Command {
	cashCmd := &cobra.Command{
		Use:   "cash",
		Short: "Cash ledger operations",
	}

	operations := []struct {
		use   string
		path  string
		short string
	}{
		{"deposit", "deposit", "Deposit cash into an account"},
		{"withdraw", "withdraw", "Withdraw available cash"},
		{"invest", "invest", "Record cash spent on an investment"},
		{"redeem", "redeem", "Record cash returned by a redemption"},
		{"freeze", "freeze", "Reserve available cash"},
		{"unfreeze", "unfreeze", "Release reserved cash"},
	}

	for _, op := range operations {
		var description, idempotencyKey string
		cmd := &cobra.Command{
			Use:   op.use + " <account-id> <amount>",
			Short: op.short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := decimal.NewFromString(args[1])
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", args[1], err)
				}

				var resp dto.CashTransactionResponse
				err = client().post(cmd.Context(), "/accounts/"+url.PathEscape(args[0])+"/"+op.path,
					dto.CashOperationRequest{Amount: amount, Description: description}, idempotencyKey, &resp)
				if err != nil {
					return err
				}

				printTransactions(cmd.OutOrStdout(), []*dto.CashTransactionResponse{&resp})
				return nil
			},
		}
		cmd.Flags().StringVar(&description, "description", "", "Free-text description")
		cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")
		cashCmd.AddCommand(cmd)
	}

	var (
		rate           string
		description    string
		idempotencyKey string
	)
	transferCmd := &cobra.Command{
		Use:   "transfer <from-account> <to-account> <amount>",
		Short: "Move cash between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[2], err)
			}

			req := dto.TransferRequest{
				FromAccountID: args[0],
				ToAccountID:   args[1],
				Amount:        amount,
				Description:   description,
			}
			if rate != "" {
				if req.ExchangeRate, err = decimal.NewFromString(rate); err != nil {
					return fmt.Errorf("invalid exchange rate %q: %w", rate, err)
				}
			}

			var resp dto.TransferResponse
			if err := client().post(cmd.Context(), "/transfers", req, idempotencyKey, &resp); err != nil {
				return err
			}

			printTransactions(cmd.OutOrStdout(), []*dto.CashTransactionResponse{resp.Debit, resp.Credit})
			return nil
		},
	}
	transferCmd.Flags().StringVar(&rate, "rate", "", "Exchange rate for cross-currency transfers")
	transferCmd.Flags().StringVar(&description, "description", "", "Free-text description")
	transferCmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")
	cashCmd.AddCommand(transferCmd)

	var portfolio string
	balancesCmd := &cobra.Command{
		Use:   "balances",
		Short: "List account balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp []*dto.BalanceResponse
			if err := client().get(cmd.Context(), "/balances", url.Values{"portfolioId": {portfolio}}, &resp); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ACCOUNT\tNAME\tPORTFOLIO\tCASH\tAVAILABLE\tFROZEN")
			for _, b := range resp {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", b.AccountID, b.AccountName, b.PortfolioID,
					domain.FormatMoney(b.CashBalance, b.Currency),
					domain.FormatMoney(b.AvailableBalance, b.Currency),
					domain.FormatMoney(b.FrozenBalance, b.Currency))
			}
			return w.Flush()
		},
	}
	balancesCmd.Flags().StringVar(&portfolio, "portfolio", "all", "Portfolio ID, or all")
	cashCmd.AddCommand(balancesCmd)

	var currency string
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarise balances per currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if currency != "" {
				query.Set("currency", currency)
			}

			var resp []*dto.SummaryResponse
			if err := client().get(cmd.Context(), "/summary", query, &resp); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CURRENCY\tACCOUNTS\tCASH\tAVAILABLE\tFROZEN")
			for _, s := range resp {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", s.Currency, s.AccountCount,
					domain.FormatMoney(s.TotalCashBalance, s.Currency),
					domain.FormatMoney(s.TotalAvailableBalance, s.Currency),
					domain.FormatMoney(s.TotalFrozenBalance, s.Currency))
			}
			return w.Flush()
		},
	}
	summaryCmd.Flags().StringVar(&currency, "currency", "", "Currency code, or all (server default when empty)")
	cashCmd.AddCommand(summaryCmd)

	var (
		account string
		limit   int
		offset  int
	)
	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{
				"limit":  {strconv.Itoa(limit)},
				"offset": {strconv.Itoa(offset)},
			}
			if account != "" {
				query.Set("accountId", account)
			}

			var resp dto.TransactionPageResponse
			if err := client().get(cmd.Context(), "/transactions", query, &resp); err != nil {
				return err
			}

			printTransactions(cmd.OutOrStdout(), resp.Transactions)
			fmt.Fprintf(cmd.OutOrStdout(), "showing %d of %d\n", len(resp.Transactions), resp.Total)
			return nil
		},
	}
	transactionsCmd.Flags().StringVar(&account, "account", "", "Restrict to one account")
	transactionsCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	transactionsCmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip")
	cashCmd.AddCommand(transactionsCmd)

	return cashCmd
}

func newIRRCmd(client func() *apiClient) *cobra.Command {
	irrCmd := &cobra.Command{
		Use:   "irr",
		Short: "Portfolio IRR analysis",
	}

	var portfolio string
	run := func(recalculate bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			var (
				resp  []*dto.IRRResponse
				err   error
				query = url.Values{"portfolioId": {portfolio}}
			)
			if recalculate {
				err = client().post(cmd.Context(), "/reports/irr/recalculate?"+query.Encode(), nil, "", &resp)
			} else {
				err = client().get(cmd.Context(), "/reports/irr", query, &resp)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PORTFOLIO\tNAME\tIRR\tINVESTED\tVALUE\tPERIOD\tRISK")
			for _, r := range resp {
				fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%s\t%s\t%s\t%s\n", r.PortfolioID, r.PortfolioName, r.IRR,
					r.TotalInvestment.StringFixed(2), r.CurrentValue.StringFixed(2), r.Period, r.RiskLevel)
			}
			return w.Flush()
		}
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show IRR per portfolio",
		RunE:  run(false),
	}
	recalculateCmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Drop cached IRR results and recompute",
		RunE:  run(true),
	}
	irrCmd.PersistentFlags().StringVar(&portfolio, "portfolio", "all", "Portfolio ID, or all")
	irrCmd.AddCommand(analyzeCmd, recalculateCmd)

	return irrCmd
}

func newLedgerCmd(client func() *apiClient) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger integrity checks",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check every account against the balance invariants (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]any
			if err := client().get(cmd.Context(), "/ledger/consistency", nil, &resp); err != nil {
				return fmt.Errorf("consistency check FAILED: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Consistency check PASSED\nStatus: %v\n", resp["status"])
			return nil
		},
	}

	reconcileCmd := &cobra.Command{
		Use:   "reconcile <account-id>",
		Short: "Replay an account's journal against its stored cash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ReconciliationResponse
			if err := client().get(cmd.Context(), "/accounts/"+url.PathEscape(args[0])+"/reconcile", nil, &resp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Account:     %s\n", resp.AccountID)
			fmt.Fprintf(out, "Recorded:    %s\n", domain.FormatMoney(resp.RecordedBalance, resp.Currency))
			fmt.Fprintf(out, "Replayed:    %s\n", domain.FormatMoney(resp.CalculatedBalance, resp.Currency))
			fmt.Fprintf(out, "Difference:  %s\n", resp.Difference.String())
			fmt.Fprintf(out, "Entries:     %d\n", resp.EntryCount)
			fmt.Fprintf(out, "Reconciled:  %v\n", resp.IsReconciled)
			if resp.Detail != "" {
				fmt.Fprintf(out, "Detail:      %s\n", resp.Detail)
			}
			if !resp.IsReconciled {
				return fmt.Errorf("account %s is not reconciled", resp.AccountID)
			}
			return nil
		},
	}

	ledgerCmd.AddCommand(consistencyCmd, reconcileCmd)
	return ledgerCmd
}

// newTokenCmd signs a token for the root --user and --role flags.
func newTokenCmd() *cobra.Command {
	var (
		secret   string
		email    string
		validFor time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}

			userID, _ := cmd.Flags().GetString("user")
			role, _ := cmd.Flags().GetString("role")
			if role == "" {
				role = string(domain.RoleInvestor)
			}

			token, err := auth.NewJWTManager(secret, validFor).Generate(&domain.User{
				ID:    userID,
				Email: email,
				Role:  domain.Role(role),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret (JWT_SECRET of the server)")
	cmd.Flags().StringVar(&email, "email", "", "Email to embed")
	cmd.Flags().DurationVar(&validFor, "ttl", time.Hour, "Token lifetime")

	return cmd
}

func printTransactions(out io.Writer, entries []*dto.CashTransactionResponse) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tACCOUNT\tKIND\tDIR\tAMOUNT\tBALANCE AFTER\tCREATED")
	for _, e := range entries {
		if e == nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.AccountID, e.Kind, e.Direction,
			domain.FormatMoney(e.Amount, e.Currency),
			domain.FormatMoney(e.BalanceAfter, e.Currency),
			e.CreatedAt.Format(time.RFC3339))
	}
	_ = w.Flush()
}
