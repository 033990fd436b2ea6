package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/infrastructure/postgres/generated"
	"github.com/iho/wealthledger/internal/usecase"
)

// TradingAccountRepository implements usecase.TradingAccountRepository.
type TradingAccountRepository struct {
	queries *generated.Queries
}

// NewTradingAccountRepository creates a new TradingAccountRepository.
// db is usually a *pgxpool.Pool.
func NewTradingAccountRepository(db generated.DBTX) *TradingAccountRepository {
	return &TradingAccountRepository{
		queries: generated.New(db),
	}
}

// Get retrieves an account with its owner.
func (r *TradingAccountRepository) Get(ctx context.Context, id string) (*domain.TradingAccount, error) {
	row, err := r.queries.GetTradingAccount(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToTradingAccount(row), nil
}

// GetForUpdate retrieves an account and holds its row lock until tx ends.
func (r *TradingAccountRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.TradingAccount, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	row, err := queries.GetTradingAccountForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToTradingAccount(row), nil
}

// GetManyForUpdate locks several accounts in ID order. Missing accounts are
// simply absent from the result.
func (r *TradingAccountRepository) GetManyForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.TradingAccount, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	rows, err := queries.GetTradingAccountsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.TradingAccount, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToTradingAccount(row))
	}

	return accounts, nil
}

// UpdateBalances writes the three balances and the version of account.
func (r *TradingAccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, account *domain.TradingAccount) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	return queries.UpdateTradingAccountBalances(ctx, generated.UpdateTradingAccountBalancesParams{
		ID:               account.ID,
		CashBalance:      decimalToNumeric(account.CashBalance),
		AvailableBalance: decimalToNumeric(account.AvailableBalance),
		FrozenBalance:    decimalToNumeric(account.FrozenBalance),
		Version:          account.Version,
		UpdatedAt:        timeToPgTimestamptz(account.UpdatedAt),
	})
}

// ListBalances lists active accounts of userID by name, optionally in one
// portfolio.
func (r *TradingAccountRepository) ListBalances(ctx context.Context, userID, portfolioID string) ([]*domain.AccountBalance, error) {
	rows, err := r.queries.ListAccountBalances(ctx, generated.ListAccountBalancesParams{
		OwnerID:     userID,
		PortfolioID: portfolioID,
	})
	if err != nil {
		return nil, err
	}

	balances := make([]*domain.AccountBalance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, &domain.AccountBalance{
			AccountID:        row.ID,
			AccountName:      row.Name,
			PortfolioID:      row.PortfolioID,
			Currency:         row.Currency,
			CashBalance:      numericToDecimal(row.CashBalance),
			AvailableBalance: numericToDecimal(row.AvailableBalance),
			FrozenBalance:    numericToDecimal(row.FrozenBalance),
		})
	}

	return balances, nil
}

// Summarize aggregates balances per currency. An empty currency means all.
func (r *TradingAccountRepository) Summarize(ctx context.Context, userID, currency string) ([]*domain.CurrencySummary, error) {
	rows, err := r.queries.SummarizeBalances(ctx, generated.SummarizeBalancesParams{
		OwnerID:  userID,
		Currency: currency,
	})
	if err != nil {
		return nil, err
	}

	summary := make([]*domain.CurrencySummary, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, &domain.CurrencySummary{
			Currency:              row.Currency,
			AccountCount:          int(row.AccountCount),
			TotalCashBalance:      numericToDecimal(row.TotalCashBalance),
			TotalAvailableBalance: numericToDecimal(row.TotalAvailableBalance),
			TotalFrozenBalance:    numericToDecimal(row.TotalFrozenBalance),
		})
	}

	return summary, nil
}

// ListInconsistent returns accounts breaking the balance split or disagreeing
// with their latest journal entry.
func (r *TradingAccountRepository) ListInconsistent(ctx context.Context, limit int) ([]*domain.TradingAccount, error) {
	rows, err := r.queries.ListInconsistentAccounts(ctx, int32(limit))
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.TradingAccount, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToTradingAccount(row))
	}

	return accounts, nil
}

func rowToTradingAccount(row generated.TradingAccountRow) *domain.TradingAccount {
	return &domain.TradingAccount{
		ID:               row.ID,
		PortfolioID:      row.PortfolioID,
		OwnerID:          row.OwnerID,
		Name:             row.Name,
		Currency:         row.Currency,
		CashBalance:      numericToDecimal(row.CashBalance),
		AvailableBalance: numericToDecimal(row.AvailableBalance),
		FrozenBalance:    numericToDecimal(row.FrozenBalance),
		OpeningBalance:   numericToDecimal(row.OpeningBalance),
		Version:          row.Version,
		IsActive:         row.IsActive,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
