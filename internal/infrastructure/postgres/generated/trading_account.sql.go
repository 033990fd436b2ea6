package generated

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const tradingAccountColumns = `ta.id, ta.portfolio_id, p.owner_id, ta.name, ta.currency, ta.cash_balance, ta.available_balance, ta.frozen_balance, ta.opening_balance, ta.version, ta.is_active, ta.created_at, ta.updated_at`

func scanTradingAccount(row pgx.Row) (TradingAccountRow, error) {
	var i TradingAccountRow
	err := row.Scan(
		&i.ID,
		&i.PortfolioID,
		&i.OwnerID,
		&i.Name,
		&i.Currency,
		&i.CashBalance,
		&i.AvailableBalance,
		&i.FrozenBalance,
		&i.OpeningBalance,
		&i.Version,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectTradingAccounts(rows pgx.Rows) ([]TradingAccountRow, error) {
	defer rows.Close()
	items := []TradingAccountRow{}
	for rows.Next() {
		i, err := scanTradingAccount(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTradingAccount = `-- name: GetTradingAccount :one
SELECT ` + tradingAccountColumns + `
FROM trading_accounts ta
JOIN portfolios p ON p.id = ta.portfolio_id
WHERE ta.id = $1
`

func (q *Queries) GetTradingAccount(ctx context.Context, id string) (TradingAccountRow, error) {
	return scanTradingAccount(q.db.QueryRow(ctx, getTradingAccount, id))
}

const getTradingAccountForUpdate = `-- name: GetTradingAccountForUpdate :one
SELECT ` + tradingAccountColumns + `
FROM trading_accounts ta
JOIN portfolios p ON p.id = ta.portfolio_id
WHERE ta.id = $1
FOR UPDATE OF ta
`

func (q *Queries) GetTradingAccountForUpdate(ctx context.Context, id string) (TradingAccountRow, error) {
	return scanTradingAccount(q.db.QueryRow(ctx, getTradingAccountForUpdate, id))
}

const getTradingAccountsForUpdate = `-- name: GetTradingAccountsForUpdate :many
SELECT ` + tradingAccountColumns + `
FROM trading_accounts ta
JOIN portfolios p ON p.id = ta.portfolio_id
WHERE ta.id = ANY($1::text[])
ORDER BY ta.id
FOR UPDATE OF ta
`

func (q *Queries) GetTradingAccountsForUpdate(ctx context.Context, ids []string) ([]TradingAccountRow, error) {
	rows, err := q.db.Query(ctx, getTradingAccountsForUpdate, ids)
	if err != nil {
		return nil, err
	}
	return collectTradingAccounts(rows)
}

const updateTradingAccountBalances = `-- name: UpdateTradingAccountBalances :exec
UPDATE trading_accounts
SET cash_balance = $2, available_balance = $3, frozen_balance = $4, version = $5, updated_at = $6
WHERE id = $1
`

type UpdateTradingAccountBalancesParams struct {
	ID               string             `json:"id"`
	CashBalance      pgtype.Numeric     `json:"cash_balance"`
	AvailableBalance pgtype.Numeric     `json:"available_balance"`
	FrozenBalance    pgtype.Numeric     `json:"frozen_balance"`
	Version          int64              `json:"version"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateTradingAccountBalances(ctx context.Context, arg UpdateTradingAccountBalancesParams) error {
	_, err := q.db.Exec(ctx, updateTradingAccountBalances,
		arg.ID,
		arg.CashBalance,
		arg.AvailableBalance,
		arg.FrozenBalance,
		arg.Version,
		arg.UpdatedAt,
	)
	return err
}

const listAccountBalances = `-- name: ListAccountBalances :many
SELECT ` + tradingAccountColumns + `
FROM trading_accounts ta
JOIN portfolios p ON p.id = ta.portfolio_id
WHERE p.owner_id = $1
  AND ta.is_active
  AND ($2::text = '' OR ta.portfolio_id = $2)
ORDER BY ta.name, ta.id
`

type ListAccountBalancesParams struct {
	OwnerID     string `json:"owner_id"`
	PortfolioID string `json:"portfolio_id"`
}

func (q *Queries) ListAccountBalances(ctx context.Context, arg ListAccountBalancesParams) ([]TradingAccountRow, error) {
	rows, err := q.db.Query(ctx, listAccountBalances, arg.OwnerID, arg.PortfolioID)
	if err != nil {
		return nil, err
	}
	return collectTradingAccounts(rows)
}

const summarizeBalances = `-- name: SummarizeBalances :many
SELECT ta.currency,
       COUNT(*)::int AS account_count,
       COALESCE(SUM(ta.cash_balance), 0)::numeric AS total_cash_balance,
       COALESCE(SUM(ta.available_balance), 0)::numeric AS total_available_balance,
       COALESCE(SUM(ta.frozen_balance), 0)::numeric AS total_frozen_balance
FROM trading_accounts ta
JOIN portfolios p ON p.id = ta.portfolio_id
WHERE p.owner_id = $1
  AND ta.is_active
  AND ($2::text = '' OR ta.currency = $2)
GROUP BY ta.currency
ORDER BY ta.currency
`

type SummarizeBalancesParams struct {
	OwnerID  string `json:"owner_id"`
	Currency string `json:"currency"`
}

type SummarizeBalancesRow struct {
	Currency              string         `json:"currency"`
	AccountCount          int32          `json:"account_count"`
	TotalCashBalance      pgtype.Numeric `json:"total_cash_balance"`
	TotalAvailableBalance pgtype.Numeric `json:"total_available_balance"`
	TotalFrozenBalance    pgtype.Numeric `json:"total_frozen_balance"`
}

func (q *Queries) SummarizeBalances(ctx context.Context, arg SummarizeBalancesParams) ([]SummarizeBalancesRow, error) {
	rows, err := q.db.Query(ctx, summarizeBalances, arg.OwnerID, arg.Currency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []SummarizeBalancesRow{}
	for rows.Next() {
		var i SummarizeBalancesRow
		if err := rows.Scan(
			&i.Currency,
			&i.AccountCount,
			&i.TotalCashBalance,
			&i.TotalAvailableBalance,
			&i.TotalFrozenBalance,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listInconsistentAccounts = `-- name: ListInconsistentAccounts :many
SELECT ` + tradingAccountColumns + `
FROM trading_accounts ta
JOIN portfolios p ON p.id = ta.portfolio_id
LEFT JOIN LATERAL (
    SELECT ct.balance_after
    FROM cash_transactions ct
    WHERE ct.trading_account_id = ta.id
    ORDER BY ct.account_version DESC
    LIMIT 1
) last_entry ON TRUE
WHERE ta.cash_balance <> ta.available_balance + ta.frozen_balance
   OR ta.available_balance < 0
   OR ta.frozen_balance < 0
   OR (last_entry.balance_after IS NOT NULL AND last_entry.balance_after <> ta.cash_balance)
   OR (last_entry.balance_after IS NULL AND ta.opening_balance <> ta.cash_balance)
ORDER BY ta.id
LIMIT $1
`

func (q *Queries) ListInconsistentAccounts(ctx context.Context, limit int32) ([]TradingAccountRow, error) {
	rows, err := q.db.Query(ctx, listInconsistentAccounts, limit)
	if err != nil {
		return nil, err
	}
	return collectTradingAccounts(rows)
}
