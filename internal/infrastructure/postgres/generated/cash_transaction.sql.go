package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createCashTransaction = `-- name: CreateCashTransaction :exec
INSERT INTO cash_transactions (id, trading_account_id, currency, kind, direction, amount, balance_after, description, reference_transaction_id, metadata, created_at, account_version)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

type CreateCashTransactionParams struct {
	ID                     string             `json:"id"`
	TradingAccountID       string             `json:"trading_account_id"`
	Currency               string             `json:"currency"`
	Kind                   string             `json:"kind"`
	Direction              string             `json:"direction"`
	Amount                 pgtype.Numeric     `json:"amount"`
	BalanceAfter           pgtype.Numeric     `json:"balance_after"`
	Description            pgtype.Text        `json:"description"`
	ReferenceTransactionID pgtype.Text        `json:"reference_transaction_id"`
	Metadata               []byte             `json:"metadata"`
	CreatedAt              pgtype.Timestamptz `json:"created_at"`
	AccountVersion         int64              `json:"account_version"`
}

func (q *Queries) CreateCashTransaction(ctx context.Context, arg CreateCashTransactionParams) error {
	_, err := q.db.Exec(ctx, createCashTransaction,
		arg.ID,
		arg.TradingAccountID,
		arg.Currency,
		arg.Kind,
		arg.Direction,
		arg.Amount,
		arg.BalanceAfter,
		arg.Description,
		arg.ReferenceTransactionID,
		arg.Metadata,
		arg.CreatedAt,
		arg.AccountVersion,
	)
	return err
}

const listCashTransactions = `-- name: ListCashTransactions :many
SELECT ct.id, ct.trading_account_id, ct.currency, ct.kind, ct.direction, ct.amount, ct.balance_after, ct.description, ct.reference_transaction_id, ct.metadata, ct.created_at, ct.account_version
FROM cash_transactions ct
JOIN trading_accounts ta ON ta.id = ct.trading_account_id
JOIN portfolios p ON p.id = ta.portfolio_id
WHERE p.owner_id = $1
  AND ($2::text = '' OR ct.trading_account_id = $2)
ORDER BY CASE WHEN $2::text = '' THEN NULL ELSE ct.account_version END DESC NULLS LAST,
         ct.created_at DESC, ct.id DESC
LIMIT $3 OFFSET $4
`

type ListCashTransactionsParams struct {
	OwnerID   string `json:"owner_id"`
	AccountID string `json:"account_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

func (q *Queries) ListCashTransactions(ctx context.Context, arg ListCashTransactionsParams) ([]CashTransaction, error) {
	rows, err := q.db.Query(ctx, listCashTransactions,
		arg.OwnerID,
		arg.AccountID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CashTransaction{}
	for rows.Next() {
		var i CashTransaction
		if err := rows.Scan(
			&i.ID,
			&i.TradingAccountID,
			&i.Currency,
			&i.Kind,
			&i.Direction,
			&i.Amount,
			&i.BalanceAfter,
			&i.Description,
			&i.ReferenceTransactionID,
			&i.Metadata,
			&i.CreatedAt,
			&i.AccountVersion,
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

const countCashTransactions = `-- name: CountCashTransactions :one
SELECT COUNT(*)
FROM cash_transactions ct
JOIN trading_accounts ta ON ta.id = ct.trading_account_id
JOIN portfolios p ON p.id = ta.portfolio_id
WHERE p.owner_id = $1
  AND ($2::text = '' OR ct.trading_account_id = $2)
`

type CountCashTransactionsParams struct {
	OwnerID   string `json:"owner_id"`
	AccountID string `json:"account_id"`
}

func (q *Queries) CountCashTransactions(ctx context.Context, arg CountCashTransactionsParams) (int64, error) {
	row := q.db.QueryRow(ctx, countCashTransactions, arg.OwnerID, arg.AccountID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listCashTransactionsByAccount = `-- name: ListCashTransactionsByAccount :many
SELECT id, trading_account_id, currency, kind, direction, amount, balance_after, description, reference_transaction_id, metadata, created_at, account_version
FROM cash_transactions
WHERE trading_account_id = $1
ORDER BY account_version
`

func (q *Queries) ListCashTransactionsByAccount(ctx context.Context, tradingAccountID string) ([]CashTransaction, error) {
	rows, err := q.db.Query(ctx, listCashTransactionsByAccount, tradingAccountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CashTransaction{}
	for rows.Next() {
		var i CashTransaction
		if err := rows.Scan(
			&i.ID,
			&i.TradingAccountID,
			&i.Currency,
			&i.Kind,
			&i.Direction,
			&i.Amount,
			&i.BalanceAfter,
			&i.Description,
			&i.ReferenceTransactionID,
			&i.Metadata,
			&i.CreatedAt,
			&i.AccountVersion,
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
