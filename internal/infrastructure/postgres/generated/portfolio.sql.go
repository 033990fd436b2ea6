package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listPortfoliosByOwner = `-- name: ListPortfoliosByOwner :many
SELECT id, owner_id, name, created_at
FROM portfolios
WHERE owner_id = $1
  AND ($2::text = '' OR id = $2)
ORDER BY created_at, id
`

type ListPortfoliosByOwnerParams struct {
	OwnerID     string `json:"owner_id"`
	PortfolioID string `json:"portfolio_id"`
}

func (q *Queries) ListPortfoliosByOwner(ctx context.Context, arg ListPortfoliosByOwnerParams) ([]Portfolio, error) {
	rows, err := q.db.Query(ctx, listPortfoliosByOwner, arg.OwnerID, arg.PortfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Portfolio{}
	for rows.Next() {
		var i Portfolio
		if err := rows.Scan(
			&i.ID,
			&i.OwnerID,
			&i.Name,
			&i.CreatedAt,
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

const listCashFlowsByPortfolio = `-- name: ListCashFlowsByPortfolio :many
SELECT id, portfolio_id, flow_date, flow_type, amount, description, created_at
FROM cash_flows
WHERE portfolio_id = $1
ORDER BY flow_date, id
`

func (q *Queries) ListCashFlowsByPortfolio(ctx context.Context, portfolioID string) ([]CashFlow, error) {
	rows, err := q.db.Query(ctx, listCashFlowsByPortfolio, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CashFlow{}
	for rows.Next() {
		var i CashFlow
		if err := rows.Scan(
			&i.ID,
			&i.PortfolioID,
			&i.FlowDate,
			&i.FlowType,
			&i.Amount,
			&i.Description,
			&i.CreatedAt,
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

const getPortfolioMarketValue = `-- name: GetPortfolioMarketValue :one
SELECT COALESCE(SUM(pos.quantity * latest.close_price), 0)::numeric AS market_value
FROM positions pos
JOIN LATERAL (
    SELECT ap.close_price
    FROM asset_prices ap
    WHERE ap.asset_id = pos.asset_id
    ORDER BY ap.price_date DESC
    LIMIT 1
) latest ON TRUE
WHERE pos.portfolio_id = $1
`

func (q *Queries) GetPortfolioMarketValue(ctx context.Context, portfolioID string) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, getPortfolioMarketValue, portfolioID)
	var market_value pgtype.Numeric
	err := row.Scan(&market_value)
	return market_value, err
}
