package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type CashFlow struct {
	ID          string             `json:"id"`
	PortfolioID string             `json:"portfolio_id"`
	FlowDate    pgtype.Date        `json:"flow_date"`
	FlowType    string             `json:"flow_type"`
	Amount      pgtype.Numeric     `json:"amount"`
	Description pgtype.Text        `json:"description"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type CashTransaction struct {
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

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	Published     bool               `json:"published"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
}

type Portfolio struct {
	ID        string             `json:"id"`
	OwnerID   string             `json:"owner_id"`
	Name      string             `json:"name"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

// TradingAccountRow is a trading account joined with its portfolio owner.
type TradingAccountRow struct {
	ID               string             `json:"id"`
	PortfolioID      string             `json:"portfolio_id"`
	OwnerID          string             `json:"owner_id"`
	Name             string             `json:"name"`
	Currency         string             `json:"currency"`
	CashBalance      pgtype.Numeric     `json:"cash_balance"`
	AvailableBalance pgtype.Numeric     `json:"available_balance"`
	FrozenBalance    pgtype.Numeric     `json:"frozen_balance"`
	OpeningBalance   pgtype.Numeric     `json:"opening_balance"`
	Version          int64              `json:"version"`
	IsActive         bool               `json:"is_active"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}
