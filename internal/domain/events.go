package domain

import "time"

// Event types
const (
	EventTypeCashDeposited   = "cash.deposited"
	EventTypeCashWithdrawn   = "cash.withdrawn"
	EventTypeCashInvested    = "cash.invested"
	EventTypeCashRedeemed    = "cash.redeemed"
	EventTypeCashFrozen      = "cash.frozen"
	EventTypeCashUnfrozen    = "cash.unfrozen"
	EventTypeCashTransferred = "cash.transferred"
)

// Aggregate types
const (
	AggregateTypeTradingAccount = "trading_account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

var kindEventTypes = map[TransactionKind]string{
	KindDeposit:    EventTypeCashDeposited,
	KindWithdraw:   EventTypeCashWithdrawn,
	KindInvestment: EventTypeCashInvested,
	KindRedemption: EventTypeCashRedeemed,
	KindFreeze:     EventTypeCashFrozen,
	KindUnfreeze:   EventTypeCashUnfrozen,
	KindTransfer:   EventTypeCashTransferred,
}

// NewCashEvent builds the outbox event documenting a journal entry.
func NewCashEvent(id string, entry *CashTransaction, balances Balances) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   entry.AccountID,
		AggregateType: AggregateTypeTradingAccount,
		EventType:     kindEventTypes[entry.Kind],
		Payload: map[string]any{
			"transaction_id":    entry.ID,
			"account_id":        entry.AccountID,
			"kind":              string(entry.Kind),
			"direction":         string(entry.Direction),
			"amount":            entry.Amount.String(),
			"currency":          entry.Currency,
			"cash_balance":      balances.Cash.String(),
			"available_balance": balances.Available.String(),
			"frozen_balance":    balances.Frozen.String(),
		},
		CreatedAt: entry.CreatedAt,
	}
}
