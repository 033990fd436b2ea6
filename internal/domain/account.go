package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradingAccount is the cash-holding side of a portfolio. Balances are only
// changed through the cash ledger.
type TradingAccount struct {
	ID               string
	PortfolioID      string
	OwnerID          string
	Name             string
	Currency         string
	CashBalance      decimal.Decimal
	AvailableBalance decimal.Decimal
	FrozenBalance    decimal.Decimal
	// OpeningBalance is the cash the account was provisioned with. The
	// journal replays from it.
	OpeningBalance   decimal.Decimal
	Version          int64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Balances is the triple the ledger keeps consistent.
type Balances struct {
	Cash      decimal.Decimal
	Available decimal.Decimal
	Frozen    decimal.Decimal
}

// Validate checks cash == available + frozen and that no part is negative.
func (b Balances) Validate() error {
	if b.Available.IsNegative() || b.Frozen.IsNegative() {
		return ErrBalanceInvariant
	}
	if !b.Cash.Equal(b.Available.Add(b.Frozen)) {
		return ErrBalanceInvariant
	}

	return nil
}

// Balances returns the account's current balances.
func (a *TradingAccount) Balances() Balances {
	return Balances{
		Cash:      a.CashBalance,
		Available: a.AvailableBalance,
		Frozen:    a.FrozenBalance,
	}
}

// CheckOwner verifies the account can be mutated by userID.
func (a *TradingAccount) CheckOwner(userID string) error {
	if !a.IsActive {
		return ErrAccountNotFound
	}
	if a.OwnerID != userID {
		return ErrNotAuthorized
	}

	return nil
}

// Credit returns balances after adding amount to cash and available.
func (a *TradingAccount) Credit(amount decimal.Decimal) (Balances, error) {
	if !amount.IsPositive() {
		return Balances{}, ErrInvalidAmount
	}

	return Balances{
		Cash:      a.CashBalance.Add(amount),
		Available: a.AvailableBalance.Add(amount),
		Frozen:    a.FrozenBalance,
	}, nil
}

// Debit returns balances after removing amount from cash and available.
func (a *TradingAccount) Debit(amount decimal.Decimal) (Balances, error) {
	if !amount.IsPositive() {
		return Balances{}, ErrInvalidAmount
	}
	if a.AvailableBalance.LessThan(amount) {
		return Balances{}, ErrInsufficientAvailableBalance
	}

	return Balances{
		Cash:      a.CashBalance.Sub(amount),
		Available: a.AvailableBalance.Sub(amount),
		Frozen:    a.FrozenBalance,
	}, nil
}

// Freeze moves amount from available to frozen.
func (a *TradingAccount) Freeze(amount decimal.Decimal) (Balances, error) {
	if !amount.IsPositive() {
		return Balances{}, ErrInvalidAmount
	}
	if a.AvailableBalance.LessThan(amount) {
		return Balances{}, ErrInsufficientAvailableBalance
	}

	return Balances{
		Cash:      a.CashBalance,
		Available: a.AvailableBalance.Sub(amount),
		Frozen:    a.FrozenBalance.Add(amount),
	}, nil
}

// Unfreeze moves amount from frozen back to available.
func (a *TradingAccount) Unfreeze(amount decimal.Decimal) (Balances, error) {
	if !amount.IsPositive() {
		return Balances{}, ErrInvalidAmount
	}
	if a.FrozenBalance.LessThan(amount) {
		return Balances{}, ErrInsufficientFrozenBalance
	}

	return Balances{
		Cash:      a.CashBalance,
		Available: a.AvailableBalance.Add(amount),
		Frozen:    a.FrozenBalance.Sub(amount),
	}, nil
}

// Apply stores b on the account and bumps its version.
func (a *TradingAccount) Apply(b Balances, at time.Time) {
	a.CashBalance = b.Cash
	a.AvailableBalance = b.Available
	a.FrozenBalance = b.Frozen
	a.Version++
	a.UpdatedAt = at
}

// AccountBalance is the read model returned by balance queries.
type AccountBalance struct {
	AccountID        string
	AccountName      string
	PortfolioID      string
	Currency         string
	CashBalance      decimal.Decimal
	AvailableBalance decimal.Decimal
	FrozenBalance    decimal.Decimal
}

// CurrencySummary aggregates balances of one currency across accounts.
type CurrencySummary struct {
	Currency              string
	AccountCount          int
	TotalCashBalance      decimal.Decimal
	TotalAvailableBalance decimal.Decimal
	TotalFrozenBalance    decimal.Decimal
}
