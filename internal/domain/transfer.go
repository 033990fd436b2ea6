package domain

import (
	"github.com/shopspring/decimal"
)

// Transfer moves cash between two trading accounts of the same owner.
// ExchangeRate converts the debited amount into the credit currency and is
// ignored when both accounts share a currency.
type Transfer struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	ExchangeRate  decimal.Decimal
	Description   string
}

// Validate validates transfer request.
func (t *Transfer) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.ExchangeRate.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

// CreditAmount computes what lands in the destination account.
func (t *Transfer) CreditAmount(fromCurrency, toCurrency string) (decimal.Decimal, decimal.Decimal, error) {
	if fromCurrency == toCurrency {
		return t.Amount, decimal.NewFromInt(1), nil
	}
	if !t.ExchangeRate.IsPositive() {
		return decimal.Zero, decimal.Zero, ErrExchangeRateRequired
	}

	credit, err := RoundToCurrency(t.Amount.Mul(t.ExchangeRate), toCurrency)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if !credit.IsPositive() {
		return decimal.Zero, decimal.Zero, ErrInvalidAmount
	}

	return credit, t.ExchangeRate, nil
}

// TransferResult holds the two journal legs of a transfer. Credit references
// Debit through ReferenceTransactionID.
type TransferResult struct {
	Debit        *CashTransaction
	Credit       *CashTransaction
	ExchangeRate decimal.Decimal
}
