package domain

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// NormalizeCurrency upper-cases and trims an ISO 4217 code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CurrencyScale returns the number of minor-unit digits for code.
func CurrencyScale(code string) (int32, error) {
	cur := money.GetCurrency(NormalizeCurrency(code))
	if cur == nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCurrency, code)
	}

	return int32(cur.Fraction), nil
}

// RoundToCurrency rounds amount to the minor units of code.
func RoundToCurrency(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	scale, err := CurrencyScale(code)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Round(scale), nil
}

// FormatMoney renders amount with the currency's symbol and grouping.
func FormatMoney(amount decimal.Decimal, code string) string {
	code = NormalizeCurrency(code)
	scale, err := CurrencyScale(code)
	if err != nil {
		return amount.String() + " " + code
	}

	return money.New(amount.Shift(scale).Round(0).IntPart(), code).Display()
}
