package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrAmountTooLarge     = fmt.Errorf("%w: exceeds maximum allowed", ErrInvalidAmount)
	ErrAmountPrecision    = fmt.Errorf("%w: too many decimal places for currency", ErrInvalidAmount)
	ErrMetadataTooLarge   = errors.New("metadata size exceeds limit")
	ErrDescriptionTooLong = errors.New("description too long")
)

// Validation constants
const (
	MaxMetadataSize      = 10240 // 10KB
	MaxDescriptionLength = 500
	MaxLedgerAmount      = "1000000000000" // 1 trillion
)

var maxLedgerAmount = decimal.RequireFromString(MaxLedgerAmount)

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	_, err := CurrencyScale(currency)
	return err
}

// ValidateAmount checks amount is positive, bounded and representable in
// the currency's minor units.
func ValidateAmount(amount decimal.Decimal, currency string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(maxLedgerAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxLedgerAmount)
	}

	scale, err := CurrencyScale(currency)
	if err != nil {
		return err
	}
	if !amount.Equal(amount.Round(scale)) {
		return fmt.Errorf("%w: %s allows %d", ErrAmountPrecision, currency, scale)
	}

	return nil
}

// ValidateDescription bounds free-text descriptions.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: limit is %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}
	return nil
}

// ValidateMetadata validates metadata size
func ValidateMetadata(metadata map[string]any) error {
	if metadata == nil {
		return nil
	}

	// Estimate size (rough approximation)
	size := 0
	for k, v := range metadata {
		size += len(k)
		size += len(fmt.Sprintf("%v", v))
	}

	if size > MaxMetadataSize {
		return fmt.Errorf("%w: metadata size %d bytes exceeds limit of %d bytes", ErrMetadataTooLarge, size, MaxMetadataSize)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// IsAllFilter reports whether a portfolio/currency filter selects everything.
func IsAllFilter(filter string) bool {
	return filter == "" || filter == "all"
}
