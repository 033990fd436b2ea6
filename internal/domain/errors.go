package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound              = errors.New("account not found")
	ErrNotAuthorized                = errors.New("account does not belong to caller")
	ErrInsufficientAvailableBalance = errors.New("insufficient available balance")
	ErrInsufficientFrozenBalance    = errors.New("insufficient frozen balance")
	ErrBalanceInvariant             = errors.New("cash balance must equal available plus frozen")

	// Amount errors
	ErrInvalidAmount = errors.New("amount must be positive")

	// Transfer errors
	ErrSameAccount          = errors.New("cannot transfer to same account")
	ErrExchangeRateRequired = errors.New("exchange rate required between different currencies")

	// Store errors
	ErrStoreUnavailable       = errors.New("store unavailable")
	ErrConcurrentModification = errors.New("concurrent modification, retries exhausted")

	// Journal errors
	ErrJournalMismatch = errors.New("journal does not replay to recorded balance")
)

var ledgerErrors = []error{
	ErrAccountNotFound,
	ErrNotAuthorized,
	ErrInsufficientAvailableBalance,
	ErrInsufficientFrozenBalance,
	ErrBalanceInvariant,
	ErrInvalidAmount,
	ErrInvalidCurrency,
	ErrSameAccount,
	ErrExchangeRateRequired,
	ErrStoreUnavailable,
	ErrConcurrentModification,
	ErrMetadataTooLarge,
	ErrDescriptionTooLong,
}

// IsLedgerError reports whether err carries one of the ledger's error kinds.
func IsLedgerError(err error) bool {
	for _, target := range ledgerErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
