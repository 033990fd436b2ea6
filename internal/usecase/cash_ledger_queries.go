package usecase

import (
	"context"

	"github.com/iho/wealthledger/internal/domain"
)

// ListTransactionsInput represents input for listing journal entries.
type ListTransactionsInput struct {
	UserID    string
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions returns the caller's journal entries, newest first.
func (uc *CashLedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) (*domain.TransactionPage, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	if input.AccountID != "" {
		account, err := uc.accountRepo.Get(ctx, input.AccountID)
		if err != nil {
			return nil, storeError(err)
		}
		if err := account.CheckOwner(input.UserID); err != nil {
			return nil, err
		}
	}

	entries, total, err := uc.txRepo.List(ctx, TransactionFilter{
		UserID:    input.UserID,
		AccountID: input.AccountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, storeError(err)
	}

	return &domain.TransactionPage{
		Entries: entries,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// GetBalances lists balances of the caller's active accounts. An empty or
// "all" portfolio filter covers every portfolio.
func (uc *CashLedgerUseCase) GetBalances(ctx context.Context, userID, portfolioID string) ([]*domain.AccountBalance, error) {
	if domain.IsAllFilter(portfolioID) {
		portfolioID = ""
	}

	balances, err := uc.accountRepo.ListBalances(ctx, userID, portfolioID)
	if err != nil {
		return nil, storeError(err)
	}

	return balances, nil
}

// GetSummary aggregates the caller's balances per currency. An empty currency
// means the configured default; "all" returns every currency.
func (uc *CashLedgerUseCase) GetSummary(ctx context.Context, userID, currency string) ([]*domain.CurrencySummary, error) {
	switch {
	case currency == "":
		currency = uc.cfg.DefaultCurrency
	case domain.IsAllFilter(currency):
		currency = ""
	default:
		currency = domain.NormalizeCurrency(currency)
		if err := domain.ValidateCurrency(currency); err != nil {
			return nil, err
		}
	}

	summary, err := uc.accountRepo.Summarize(ctx, userID, currency)
	if err != nil {
		return nil, storeError(err)
	}

	return summary, nil
}
