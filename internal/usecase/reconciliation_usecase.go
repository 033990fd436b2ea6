package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/domain"
)

// ErrInconsistentLedger is returned when stored balances disagree with the
// balance invariant or with the journal.
var ErrInconsistentLedger = errors.New("ledger inconsistency detected")

// ReconciliationUseCase verifies balances against the journal.
type ReconciliationUseCase struct {
	accountRepo TradingAccountRepository
	txRepo      CashTransactionRepository
	logger      zerolog.Logger
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo TradingAccountRepository,
	txRepo CashTransactionRepository,
	logger zerolog.Logger,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		logger:      logger.With().Str("component", "reconciliation").Logger(),
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID         string
	Currency          string
	OpeningBalance    decimal.Decimal
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	EntryCount        int
	InvariantHolds    bool
	IsReconciled      bool
	Detail            string
	LastChecked       time.Time
}

// ReconcileAccount replays the account's journal from its opening balance and
// compares the result with the stored cash balance.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, userID, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.Get(ctx, accountID)
	if err != nil {
		return nil, storeError(err)
	}
	if err := account.CheckOwner(userID); err != nil {
		return nil, err
	}

	entries, err := uc.txRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, storeError(err)
	}

	result := &ReconciliationResult{
		AccountID:       account.ID,
		Currency:        account.Currency,
		OpeningBalance:  account.OpeningBalance,
		RecordedBalance: account.CashBalance,
		EntryCount:      len(entries),
		InvariantHolds:  account.Balances().Validate() == nil,
		LastChecked:     time.Now().UTC(),
	}

	replayed, replayErr := domain.ReplayJournal(account.OpeningBalance, entries)
	result.CalculatedBalance = replayed
	result.Difference = account.CashBalance.Sub(replayed)
	result.IsReconciled = replayErr == nil && result.Difference.IsZero() && result.InvariantHolds

	switch {
	case replayErr != nil:
		result.Detail = replayErr.Error()
	case !result.InvariantHolds:
		result.Detail = domain.ErrBalanceInvariant.Error()
	case !result.Difference.IsZero():
		result.Detail = fmt.Sprintf("journal replays to %s, account records %s", replayed, account.CashBalance)
	}

	if !result.IsReconciled {
		uc.logger.Error().
			Str("account_id", account.ID).
			Str("recorded", result.RecordedBalance.String()).
			Str("calculated", result.CalculatedBalance.String()).
			Str("detail", result.Detail).
			Msg("account failed reconciliation")
	}

	return result, nil
}

// CheckConsistency scans for accounts whose balances break the invariant or
// disagree with their latest journal entry. An account without entries must
// still hold its opening balance.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) error {
	accounts, err := uc.accountRepo.ListInconsistent(ctx, maxInconsistentAccounts)
	if err != nil {
		return storeError(err)
	}

	if len(accounts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		ids = append(ids, acc.ID)
	}

	uc.logger.Error().Strs("account_ids", ids).Msg("ledger inconsistency detected")

	return fmt.Errorf("%w: %d account(s) affected, first %s", ErrInconsistentLedger, len(accounts), ids[0])
}
