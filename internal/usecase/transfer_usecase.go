package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/domain"
)

// TransferInput represents input for moving cash between two accounts.
type TransferInput struct {
	UserID        string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	ExchangeRate  decimal.Decimal
	Description   string
	Metadata      map[string]any
}

// Transfer debits one account and credits another in a single transaction.
// Both accounts must belong to the caller. The credit entry references the
// debit entry.
func (uc *CashLedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.TransferResult, error) {
	start := time.Now()

	transfer := &domain.Transfer{
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		ExchangeRate:  input.ExchangeRate,
		Description:   input.Description,
	}
	if err := transfer.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := domain.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	var result *domain.TransferResult
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		result, err = uc.transferOnce(ctx, transfer, input)
		return err
	})

	uc.recorder.LedgerOperation(string(domain.KindTransfer), outcomeOf(err), input.Amount, time.Since(start))
	if err != nil {
		err = storeError(err)
		uc.logger.Warn().
			Err(err).
			Str("from_account_id", input.FromAccountID).
			Str("to_account_id", input.ToAccountID).
			Str("user_id", input.UserID).
			Msg("transfer rejected")
		return nil, err
	}

	uc.logger.Info().
		Str("from_account_id", input.FromAccountID).
		Str("to_account_id", input.ToAccountID).
		Str("debit_id", result.Debit.ID).
		Str("credit_id", result.Credit.ID).
		Str("exchange_rate", result.ExchangeRate.String()).
		Msg("transfer committed")

	return result, nil
}

func (uc *CashLedgerUseCase) transferOnce(ctx context.Context, transfer *domain.Transfer, input TransferInput) (*domain.TransferResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.TxTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock in ID order so opposing transfers cannot deadlock.
	ids := []string{transfer.FromAccountID, transfer.ToAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetManyForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.TradingAccount, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}

	from, to := byID[transfer.FromAccountID], byID[transfer.ToAccountID]
	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}
	if err := from.CheckOwner(input.UserID); err != nil {
		return nil, err
	}
	if err := to.CheckOwner(input.UserID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(transfer.Amount, from.Currency); err != nil {
		return nil, err
	}

	creditAmount, rate, err := transfer.CreditAmount(from.Currency, to.Currency)
	if err != nil {
		return nil, err
	}

	fromAfter, err := from.Debit(transfer.Amount)
	if err != nil {
		return nil, err
	}
	toAfter, err := to.Credit(creditAmount)
	if err != nil {
		return nil, err
	}
	if err := fromAfter.Validate(); err != nil {
		return nil, err
	}
	if err := toAfter.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	from.Apply(fromAfter, now)
	to.Apply(toAfter, now)

	for _, acc := range []*domain.TradingAccount{from, to} {
		if err := uc.accountRepo.UpdateBalances(ctx, tx, acc); err != nil {
			return nil, err
		}
	}

	transferMeta := map[string]any{
		"from_account_id": from.ID,
		"to_account_id":   to.ID,
		"exchange_rate":   rate.String(),
	}

	debit := &domain.CashTransaction{
		ID:             uc.idGen.Generate(),
		AccountID:      from.ID,
		Currency:       from.Currency,
		Kind:           domain.KindTransfer,
		Direction:      domain.DirectionOut,
		Amount:         transfer.Amount,
		BalanceAfter:   fromAfter.Cash,
		Description:    input.Description,
		Metadata:       mergeMetadata(input.Metadata, transferMeta),
		CreatedAt:      now,
		AccountVersion: from.Version,
	}
	credit := &domain.CashTransaction{
		ID:                     uc.idGen.Generate(),
		AccountID:              to.ID,
		Currency:               to.Currency,
		Kind:                   domain.KindTransfer,
		Direction:              domain.DirectionIn,
		Amount:                 creditAmount,
		BalanceAfter:           toAfter.Cash,
		Description:            input.Description,
		ReferenceTransactionID: debit.ID,
		Metadata:               mergeMetadata(input.Metadata, transferMeta),
		CreatedAt:              now,
		AccountVersion:         to.Version,
	}

	legs := []struct {
		entry    *domain.CashTransaction
		balances domain.Balances
	}{
		{debit, fromAfter},
		{credit, toAfter},
	}
	for _, leg := range legs {
		if err := uc.txRepo.Create(ctx, tx, leg.entry); err != nil {
			return nil, err
		}
		event := domain.NewCashEvent(uc.idGen.Generate(), leg.entry, leg.balances)
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.TransferResult{Debit: debit, Credit: credit, ExchangeRate: rate}, nil
}
