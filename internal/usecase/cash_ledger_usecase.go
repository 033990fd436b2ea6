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

// CashLedgerConfig tunes the cash ledger.
type CashLedgerConfig struct {
	DefaultCurrency string
	TxTimeout       time.Duration
}

// CashLedgerUseCase records cash movements against trading accounts.
type CashLedgerUseCase struct {
	txManager   TransactionManager
	accountRepo TradingAccountRepository
	txRepo      CashTransactionRepository
	outboxRepo  OutboxRepository
	retrier     Retrier
	idGen       IDGenerator
	recorder    Recorder
	logger      zerolog.Logger
	cfg         CashLedgerConfig
	now         func() time.Time
}

// NewCashLedgerUseCase creates a new CashLedgerUseCase.
func NewCashLedgerUseCase(
	txManager TransactionManager,
	accountRepo TradingAccountRepository,
	txRepo CashTransactionRepository,
	outboxRepo OutboxRepository,
	retrier Retrier,
	idGen IDGenerator,
	recorder Recorder,
	logger zerolog.Logger,
	cfg CashLedgerConfig,
) *CashLedgerUseCase {
	if cfg.TxTimeout <= 0 {
		cfg.TxTimeout = DefaultTransactionTimeout
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = DefaultSummaryCurrency
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &CashLedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		outboxRepo:  outboxRepo,
		retrier:     retrier,
		idGen:       idGen,
		recorder:    recorder,
		logger:      logger.With().Str("component", "cash_ledger").Logger(),
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CashOperationInput is the input shared by all single-account operations.
type CashOperationInput struct {
	UserID      string
	AccountID   string
	Amount      decimal.Decimal
	Description string
	Metadata    map[string]any
}

// operation describes how one kind of entry changes an account.
type operation struct {
	kind   domain.TransactionKind
	change func(acc *domain.TradingAccount, amount decimal.Decimal) (domain.Balances, error)
	// extra contributes kind-specific metadata computed from the new balances.
	extra func(amount decimal.Decimal, after domain.Balances) map[string]any
}

var (
	depositOp = operation{
		kind:   domain.KindDeposit,
		change: (*domain.TradingAccount).Credit,
	}
	withdrawOp = operation{
		kind:   domain.KindWithdraw,
		change: (*domain.TradingAccount).Debit,
	}
	investmentOp = operation{
		kind:   domain.KindInvestment,
		change: (*domain.TradingAccount).Debit,
	}
	redemptionOp = operation{
		kind:   domain.KindRedemption,
		change: (*domain.TradingAccount).Credit,
	}
	freezeOp = operation{
		kind:   domain.KindFreeze,
		change: (*domain.TradingAccount).Freeze,
		extra: func(amount decimal.Decimal, after domain.Balances) map[string]any {
			return map[string]any{
				"operation":             "freeze",
				"frozen_amount":         amount.String(),
				"new_frozen_balance":    after.Frozen.String(),
				"new_available_balance": after.Available.String(),
			}
		},
	}
	unfreezeOp = operation{
		kind:   domain.KindUnfreeze,
		change: (*domain.TradingAccount).Unfreeze,
		extra: func(amount decimal.Decimal, after domain.Balances) map[string]any {
			return map[string]any{
				"operation":             "unfreeze",
				"frozen_amount":         amount.String(),
				"new_frozen_balance":    after.Frozen.String(),
				"new_available_balance": after.Available.String(),
			}
		},
	}
)

// Deposit credits cash and available balance.
func (uc *CashLedgerUseCase) Deposit(ctx context.Context, input CashOperationInput) (*domain.CashTransaction, error) {
	return uc.apply(ctx, depositOp, input)
}

// Withdraw debits cash and available balance. Frozen funds cannot be withdrawn.
func (uc *CashLedgerUseCase) Withdraw(ctx context.Context, input CashOperationInput) (*domain.CashTransaction, error) {
	return uc.apply(ctx, withdrawOp, input)
}

// RecordInvestment debits cash spent on buying assets.
func (uc *CashLedgerUseCase) RecordInvestment(ctx context.Context, input CashOperationInput) (*domain.CashTransaction, error) {
	return uc.apply(ctx, investmentOp, input)
}

// RecordRedemption credits cash received from selling assets.
func (uc *CashLedgerUseCase) RecordRedemption(ctx context.Context, input CashOperationInput) (*domain.CashTransaction, error) {
	return uc.apply(ctx, redemptionOp, input)
}

// Freeze moves funds from available to frozen. Cash is unchanged.
func (uc *CashLedgerUseCase) Freeze(ctx context.Context, input CashOperationInput) (*domain.CashTransaction, error) {
	return uc.apply(ctx, freezeOp, input)
}

// Unfreeze moves funds from frozen back to available. Cash is unchanged.
func (uc *CashLedgerUseCase) Unfreeze(ctx context.Context, input CashOperationInput) (*domain.CashTransaction, error) {
	return uc.apply(ctx, unfreezeOp, input)
}

func (uc *CashLedgerUseCase) apply(ctx context.Context, op operation, input CashOperationInput) (*domain.CashTransaction, error) {
	start := time.Now()
	opName := string(op.kind)

	if !input.Amount.IsPositive() {
		uc.recorder.LedgerOperation(opName, outcomeOf(domain.ErrInvalidAmount), input.Amount, time.Since(start))
		return nil, domain.ErrInvalidAmount
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := domain.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	var entry *domain.CashTransaction
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		entry, err = uc.applyOnce(ctx, op, input)
		return err
	})

	uc.recorder.LedgerOperation(opName, outcomeOf(err), input.Amount, time.Since(start))
	if err != nil {
		err = storeError(err)
		uc.logger.Warn().
			Err(err).
			Str("operation", opName).
			Str("account_id", input.AccountID).
			Str("user_id", input.UserID).
			Msg("cash operation rejected")
		return nil, err
	}

	uc.logger.Info().
		Str("operation", opName).
		Str("account_id", input.AccountID).
		Str("transaction_id", entry.ID).
		Str("amount", entry.Amount.String()).
		Str("balance_after", entry.BalanceAfter.String()).
		Msg("cash operation committed")

	return entry, nil
}

func (uc *CashLedgerUseCase) applyOnce(ctx context.Context, op operation, input CashOperationInput) (*domain.CashTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.TxTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if err := account.CheckOwner(input.UserID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount, account.Currency); err != nil {
		return nil, err
	}

	after, err := op.change(account, input.Amount)
	if err != nil {
		return nil, err
	}
	if err := after.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	account.Apply(after, now)

	if err := uc.accountRepo.UpdateBalances(ctx, tx, account); err != nil {
		return nil, err
	}

	metadata := mergeMetadata(input.Metadata, nil)
	if op.extra != nil {
		metadata = mergeMetadata(metadata, op.extra(input.Amount, after))
	}

	entry := &domain.CashTransaction{
		ID:             uc.idGen.Generate(),
		AccountID:      account.ID,
		Currency:       account.Currency,
		Kind:           op.kind,
		Direction:      op.kind.Direction(),
		Amount:         input.Amount,
		BalanceAfter:   after.Cash,
		Description:    input.Description,
		Metadata:       metadata,
		CreatedAt:      now,
		AccountVersion: account.Version,
	}
	if err := uc.txRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.outboxRepo.Create(ctx, tx, domain.NewCashEvent(uc.idGen.Generate(), entry, after)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// storeError keeps ledger errors as they are and reports everything else
// as an unavailable store.
func storeError(err error) error {
	if err == nil || domain.IsLedgerError(err) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, domain.ErrConcurrentModification):
		return "conflict"
	case domain.IsLedgerError(err):
		return "rejected"
	default:
		return "failed"
	}
}

func mergeMetadata(base, extra map[string]any) map[string]any {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}

	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}

	return merged
}
