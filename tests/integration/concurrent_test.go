package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/usecase"
	"github.com/iho/wealthledger/tests/testutil"
)

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newLedgerStack(testDB)

	portfolio := testDB.CreatePortfolio(ctx, "user-1", "Core")
	account := testDB.CreateTradingAccount(ctx, portfolio, "Brokerage", "USD")

	if _, err := stack.cash.Deposit(ctx, usecase.CashOperationInput{
		UserID: "user-1", AccountID: account.ID, Amount: decimal.NewFromInt(500),
	}); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	const workers = 80

	var (
		wg           sync.WaitGroup
		successCount atomic.Int32
		rejectCount  atomic.Int32
		otherErrs    = make(chan error, workers)
	)

	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()

			_, err := stack.cash.Withdraw(ctx, usecase.CashOperationInput{
				UserID: "user-1", AccountID: account.ID, Amount: decimal.NewFromInt(10),
			})
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, domain.ErrInsufficientAvailableBalance):
				rejectCount.Add(1)
			default:
				otherErrs <- err
			}
		}()
	}
	wg.Wait()
	close(otherErrs)

	for err := range otherErrs {
		t.Errorf("unexpected error: %v", err)
	}

	if got := successCount.Load(); got != 50 {
		t.Errorf("expected exactly 50 withdrawals to succeed, got %d", got)
	}
	if got := rejectCount.Load(); got != workers-50 {
		t.Errorf("expected %d rejections, got %d", workers-50, got)
	}

	cash, available, frozen := testDB.AccountBalances(ctx, account.ID)
	if !cash.IsZero() || !available.IsZero() || !frozen.IsZero() {
		t.Errorf("expected empty account, got cash=%s available=%s frozen=%s", cash, available, frozen)
	}

	result, err := stack.recon.ReconcileAccount(ctx, "user-1", account.ID)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !result.IsReconciled || result.EntryCount != 51 {
		t.Errorf("expected 51 reconciled entries, got %d reconciled=%v", result.EntryCount, result.IsReconciled)
	}
}

func TestConcurrentOpposingTransfers(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newLedgerStack(testDB)

	portfolio := testDB.CreatePortfolio(ctx, "user-1", "Core")
	a := testDB.CreateTradingAccount(ctx, portfolio, "A", "USD")
	b := testDB.CreateTradingAccount(ctx, portfolio, "B", "USD")

	for _, acc := range []*domain.TradingAccount{a, b} {
		if _, err := stack.cash.Deposit(ctx, usecase.CashOperationInput{
			UserID: "user-1", AccountID: acc.ID, Amount: decimal.NewFromInt(1000),
		}); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
	}

	const rounds = 25

	var wg sync.WaitGroup
	errs := make(chan error, rounds*2)

	transfer := func(from, to string) {
		defer wg.Done()
		if _, err := stack.cash.Transfer(ctx, usecase.TransferInput{
			UserID:        "user-1",
			FromAccountID: from,
			ToAccountID:   to,
			Amount:        decimal.NewFromInt(7),
		}); err != nil {
			errs <- err
		}
	}

	wg.Add(rounds * 2)
	for range rounds {
		go transfer(a.ID, b.ID)
		go transfer(b.ID, a.ID)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("transfer failed: %v", err)
	}

	cashA, _, _ := testDB.AccountBalances(ctx, a.ID)
	cashB, _, _ := testDB.AccountBalances(ctx, b.ID)
	if !cashA.Add(cashB).Equal(decimal.NewFromInt(2000)) {
		t.Errorf("money was created or lost: %s + %s", cashA, cashB)
	}
	if !cashA.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected symmetric transfers to net out, got %s", cashA)
	}

	if err := stack.recon.CheckConsistency(ctx); err != nil {
		t.Errorf("expected consistent ledger, got %v", err)
	}
}
