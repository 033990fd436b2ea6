package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func entry(id string, kind TransactionKind, dir Direction, amount, after int64, at time.Time) *CashTransaction {
	return &CashTransaction{
		ID:           id,
		AccountID:    "acc-1",
		Kind:         kind,
		Direction:    dir,
		Amount:       decimal.NewFromInt(amount),
		BalanceAfter: decimal.NewFromInt(after),
		CreatedAt:    at,
	}
}

func TestTransactionKind_Direction(t *testing.T) {
	tests := map[TransactionKind]Direction{
		KindDeposit:    DirectionIn,
		KindRedemption: DirectionIn,
		KindWithdraw:   DirectionOut,
		KindInvestment: DirectionOut,
		KindFreeze:     DirectionNone,
		KindUnfreeze:   DirectionNone,
	}

	for kind, want := range tests {
		if got := kind.Direction(); got != want {
			t.Errorf("%s.Direction() = %s, want %s", kind, got, want)
		}
	}
}

func TestReplayJournal(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []*CashTransaction{
		entry("03", KindWithdraw, DirectionOut, 250, 250, base.Add(2*time.Minute)),
		entry("01", KindDeposit, DirectionIn, 500, 500, base),
		entry("02", KindFreeze, DirectionNone, 200, 500, base.Add(time.Minute)),
		entry("04", KindTransfer, DirectionIn, 50, 300, base.Add(3*time.Minute)),
		entry("05", KindTransfer, DirectionOut, 300, 0, base.Add(3*time.Minute)),
	}

	got, err := ReplayJournal(decimal.Zero, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected replayed balance 0, got %s", got)
	}
	if entries[0].ID != "03" {
		t.Fatalf("replay must not reorder the caller's slice")
	}
}

func TestReplayJournal_Mismatch(t *testing.T) {
	base := time.Now()
	entries := []*CashTransaction{
		entry("01", KindDeposit, DirectionIn, 500, 500, base),
		entry("02", KindWithdraw, DirectionOut, 100, 450, base.Add(time.Second)),
	}

	if _, err := ReplayJournal(decimal.Zero, entries); !errors.Is(err, ErrJournalMismatch) {
		t.Fatalf("expected ErrJournalMismatch, got %v", err)
	}
}

func TestReplayJournal_FromOpeningBalance(t *testing.T) {
	base := time.Now()
	entries := []*CashTransaction{
		entry("01", KindDeposit, DirectionIn, 10, 1010, base),
		entry("02", KindWithdraw, DirectionOut, 60, 950, base.Add(time.Second)),
	}

	got, err := ReplayJournal(decimal.NewFromInt(1000), entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(950)) {
		t.Fatalf("expected replayed balance 950, got %s", got)
	}

	if _, err := ReplayJournal(decimal.Zero, entries); !errors.Is(err, ErrJournalMismatch) {
		t.Fatalf("expected ErrJournalMismatch when replaying from zero, got %v", err)
	}
}

func TestSortJournal_AccountVersionBeatsClock(t *testing.T) {
	base := time.Now()
	// The second write carries an earlier timestamp from a lagging clock.
	first := entry("b", KindDeposit, DirectionIn, 100, 100, base)
	first.AccountVersion = 1
	second := entry("a", KindWithdraw, DirectionOut, 40, 60, base.Add(-time.Minute))
	second.AccountVersion = 2

	entries := []*CashTransaction{second, first}
	SortJournal(entries)
	if entries[0] != first || entries[1] != second {
		t.Fatalf("expected version order, got %s then %s", entries[0].ID, entries[1].ID)
	}

	got, err := ReplayJournal(decimal.Zero, []*CashTransaction{second, first})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected replayed balance 60, got %s", got)
	}
}

func TestTransactionPage_HasMore(t *testing.T) {
	page := &TransactionPage{Entries: make([]*CashTransaction, 10), Total: 25, Offset: 10}
	if !page.HasMore() {
		t.Fatalf("expected more entries")
	}

	page.Offset = 15
	if page.HasMore() {
		t.Fatalf("expected last page")
	}
}
