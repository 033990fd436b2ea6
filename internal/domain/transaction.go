package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a journal entry.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "DEPOSIT"
	KindWithdraw   TransactionKind = "WITHDRAW"
	KindInvestment TransactionKind = "INVESTMENT"
	KindRedemption TransactionKind = "REDEMPTION"
	KindTransfer   TransactionKind = "TRANSFER"
	KindFreeze     TransactionKind = "FREEZE"
	KindUnfreeze   TransactionKind = "UNFREEZE"
)

// Direction is the effect of an entry on the cash balance.
type Direction string

const (
	DirectionIn   Direction = "in"
	DirectionOut  Direction = "out"
	DirectionNone Direction = "none"
)

// Direction returns the fixed cash effect of k. Transfers carry their
// direction on the entry itself, so KindTransfer reports DirectionNone here.
func (k TransactionKind) Direction() Direction {
	switch k {
	case KindDeposit, KindRedemption:
		return DirectionIn
	case KindWithdraw, KindInvestment:
		return DirectionOut
	default:
		return DirectionNone
	}
}

// IsValid reports whether k is a known kind.
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindDeposit, KindWithdraw, KindInvestment, KindRedemption, KindTransfer, KindFreeze, KindUnfreeze:
		return true
	}
	return false
}

// CashTransaction is an immutable journal entry. Amount is always positive;
// BalanceAfter is the account's cash balance right after the entry committed.
type CashTransaction struct {
	ID                     string
	AccountID              string
	Currency               string
	Kind                   TransactionKind
	Direction              Direction
	Amount                 decimal.Decimal
	BalanceAfter           decimal.Decimal
	Description            string
	ReferenceTransactionID string
	Metadata               map[string]any
	CreatedAt              time.Time
	// AccountVersion is the account version this entry produced. It orders
	// an account's journal independently of server clocks.
	AccountVersion         int64
}

// SignedAmount is the entry's effect on the cash balance.
func (t *CashTransaction) SignedAmount() decimal.Decimal {
	switch t.Direction {
	case DirectionIn:
		return t.Amount
	case DirectionOut:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// SortJournal orders entries oldest first: by account version, then by
// creation time, then by ID.
func SortJournal(entries []*CashTransaction) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.AccountVersion != b.AccountVersion {
			return a.AccountVersion < b.AccountVersion
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// ReplayJournal sums the signed effects of one account's entries on top of
// its opening balance, checking every BalanceAfter along the way.
func ReplayJournal(opening decimal.Decimal, entries []*CashTransaction) (decimal.Decimal, error) {
	sorted := make([]*CashTransaction, len(entries))
	copy(sorted, entries)
	SortJournal(sorted)

	balance := opening
	for _, entry := range sorted {
		balance = balance.Add(entry.SignedAmount())
		if !balance.Equal(entry.BalanceAfter) {
			return balance, fmt.Errorf("%w: entry %s expected %s, replayed %s",
				ErrJournalMismatch, entry.ID, entry.BalanceAfter, balance)
		}
	}

	return balance, nil
}

// TransactionPage is one page of journal entries with the total match count.
type TransactionPage struct {
	Entries []*CashTransaction
	Total   int64
	Limit   int
	Offset  int
}

// HasMore reports whether entries remain past this page.
func (p *TransactionPage) HasMore() bool {
	return int64(p.Offset+len(p.Entries)) < p.Total
}
