package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/infrastructure/postgres/generated"
	"github.com/iho/wealthledger/internal/usecase"
)

// CashTransactionRepository implements usecase.CashTransactionRepository.
type CashTransactionRepository struct {
	queries *generated.Queries
}

// NewCashTransactionRepository creates a new CashTransactionRepository.
func NewCashTransactionRepository(db generated.DBTX) *CashTransactionRepository {
	return &CashTransactionRepository{
		queries: generated.New(db),
	}
}

// Create appends entry to the journal inside tx.
func (r *CashTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.CashTransaction) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	metadata, err := marshalMetadata(entry.Metadata)
	if err != nil {
		return err
	}

	return queries.CreateCashTransaction(ctx, generated.CreateCashTransactionParams{
		ID:                     entry.ID,
		TradingAccountID:       entry.AccountID,
		Currency:               entry.Currency,
		Kind:                   string(entry.Kind),
		Direction:              string(entry.Direction),
		Amount:                 decimalToNumeric(entry.Amount),
		BalanceAfter:           decimalToNumeric(entry.BalanceAfter),
		Description:            textOrNull(entry.Description),
		ReferenceTransactionID: textOrNull(entry.ReferenceTransactionID),
		Metadata:               metadata,
		CreatedAt:              timeToPgTimestamptz(entry.CreatedAt),
		AccountVersion:         entry.AccountVersion,
	})
}

// List returns a page of the caller's journal, newest first, and the total
// number of matching entries.
func (r *CashTransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.CashTransaction, int64, error) {
	total, err := r.queries.CountCashTransactions(ctx, generated.CountCashTransactionsParams{
		OwnerID:   filter.UserID,
		AccountID: filter.AccountID,
	})
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.queries.ListCashTransactions(ctx, generated.ListCashTransactionsParams{
		OwnerID:   filter.UserID,
		AccountID: filter.AccountID,
		Limit:     int32(filter.Limit),
		Offset:    int32(filter.Offset),
	})
	if err != nil {
		return nil, 0, err
	}

	entries, err := rowsToCashTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// ListByAccount returns every entry of an account in account-version order.
func (r *CashTransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.CashTransaction, error) {
	rows, err := r.queries.ListCashTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return rowsToCashTransactions(rows)
}

func rowsToCashTransactions(rows []generated.CashTransaction) ([]*domain.CashTransaction, error) {
	entries := make([]*domain.CashTransaction, 0, len(rows))
	for _, row := range rows {
		entry, err := rowToCashTransaction(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func rowToCashTransaction(row generated.CashTransaction) (*domain.CashTransaction, error) {
	var metadata map[string]any
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("decode metadata of %s: %w", row.ID, err)
		}
	}

	return &domain.CashTransaction{
		ID:                     row.ID,
		AccountID:              row.TradingAccountID,
		Currency:               row.Currency,
		Kind:                   domain.TransactionKind(row.Kind),
		Direction:              domain.Direction(row.Direction),
		Amount:                 numericToDecimal(row.Amount),
		BalanceAfter:           numericToDecimal(row.BalanceAfter),
		Description:            row.Description.String,
		ReferenceTransactionID: row.ReferenceTransactionID.String,
		Metadata:               metadata,
		CreatedAt:              row.CreatedAt.Time,
		AccountVersion:         row.AccountVersion,
	}, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return []byte("{}"), nil
	}

	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	return data, nil
}
