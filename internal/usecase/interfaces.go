package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/domain"
)

// TradingAccountRepository defines data access for trading accounts.
// Accounts are returned with OwnerID resolved through their portfolio.
type TradingAccountRepository interface {
	Get(ctx context.Context, id string) (*domain.TradingAccount, error)
	GetForUpdate(ctx context.Context, tx Transaction, id string) (*domain.TradingAccount, error)
	GetManyForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.TradingAccount, error)
	UpdateBalances(ctx context.Context, tx Transaction, account *domain.TradingAccount) error
	ListBalances(ctx context.Context, userID, portfolioID string) ([]*domain.AccountBalance, error)
	Summarize(ctx context.Context, userID, currency string) ([]*domain.CurrencySummary, error)
	ListInconsistent(ctx context.Context, limit int) ([]*domain.TradingAccount, error)
}

// TransactionFilter narrows journal listings. AccountID is optional.
type TransactionFilter struct {
	UserID    string
	AccountID string
	Limit     int
	Offset    int
}

// CashTransactionRepository defines data access for the cash journal.
type CashTransactionRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.CashTransaction) error
	List(ctx context.Context, filter TransactionFilter) ([]*domain.CashTransaction, int64, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.CashTransaction, error)
}

// PortfolioRepository defines read access to portfolios and their cash flows.
type PortfolioRepository interface {
	ListByOwner(ctx context.Context, userID, portfolioID string) ([]*domain.Portfolio, error)
	ListCashFlows(ctx context.Context, portfolioID string) ([]domain.CashFlow, error)
}

// ValuationRepository returns the latest marked value of a portfolio's holdings.
type ValuationRepository interface {
	CurrentValue(ctx context.Context, portfolioID string) (decimal.Decimal, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient store conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IRRCache stores computed IRR analyses.
type IRRCache interface {
	Get(ctx context.Context, key string) ([]*domain.IRRResult, bool, error)
	Set(ctx context.Context, key string, results []*domain.IRRResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claim so the request may be retried.
	Release(ctx context.Context, key string) error
}

// Recorder receives operational measurements from the use cases.
type Recorder interface {
	LedgerOperation(operation, outcome string, amount decimal.Decimal, elapsed time.Duration)
	IRRBatch(analyzed, omitted int, elapsed time.Duration)
	IRRCacheLookup(hit bool)
}

// NopRecorder discards all measurements.
type NopRecorder struct{}

func (NopRecorder) LedgerOperation(string, string, decimal.Decimal, time.Duration) {}
func (NopRecorder) IRRBatch(int, int, time.Duration)                              {}
func (NopRecorder) IRRCacheLookup(bool)                                           {}
