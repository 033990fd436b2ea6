package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultSummaryCurrency is used by GetSummary when no currency is given.
	DefaultSummaryCurrency = "CNY"

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultIRRCacheTTL bounds how stale a cached IRR analysis can be.
	DefaultIRRCacheTTL = 10 * time.Minute

	// DefaultIRRParallelism caps concurrent per-portfolio analyses.
	DefaultIRRParallelism = 8

	// DefaultDiscountRate is the fixed rate for the secondary NPV figure.
	DefaultDiscountRate = 0.10

	maxInconsistentAccounts = 100
)
