package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/iho/wealthledger/internal/domain"
)

// PostgreSQL error codes for retryable errors.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// DefaultMaxRetries is how many times a conflicting ledger transaction is
// re-run before giving up.
const DefaultMaxRetries = 3

// RetrierOption configures a Retrier.
type RetrierOption func(*Retrier)

// WithBackoff overrides the exponential backoff intervals.
func WithBackoff(initial, max, maxElapsed time.Duration) RetrierOption {
	return func(r *Retrier) {
		r.initialInterval = initial
		r.maxInterval = max
		r.maxElapsedTime = maxElapsed
	}
}

// WithRetryHook registers a function called before every retry.
func WithRetryHook(hook func()) RetrierOption {
	return func(r *Retrier) {
		r.onRetry = hook
	}
}

// Retrier implements usecase.Retrier with exponential backoff.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	onRetry         func()
	logger          zerolog.Logger
}

// NewRetrier creates a new PostgreSQL retrier. Zero maxRetries runs the
// operation once; a negative value falls back to DefaultMaxRetries.
func NewRetrier(maxRetries int, logger zerolog.Logger, opts ...RetrierOption) *Retrier {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}

	r := &Retrier{
		maxRetries:      maxRetries,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          logger.With().Str("component", "retrier").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Retry executes an operation with exponential backoff on retryable errors.
// When retries run out the last error is reported as
// domain.ErrConcurrentModification.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	err := backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("retry", retryCount).
			Msg("retryable database error, retrying")
		if r.onRetry != nil {
			r.onRetry()
		}

		return err
	}, backoff.WithContext(b, ctx))

	if err != nil && isRetryableError(err) {
		return fmt.Errorf("%w: %w", domain.ErrConcurrentModification, err)
	}

	return err
}

// isRetryableError checks if a PostgreSQL error should trigger a retry.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}
