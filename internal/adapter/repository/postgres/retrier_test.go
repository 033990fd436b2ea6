package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/iho/wealthledger/internal/domain"
)

func fastRetrier(maxRetries int, opts ...RetrierOption) *Retrier {
	opts = append([]RetrierOption{WithBackoff(time.Millisecond, 2*time.Millisecond, time.Second)}, opts...)
	return NewRetrier(maxRetries, zerolog.Nop(), opts...)
}

func TestRetrierRetriesOnRetryableError(t *testing.T) {
	retries := 0
	r := fastRetrier(2, WithRetryHook(func() { retries++ }))

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return &pgconn.PgError{Code: pgErrDeadlock}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if retries != 1 {
		t.Fatalf("expected retry hook to run once, got %d", retries)
	}
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	r := fastRetrier(0)
	attempts := 0
	permanentErr := errors.New("permanent")

	err := r.Retry(context.Background(), func() error {
		attempts++
		return permanentErr
	})

	if !errors.Is(err, permanentErr) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if errors.Is(err, domain.ErrConcurrentModification) {
		t.Fatalf("permanent error must not be reported as a conflict")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetrierReportsExhaustedConflicts(t *testing.T) {
	r := fastRetrier(3)
	attempts := 0

	err := r.Retry(context.Background(), func() error {
		attempts++
		return fmt.Errorf("update balances: %w", &pgconn.PgError{Code: pgErrSerializationFailure})
	})

	if !errors.Is(err, domain.ErrConcurrentModification) {
		t.Fatalf("expected concurrent modification, got %v", err)
	}
	if attempts != 4 {
		t.Fatalf("expected initial attempt plus 3 retries, got %d", attempts)
	}
}

func TestNewRetrierDefaultsMaxRetries(t *testing.T) {
	r := NewRetrier(-1, zerolog.Nop())
	if r.maxRetries != DefaultMaxRetries {
		t.Fatalf("expected %d retries, got %d", DefaultMaxRetries, r.maxRetries)
	}
}

func TestRetrierZeroRetriesRunsOnce(t *testing.T) {
	retries := 0
	r := fastRetrier(0, WithRetryHook(func() { retries++ }))

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})

	if !errors.Is(err, domain.ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
	if attempts != 1 || retries != 0 {
		t.Fatalf("expected a single attempt and no retries, got %d attempts %d retries", attempts, retries)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &pgconn.PgError{Code: pgErrDeadlock}, true},
		{"serialization", &pgconn.PgError{Code: pgErrSerializationFailure}, true},
		{"wrapped", fmt.Errorf("x: %w", &pgconn.PgError{Code: pgErrDeadlock}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"generic", errors.New("other"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Fatalf("isRetryableError() = %v, want %v", got, tt.want)
			}
		})
	}
}
