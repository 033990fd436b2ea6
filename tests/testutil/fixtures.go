// Package testutil provides a shared Postgres database and row fixtures for
// integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/infrastructure/postgres"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "ledger"
	postgresPassword = "ledger"
	postgresDB       = "ledger"
)

var (
	databaseOnce sync.Once
	databaseURL  string
	databaseErr  error
	container    testcontainers.Container
)

// TestDB provides a migrated database connection.
type TestDB struct {
	Pool *pgxpool.Pool
	URL  string
	t    *testing.T
}

// NewTestDB connects to DATABASE_URL, or to a Postgres container started
// once per test process, and applies the embedded migrations.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	databaseOnce.Do(func() {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			databaseURL = url
		} else {
			databaseURL, databaseErr = startPostgres(context.Background())
			if databaseErr != nil {
				return
			}
		}

		databaseErr = postgres.RunMigrations(databaseURL, zerolog.Nop())
	})
	if databaseErr != nil {
		t.Fatalf("test database unavailable: %v", databaseErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, databaseURL, 20, 2)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		URL:  databaseURL,
		t:    t,
	}
}

func startPostgres(ctx context.Context) (string, error) {
	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return "", fmt.Errorf("get postgres host: %w", err)
	}

	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(ctx)
		return "", fmt.Errorf("get postgres port: %w", err)
	}

	container = c

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, host, port.Port(), postgresDB), nil
}

// Terminate stops the shared container, if one was started. Call from
// TestMain after m.Run.
func Terminate() {
	if container != nil {
		_ = container.Terminate(context.Background())
	}
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all rows. TRUNCATE bypasses the journal's
// append-only trigger, which only fires on UPDATE and DELETE.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `TRUNCATE TABLE
		outbox_events, cash_transactions, trading_accounts,
		cash_flows, positions, asset_prices, portfolios
		RESTART IDENTITY CASCADE`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

func newID() string {
	return ulid.Make().String()
}

// CreatePortfolio inserts a portfolio owned by ownerID.
func (db *TestDB) CreatePortfolio(ctx context.Context, ownerID, name string) *domain.Portfolio {
	db.t.Helper()

	p := &domain.Portfolio{
		ID:      newID(),
		OwnerID: ownerID,
		Name:    name,
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO portfolios (id, owner_id, name) VALUES ($1, $2, $3)`,
		p.ID, p.OwnerID, p.Name)
	if err != nil {
		db.t.Fatalf("failed to create portfolio: %v", err)
	}

	return p
}

// CreateTradingAccount inserts an empty active account.
func (db *TestDB) CreateTradingAccount(ctx context.Context, portfolio *domain.Portfolio, name, currency string) *domain.TradingAccount {
	db.t.Helper()

	account := &domain.TradingAccount{
		ID:          newID(),
		PortfolioID: portfolio.ID,
		OwnerID:     portfolio.OwnerID,
		Name:        name,
		Currency:    currency,
		IsActive:    true,
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO trading_accounts (id, portfolio_id, name, currency) VALUES ($1, $2, $3, $4)`,
		account.ID, account.PortfolioID, account.Name, account.Currency)
	if err != nil {
		db.t.Fatalf("failed to create trading account: %v", err)
	}

	return account
}

// CreateCashFlow inserts one external flow of a portfolio.
func (db *TestDB) CreateCashFlow(ctx context.Context, portfolioID string, date time.Time, flowType domain.FlowType, amount decimal.Decimal) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO cash_flows (id, portfolio_id, flow_date, flow_type, amount) VALUES ($1, $2, $3, $4, $5)`,
		newID(), portfolioID, date, string(flowType), amount.String())
	if err != nil {
		db.t.Fatalf("failed to create cash flow: %v", err)
	}
}

// CreatePosition inserts a holding and its closing price on priceDate.
func (db *TestDB) CreatePosition(ctx context.Context, portfolioID, assetID string, quantity, price decimal.Decimal, priceDate time.Time) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO positions (id, portfolio_id, asset_id, quantity) VALUES ($1, $2, $3, $4)`,
		newID(), portfolioID, assetID, quantity.String())
	if err != nil {
		db.t.Fatalf("failed to create position: %v", err)
	}

	db.CreatePrice(ctx, assetID, price, priceDate)
}

// CreatePrice records a closing price for assetID.
func (db *TestDB) CreatePrice(ctx context.Context, assetID string, price decimal.Decimal, date time.Time) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO asset_prices (asset_id, price_date, close_price) VALUES ($1, $2, $3)
		 ON CONFLICT (asset_id, price_date) DO UPDATE SET close_price = EXCLUDED.close_price`,
		assetID, date, price.String())
	if err != nil {
		db.t.Fatalf("failed to create price: %v", err)
	}
}

// AccountBalances reads the stored balances of accountID.
func (db *TestDB) AccountBalances(ctx context.Context, accountID string) (cash, available, frozen decimal.Decimal) {
	db.t.Helper()

	var c, a, f string
	err := db.Pool.QueryRow(ctx,
		`SELECT cash_balance::text, available_balance::text, frozen_balance::text FROM trading_accounts WHERE id = $1`,
		accountID).Scan(&c, &a, &f)
	if err != nil {
		db.t.Fatalf("failed to read balances: %v", err)
	}

	return decimal.RequireFromString(c), decimal.RequireFromString(a), decimal.RequireFromString(f)
}

// CountRows counts the rows of table.
func (db *TestDB) CountRows(ctx context.Context, table string) int {
	db.t.Helper()

	var n int
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		db.t.Fatalf("failed to count %s: %v", table, err)
	}

	return n
}
