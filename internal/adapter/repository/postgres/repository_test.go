package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/usecase"
)

var accountColumns = []string{
	"id", "portfolio_id", "owner_id", "name", "currency",
	"cash_balance", "available_balance", "frozen_balance", "opening_balance",
	"version", "is_active", "created_at", "updated_at",
}

var journalColumns = []string{
	"id", "trading_account_id", "currency", "kind", "direction", "amount",
	"balance_after", "description", "reference_transaction_id", "metadata", "created_at",
	"account_version",
}

var fixedTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func num(s string) pgtype.Numeric {
	return decimalToNumeric(decimal.RequireFromString(s))
}

func ts(t time.Time) pgtype.Timestamptz {
	return timeToPgTimestamptz(t)
}

func accountRows() *pgxmock.Rows {
	return pgxmock.NewRows(accountColumns)
}

func addAccount(rows *pgxmock.Rows, id, owner, cash, available, frozen string) *pgxmock.Rows {
	return rows.AddRow(id, "pf-1", owner, "Main", "CNY",
		num(cash), num(available), num(frozen), num("0"),
		int64(3), true, ts(fixedTime), ts(fixedTime))
}

func beginTx(t *testing.T, pool pgxmock.PgxPoolIface) usecase.Transaction {
	t.Helper()
	pool.ExpectBeginTx(ledgerTxOptions)
	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestTradingAccountRepositoryGet(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: GetTradingAccount :one").
		WithArgs("acc-1").
		WillReturnRows(addAccount(accountRows(), "acc-1", "user-1", "150.25", "100.25", "50"))

	repo := NewTradingAccountRepository(pool)
	account, err := repo.Get(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", account.OwnerID)
	assert.True(t, account.CashBalance.Equal(decimal.RequireFromString("150.25")))
	assert.True(t, account.AvailableBalance.Equal(decimal.RequireFromString("100.25")))
	assert.True(t, account.FrozenBalance.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, int64(3), account.Version)
	assert.NoError(t, account.Balances().Validate())
	assertExpectations(t, pool)
}

func TestTradingAccountRepositoryGetNotFound(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: GetTradingAccount :one").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewTradingAccountRepository(pool)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTradingAccountRepositoryLockAndUpdate(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	pool.ExpectQuery("name: GetTradingAccountForUpdate :one").
		WithArgs("acc-1").
		WillReturnRows(addAccount(accountRows(), "acc-1", "user-1", "100", "100", "0"))
	pool.ExpectExec("name: UpdateTradingAccountBalances :exec").
		WithArgs("acc-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), int64(4), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectCommit()

	repo := NewTradingAccountRepository(pool)
	ctx := context.Background()

	account, err := repo.GetForUpdate(ctx, tx, "acc-1")
	require.NoError(t, err)

	next, err := account.Debit(decimal.NewFromInt(40))
	require.NoError(t, err)
	account.Apply(next, fixedTime)

	require.NoError(t, repo.UpdateBalances(ctx, tx, account))
	require.NoError(t, tx.Commit(ctx))
	assertExpectations(t, pool)
}

func TestTradingAccountRepositoryGetManyForUpdate(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	rows := addAccount(accountRows(), "acc-a", "user-1", "10", "10", "0")
	rows = addAccount(rows, "acc-b", "user-1", "20", "15", "5")
	pool.ExpectQuery("name: GetTradingAccountsForUpdate :many").
		WithArgs([]string{"acc-a", "acc-b"}).
		WillReturnRows(rows)
	pool.ExpectRollback()

	repo := NewTradingAccountRepository(pool)
	accounts, err := repo.GetManyForUpdate(context.Background(), tx, []string{"acc-a", "acc-b"})
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "acc-a", accounts[0].ID)
	assert.Equal(t, "acc-b", accounts[1].ID)

	require.NoError(t, tx.Rollback(context.Background()))
	assertExpectations(t, pool)
}

func TestTradingAccountRepositoryRequiresPostgresTx(t *testing.T) {
	pool := newMockPool(t)
	repo := NewTradingAccountRepository(pool)

	_, err := repo.GetForUpdate(context.Background(), foreignTx{}, "acc-1")
	assert.Error(t, err)
	assert.Error(t, repo.UpdateBalances(context.Background(), foreignTx{}, &domain.TradingAccount{}))
}

func TestTradingAccountRepositorySummarize(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: SummarizeBalances :many").
		WithArgs("user-1", "").
		WillReturnRows(pgxmock.NewRows([]string{
			"currency", "account_count", "total_cash_balance", "total_available_balance", "total_frozen_balance",
		}).
			AddRow("CNY", int32(2), num("300"), num("250"), num("50")).
			AddRow("USD", int32(1), num("12.5"), num("12.5"), num("0")))

	repo := NewTradingAccountRepository(pool)
	summary, err := repo.Summarize(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "CNY", summary[0].Currency)
	assert.Equal(t, 2, summary[0].AccountCount)
	assert.True(t, summary[0].TotalFrozenBalance.Equal(decimal.NewFromInt(50)))
	assert.True(t, summary[1].TotalCashBalance.Equal(decimal.RequireFromString("12.5")))
}

func TestTradingAccountRepositoryListBalances(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: ListAccountBalances :many").
		WithArgs("user-1", "pf-1").
		WillReturnRows(addAccount(accountRows(), "acc-1", "user-1", "80", "60", "20"))

	repo := NewTradingAccountRepository(pool)
	balances, err := repo.ListBalances(context.Background(), "user-1", "pf-1")
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "acc-1", balances[0].AccountID)
	assert.Equal(t, "Main", balances[0].AccountName)
	assert.True(t, balances[0].FrozenBalance.Equal(decimal.NewFromInt(20)))
}

func TestTradingAccountRepositoryListInconsistent(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: ListInconsistentAccounts :many").
		WithArgs(int32(10)).
		WillReturnRows(addAccount(accountRows(), "acc-bad", "user-1", "100", "90", "0"))

	repo := NewTradingAccountRepository(pool)
	accounts, err := repo.ListInconsistent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.ErrorIs(t, accounts[0].Balances().Validate(), domain.ErrBalanceInvariant)
}

func TestCashTransactionRepositoryCreate(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	pool.ExpectExec("name: CreateCashTransaction :exec").
		WithArgs("tx-1", "acc-1", "CNY", "DEPOSIT", "in",
			pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgtype.Text{String: "salary", Valid: true},
			pgtype.Text{},
			[]byte(`{"source":"payroll"}`),
			pgxmock.AnyArg(),
			int64(7)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	repo := NewCashTransactionRepository(pool)
	entry := &domain.CashTransaction{
		ID:             "tx-1",
		AccountID:      "acc-1",
		Currency:       "CNY",
		Kind:           domain.KindDeposit,
		Direction:      domain.DirectionIn,
		Amount:         decimal.NewFromInt(100),
		BalanceAfter:   decimal.NewFromInt(100),
		Description:    "salary",
		Metadata:       map[string]any{"source": "payroll"},
		CreatedAt:      fixedTime,
		AccountVersion: 7,
	}

	require.NoError(t, repo.Create(context.Background(), tx, entry))
	require.NoError(t, tx.Commit(context.Background()))
	assertExpectations(t, pool)
}

func TestCashTransactionRepositoryList(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: CountCashTransactions :one").
		WithArgs("user-1", "acc-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
	pool.ExpectQuery("name: ListCashTransactions :many").
		WithArgs("user-1", "acc-1", int32(2), int32(0)).
		WillReturnRows(pgxmock.NewRows(journalColumns).
			AddRow("tx-5", "acc-1", "CNY", "TRANSFER", "in", num("30"), num("130"),
				pgtype.Text{}, pgtype.Text{String: "tx-4", Valid: true},
				[]byte(`{"exchange_rate":"1"}`), ts(fixedTime.Add(time.Minute)), int64(5)).
			AddRow("tx-3", "acc-1", "CNY", "FREEZE", "none", num("20"), num("100"),
				pgtype.Text{String: "order", Valid: true}, pgtype.Text{},
				[]byte(`{"operation":"freeze"}`), ts(fixedTime), int64(3)))

	repo := NewCashTransactionRepository(pool)
	entries, total, err := repo.List(context.Background(), usecase.TransactionFilter{
		UserID: "user-1", AccountID: "acc-1", Limit: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), total)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.KindTransfer, entries[0].Kind)
	assert.Equal(t, "tx-4", entries[0].ReferenceTransactionID)
	assert.Equal(t, "1", entries[0].Metadata["exchange_rate"])
	assert.Equal(t, domain.DirectionNone, entries[1].Direction)
	assert.Equal(t, "order", entries[1].Description)
	assert.True(t, entries[1].SignedAmount().IsZero())
}

func TestCashTransactionRepositoryListByAccountReplays(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: ListCashTransactionsByAccount :many").
		WithArgs("acc-1").
		WillReturnRows(pgxmock.NewRows(journalColumns).
			AddRow("tx-1", "acc-1", "CNY", "DEPOSIT", "in", num("100"), num("100"),
				pgtype.Text{}, pgtype.Text{}, []byte(`{}`), ts(fixedTime), int64(1)).
			AddRow("tx-2", "acc-1", "CNY", "WITHDRAW", "out", num("30.5"), num("69.5"),
				pgtype.Text{}, pgtype.Text{}, []byte(`{}`), ts(fixedTime.Add(time.Second)), int64(2)))

	repo := NewCashTransactionRepository(pool)
	entries, err := repo.ListByAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, int64(2), entries[1].AccountVersion)

	balance, err := domain.ReplayJournal(decimal.Zero, entries)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("69.5")))
}

func TestCashTransactionRepositoryRejectsBadMetadata(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: ListCashTransactionsByAccount :many").
		WithArgs("acc-1").
		WillReturnRows(pgxmock.NewRows(journalColumns).
			AddRow("tx-1", "acc-1", "CNY", "DEPOSIT", "in", num("1"), num("1"),
				pgtype.Text{}, pgtype.Text{}, []byte(`{broken`), ts(fixedTime), int64(1)))

	repo := NewCashTransactionRepository(pool)
	_, err := repo.ListByAccount(context.Background(), "acc-1")
	assert.ErrorContains(t, err, "tx-1")
}

func TestPortfolioRepositoryListCashFlows(t *testing.T) {
	pool := newMockPool(t)
	day := func(d int) pgtype.Date {
		return pgtype.Date{Time: time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC), Valid: true}
	}
	pool.ExpectQuery("name: ListCashFlowsByPortfolio :many").
		WithArgs("pf-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "portfolio_id", "flow_date", "flow_type", "amount", "description", "created_at",
		}).
			AddRow("cf-1", "pf-1", day(1), "inflow", num("1000"), pgtype.Text{}, ts(fixedTime)).
			AddRow("cf-2", "pf-1", day(20), "outflow", num("250"), pgtype.Text{}, ts(fixedTime)))

	repo := NewPortfolioRepository(pool)
	flows, err := repo.ListCashFlows(context.Background(), "pf-1")
	require.NoError(t, err)
	require.Len(t, flows, 2)
	assert.True(t, flows[0].Amount.Equal(decimal.NewFromInt(-1000)))
	assert.True(t, flows[1].Amount.Equal(decimal.NewFromInt(250)))
}

func TestPortfolioRepositoryRejectsUnknownFlowType(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: ListCashFlowsByPortfolio :many").
		WithArgs("pf-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "portfolio_id", "flow_date", "flow_type", "amount", "description", "created_at",
		}).
			AddRow("cf-9", "pf-1", pgtype.Date{Time: fixedTime, Valid: true}, "dividend", num("5"), pgtype.Text{}, ts(fixedTime)))

	repo := NewPortfolioRepository(pool)
	_, err := repo.ListCashFlows(context.Background(), "pf-1")
	assert.ErrorIs(t, err, domain.ErrInvalidFlowType)
}

func TestPortfolioRepositoryListByOwnerAndValue(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: ListPortfoliosByOwner :many").
		WithArgs("user-1", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "name", "created_at"}).
			AddRow("pf-1", "user-1", "Growth", ts(fixedTime)).
			AddRow("pf-2", "user-1", "Income", ts(fixedTime)))
	pool.ExpectQuery("name: GetPortfolioMarketValue :one").
		WithArgs("pf-1").
		WillReturnRows(pgxmock.NewRows([]string{"market_value"}).AddRow(num("1234.5")))

	repo := NewPortfolioRepository(pool)
	portfolios, err := repo.ListByOwner(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, portfolios, 2)
	assert.Equal(t, "Income", portfolios[1].Name)

	value, err := repo.CurrentValue(context.Background(), "pf-1")
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("1234.5")))
	assertExpectations(t, pool)
}

func TestOutboxRepositoryCreateAndMark(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	pool.ExpectExec("name: CreateOutboxEvent :exec").
		WithArgs("ev-1", "acc-1", domain.AggregateTypeTradingAccount, domain.EventTypeCashDeposited,
			pgxmock.AnyArg(), pgxmock.AnyArg(), false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()
	pool.ExpectExec("name: MarkEventPublished :exec").
		WithArgs("ev-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewOutboxRepository(pool)
	entry := &domain.CashTransaction{
		ID: "tx-1", AccountID: "acc-1", Currency: "CNY",
		Kind: domain.KindDeposit, Direction: domain.DirectionIn,
		Amount: decimal.NewFromInt(10), BalanceAfter: decimal.NewFromInt(10),
		CreatedAt: fixedTime,
	}
	event := domain.NewCashEvent("ev-1", entry, domain.Balances{
		Cash: decimal.NewFromInt(10), Available: decimal.NewFromInt(10), Frozen: decimal.Zero,
	})

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, tx, event))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, repo.MarkPublished(ctx, "ev-1", fixedTime))
	assertExpectations(t, pool)
}

func TestOutboxRepositoryGetUnpublished(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("name: GetUnpublishedEvents :many").
		WithArgs(int32(50)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "aggregate_id", "aggregate_type", "event_type", "payload", "created_at", "published", "published_at",
		}).AddRow("ev-1", "acc-1", "trading_account", "cash.frozen",
			[]byte(`{"amount":"5"}`), ts(fixedTime), false, pgtype.Timestamptz{}))

	repo := NewOutboxRepository(pool)
	events, err := repo.GetUnpublished(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "5", events[0].Payload["amount"])
	assert.Nil(t, events[0].PublishedAt)
}

func TestULIDGeneratorIsMonotonic(t *testing.T) {
	gen := NewULIDGenerator()
	prev := gen.Generate()
	for i := 0; i < 1000; i++ {
		next := gen.Generate()
		if next <= prev {
			t.Fatalf("id %s not after %s", next, prev)
		}
		prev = next
	}
}

type foreignTx struct{}

func (foreignTx) Commit(context.Context) error   { return nil }
func (foreignTx) Rollback(context.Context) error { return errors.New("not supported") }
