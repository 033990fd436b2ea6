package integration

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/adapter/repository/redis"
	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/usecase"
	"github.com/iho/wealthledger/tests/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIRRAnalysisFromStoredFlows(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newLedgerStack(testDB)

	growth := testDB.CreatePortfolio(ctx, "user-1", "Growth")
	testDB.CreateCashFlow(ctx, growth.ID, date(2023, 1, 1), domain.FlowTypeInflow, decimal.NewFromInt(1000))
	testDB.CreateCashFlow(ctx, growth.ID, date(2024, 1, 1), domain.FlowTypeOutflow, decimal.NewFromInt(1100))
	testDB.CreatePosition(ctx, growth.ID, "AAPL", decimal.NewFromInt(10), decimal.NewFromInt(150), date(2024, 1, 2))
	testDB.CreatePrice(ctx, "AAPL", decimal.NewFromInt(120), date(2023, 12, 29))

	// One flow only: omitted from the report.
	sparse := testDB.CreatePortfolio(ctx, "user-1", "Sparse")
	testDB.CreateCashFlow(ctx, sparse.ID, date(2023, 6, 1), domain.FlowTypeInflow, decimal.NewFromInt(500))

	// Another owner's portfolio must not leak.
	other := testDB.CreatePortfolio(ctx, "user-2", "Foreign")
	testDB.CreateCashFlow(ctx, other.ID, date(2023, 1, 1), domain.FlowTypeInflow, decimal.NewFromInt(10))
	testDB.CreateCashFlow(ctx, other.ID, date(2024, 1, 1), domain.FlowTypeOutflow, decimal.NewFromInt(20))

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	analyzer := usecase.NewIRRAnalyzerUseCase(
		stack.portfolio,
		stack.portfolio,
		redis.NewIRRCache(redis.NewCache(client)),
		nil,
		zerolog.Nop(),
		usecase.DefaultIRRAnalyzerConfig(),
	)

	results, err := analyzer.Analyze(ctx, "user-1", "all")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one analysed portfolio, got %d", len(results))
	}

	got := results[0]
	if got.PortfolioID != growth.ID {
		t.Errorf("expected portfolio %s, got %s", growth.ID, got.PortfolioID)
	}
	if math.Abs(got.IRR-10) > 0.01 {
		t.Errorf("expected IRR near 10%%, got %f", got.IRR)
	}
	if got.RiskLevel != domain.RiskMedium {
		t.Errorf("expected medium risk, got %s", got.RiskLevel)
	}
	if !got.TotalInvestment.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected total investment 1000, got %s", got.TotalInvestment)
	}
	if !got.CurrentValue.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected current value 1500 from latest price, got %s", got.CurrentValue)
	}
	if got.Period.Years != 1 || got.Period.Months != 0 {
		t.Errorf("expected 1 year 0 months, got %s", got.Period)
	}

	if keys := mr.Keys(); len(keys) != 1 {
		t.Fatalf("expected cached analysis, got keys %v", keys)
	}

	// A new flow is invisible until the cache is dropped.
	testDB.CreateCashFlow(ctx, growth.ID, date(2024, 6, 1), domain.FlowTypeOutflow, decimal.NewFromInt(50))

	cached, err := analyzer.Analyze(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("cached analyze failed: %v", err)
	}
	if cached[0].IRR != got.IRR {
		t.Errorf("expected cached IRR %f, got %f", got.IRR, cached[0].IRR)
	}

	fresh, err := analyzer.Recalculate(ctx, "user-1", "all")
	if err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if fresh[0].IRR <= got.IRR {
		t.Errorf("expected IRR to rise after an extra return, got %f then %f", got.IRR, fresh[0].IRR)
	}
}
