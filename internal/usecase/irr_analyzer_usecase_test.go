package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/usecase"
	"github.com/iho/wealthledger/internal/usecase/mocks"
)

var irrDay0 = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

func flow(portfolioID string, days int, amount int64) domain.CashFlow {
	return domain.CashFlow{
		PortfolioID: portfolioID,
		Date:        irrDay0.AddDate(0, 0, days),
		Amount:      decimal.NewFromInt(amount),
	}
}

type irrFixture struct {
	portfolios *mocks.MockPortfolioRepository
	valuations *mocks.MockValuationRepository
	cache      *mocks.MockIRRCache
}

func newIRRFixture(t *testing.T) *irrFixture {
	ctrl := gomock.NewController(t)
	return &irrFixture{
		portfolios: mocks.NewMockPortfolioRepository(ctrl),
		valuations: mocks.NewMockValuationRepository(ctrl),
		cache:      mocks.NewMockIRRCache(ctrl),
	}
}

func (f *irrFixture) analyzer(withCache bool) *usecase.IRRAnalyzerUseCase {
	var cache usecase.IRRCache
	if withCache {
		cache = f.cache
	}
	return usecase.NewIRRAnalyzerUseCase(f.portfolios, f.valuations, cache, nil, zerolog.Nop(), usecase.DefaultIRRAnalyzerConfig())
}

func TestIRRAnalyzer_AnalyzeOmitsFailingPortfolios(t *testing.T) {
	f := newIRRFixture(t)

	portfolios := []*domain.Portfolio{
		{ID: "pf-good", Name: "Growth", OwnerID: ownerID},
		{ID: "pf-single", Name: "Single flow", OwnerID: ownerID},
		{ID: "pf-zero", Name: "All zero", OwnerID: ownerID},
		{ID: "pf-broken", Name: "Broken", OwnerID: ownerID},
		{ID: "pf-hot", Name: "Hot", OwnerID: ownerID},
	}

	f.portfolios.EXPECT().ListByOwner(gomock.Any(), ownerID, "").Return(portfolios, nil)
	f.portfolios.EXPECT().ListCashFlows(gomock.Any(), "pf-good").
		Return([]domain.CashFlow{flow("pf-good", 0, -1000), flow("pf-good", 365, 1100)}, nil)
	f.portfolios.EXPECT().ListCashFlows(gomock.Any(), "pf-single").
		Return([]domain.CashFlow{flow("pf-single", 0, -1000)}, nil)
	f.portfolios.EXPECT().ListCashFlows(gomock.Any(), "pf-zero").
		Return([]domain.CashFlow{flow("pf-zero", 0, 0), flow("pf-zero", 30, 0)}, nil)
	f.portfolios.EXPECT().ListCashFlows(gomock.Any(), "pf-broken").
		Return(nil, errors.New("timeout"))
	f.portfolios.EXPECT().ListCashFlows(gomock.Any(), "pf-hot").
		Return([]domain.CashFlow{flow("pf-hot", 0, -1000), flow("pf-hot", 365, 1500)}, nil)

	f.valuations.EXPECT().CurrentValue(gomock.Any(), "pf-good").Return(decimal.NewFromInt(1150), nil)
	f.valuations.EXPECT().CurrentValue(gomock.Any(), "pf-hot").Return(decimal.NewFromInt(1600), nil)

	results, err := f.analyzer(false).Analyze(context.Background(), ownerID, "all")
	require.NoError(t, err)
	require.Len(t, results, 2)

	good := results[0]
	assert.Equal(t, "pf-good", good.PortfolioID)
	assert.Equal(t, "Growth", good.PortfolioName)
	assert.InDelta(t, 10.0, good.IRR, 0.01)
	assert.InDelta(t, 0.0, good.NPV, 1e-6)
	assert.True(t, good.TotalInvestment.Equal(decimal.NewFromInt(1000)))
	assert.True(t, good.CurrentValue.Equal(decimal.NewFromInt(1150)))
	assert.Equal(t, domain.RiskMedium, good.RiskLevel)
	assert.Equal(t, domain.HoldingPeriod{Years: 1, Months: 0}, good.Period)

	hot := results[1]
	assert.Equal(t, "pf-hot", hot.PortfolioID)
	assert.InDelta(t, 50.0, hot.IRR, 0.01)
	assert.Equal(t, domain.RiskHigh, hot.RiskLevel)
	assert.InDelta(t, 1500/1.1-1000, hot.NPV, 1e-6)
}

func TestIRRAnalyzer_NPVUsesFixedDiscountRate(t *testing.T) {
	f := newIRRFixture(t)

	f.portfolios.EXPECT().ListByOwner(gomock.Any(), ownerID, "pf-1").
		Return([]*domain.Portfolio{{ID: "pf-1", Name: "Bonds", OwnerID: ownerID}}, nil)
	f.portfolios.EXPECT().ListCashFlows(gomock.Any(), "pf-1").
		Return([]domain.CashFlow{flow("pf-1", 0, -1000), flow("pf-1", 365, 1030)}, nil)
	f.valuations.EXPECT().CurrentValue(gomock.Any(), "pf-1").Return(decimal.NewFromInt(1030), nil)

	results, err := f.analyzer(false).Analyze(context.Background(), ownerID, "pf-1")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.InDelta(t, 3.0, results[0].IRR, 0.01)
	assert.InDelta(t, 1030/1.1-1000, results[0].NPV, 1e-6)
	assert.Equal(t, domain.RiskLow, results[0].RiskLevel)
}

func TestIRRAnalyzer_ListingFailureSurfaces(t *testing.T) {
	f := newIRRFixture(t)
	f.portfolios.EXPECT().ListByOwner(gomock.Any(), ownerID, "").Return(nil, errors.New("db down"))

	_, err := f.analyzer(false).Analyze(context.Background(), ownerID, "")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestIRRAnalyzer_Cache(t *testing.T) {
	cached := []*domain.IRRResult{{PortfolioID: "pf-1", IRR: 12.5, RiskLevel: domain.RiskMedium}}

	t.Run("hit skips computation", func(t *testing.T) {
		f := newIRRFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "irr:user-1:all").Return(cached, true, nil)

		results, err := f.analyzer(true).Analyze(context.Background(), ownerID, "")
		require.NoError(t, err)
		assert.Equal(t, cached, results)
	})

	t.Run("miss stores result", func(t *testing.T) {
		f := newIRRFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "irr:user-1:pf-1").Return(nil, false, nil)
		f.portfolios.EXPECT().ListByOwner(gomock.Any(), ownerID, "pf-1").Return([]*domain.Portfolio{}, nil)
		f.cache.EXPECT().Set(gomock.Any(), "irr:user-1:pf-1", []*domain.IRRResult{}, usecase.DefaultIRRCacheTTL).Return(nil)

		results, err := f.analyzer(true).Analyze(context.Background(), ownerID, "pf-1")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("read failure falls through", func(t *testing.T) {
		f := newIRRFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "irr:user-1:all").Return(nil, false, errors.New("redis down"))
		f.portfolios.EXPECT().ListByOwner(gomock.Any(), ownerID, "").Return([]*domain.Portfolio{}, nil)
		f.cache.EXPECT().Set(gomock.Any(), "irr:user-1:all", gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		_, err := f.analyzer(true).Analyze(context.Background(), ownerID, "")
		require.NoError(t, err)
	})

	t.Run("recalculate drops cached entries", func(t *testing.T) {
		f := newIRRFixture(t)
		gomock.InOrder(
			f.cache.EXPECT().Delete(gomock.Any(), "irr:user-1:pf-1").Return(nil),
			f.cache.EXPECT().Delete(gomock.Any(), "irr:user-1:all").Return(nil),
			f.cache.EXPECT().Get(gomock.Any(), "irr:user-1:pf-1").Return(nil, false, nil),
		)
		f.portfolios.EXPECT().ListByOwner(gomock.Any(), ownerID, "pf-1").Return([]*domain.Portfolio{}, nil)
		f.cache.EXPECT().Set(gomock.Any(), "irr:user-1:pf-1", gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.analyzer(true).Recalculate(context.Background(), ownerID, "pf-1")
		require.NoError(t, err)
	})

	t.Run("recalculate all drops every portfolio entry", func(t *testing.T) {
		f := newIRRFixture(t)
		owned := []*domain.Portfolio{{ID: "pf-1", OwnerID: ownerID}, {ID: "pf-2", OwnerID: ownerID}}
		gomock.InOrder(
			f.portfolios.EXPECT().ListByOwner(gomock.Any(), ownerID, "").Return(owned, nil),
			f.cache.EXPECT().Delete(gomock.Any(), "irr:user-1:all").Return(nil),
			f.cache.EXPECT().Delete(gomock.Any(), "irr:user-1:pf-1").Return(nil),
			f.cache.EXPECT().Delete(gomock.Any(), "irr:user-1:pf-2").Return(errors.New("redis down")),
			f.cache.EXPECT().Get(gomock.Any(), "irr:user-1:all").Return(nil, false, nil),
			f.portfolios.EXPECT().ListByOwner(gomock.Any(), ownerID, "").Return([]*domain.Portfolio{}, nil),
			f.cache.EXPECT().Set(gomock.Any(), "irr:user-1:all", gomock.Any(), gomock.Any()).Return(nil),
		)

		_, err := f.analyzer(true).Recalculate(context.Background(), ownerID, "all")
		require.NoError(t, err)
	})

	t.Run("recalculate all surfaces listing failure", func(t *testing.T) {
		f := newIRRFixture(t)
		f.portfolios.EXPECT().ListByOwner(gomock.Any(), ownerID, "").Return(nil, errors.New("db down"))

		_, err := f.analyzer(true).Recalculate(context.Background(), ownerID, "")
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}
