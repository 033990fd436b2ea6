package redis

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/wealthledger/internal/domain"
)

func TestIRRCacheStoresAnalyses(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewIRRCache(NewCache(client))
	ctx := context.Background()

	results := []*domain.IRRResult{
		{
			PortfolioID:     "pf-1",
			PortfolioName:   "Growth",
			IRR:             12.34,
			NPV:             -5.5,
			TotalInvestment: decimal.RequireFromString("1000.10"),
			CurrentValue:    decimal.RequireFromString("1122.5"),
			Period:          domain.HoldingPeriod{Years: 1, Months: 2},
			RiskLevel:       domain.RiskMedium,
			Iterations:      4,
		},
	}

	require.NoError(t, cache.Set(ctx, "irr:user-1:all", results, time.Minute))

	got, ok, err := cache.Get(ctx, "irr:user-1:all")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)

	assert.Equal(t, "Growth", got[0].PortfolioName)
	assert.InDelta(t, 12.34, got[0].IRR, 1e-12)
	assert.True(t, got[0].TotalInvestment.Equal(results[0].TotalInvestment))
	assert.True(t, got[0].CurrentValue.Equal(results[0].CurrentValue))
	assert.Equal(t, "1 years 2 months", got[0].Period.String())
	assert.Equal(t, domain.RiskMedium, got[0].RiskLevel)
}

func TestIRRCacheEmptyAnalysisIsAHit(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewIRRCache(NewCache(client))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "irr:user-2:all", []*domain.IRRResult{}, time.Minute))

	got, ok, err := cache.Get(ctx, "irr:user-2:all")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestIRRCacheDeleteAndCorruptEntry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	base := NewCache(client)
	cache := NewIRRCache(base)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", nil, time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))
	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, base.Set(ctx, "bad", []byte{0xc1}, time.Minute))
	_, _, err = cache.Get(ctx, "bad")
	assert.Error(t, err)
}
