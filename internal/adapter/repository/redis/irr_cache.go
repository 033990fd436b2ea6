package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/iho/wealthledger/internal/domain"
)

// IRRCache implements usecase.IRRCache. Results are stored msgpack encoded.
type IRRCache struct {
	cache *Cache
}

// NewIRRCache creates an IRRCache on top of cache.
func NewIRRCache(cache *Cache) *IRRCache {
	return &IRRCache{cache: cache}
}

type cachedIRR struct {
	PortfolioID     string  `msgpack:"pid"`
	PortfolioName   string  `msgpack:"name"`
	IRR             float64 `msgpack:"irr"`
	NPV             float64 `msgpack:"npv"`
	TotalInvestment string  `msgpack:"inv"`
	CurrentValue    string  `msgpack:"val"`
	Years           int     `msgpack:"y"`
	Months          int     `msgpack:"m"`
	RiskLevel       string  `msgpack:"risk"`
	Iterations      int     `msgpack:"it"`
}

// Get returns cached results. ok is false on a miss.
func (c *IRRCache) Get(ctx context.Context, key string) ([]*domain.IRRResult, bool, error) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	var cached []cachedIRR
	if err := msgpack.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("decode irr cache entry %s: %w", key, err)
	}

	results := make([]*domain.IRRResult, 0, len(cached))
	for _, item := range cached {
		investment, err := decimal.NewFromString(item.TotalInvestment)
		if err != nil {
			return nil, false, fmt.Errorf("decode irr cache entry %s: %w", key, err)
		}
		value, err := decimal.NewFromString(item.CurrentValue)
		if err != nil {
			return nil, false, fmt.Errorf("decode irr cache entry %s: %w", key, err)
		}

		results = append(results, &domain.IRRResult{
			PortfolioID:     item.PortfolioID,
			PortfolioName:   item.PortfolioName,
			IRR:             item.IRR,
			NPV:             item.NPV,
			TotalInvestment: investment,
			CurrentValue:    value,
			Period:          domain.HoldingPeriod{Years: item.Years, Months: item.Months},
			RiskLevel:       domain.RiskLevel(item.RiskLevel),
			Iterations:      item.Iterations,
		})
	}

	return results, true, nil
}

// Set stores results under key for ttl.
func (c *IRRCache) Set(ctx context.Context, key string, results []*domain.IRRResult, ttl time.Duration) error {
	cached := make([]cachedIRR, 0, len(results))
	for _, r := range results {
		cached = append(cached, cachedIRR{
			PortfolioID:     r.PortfolioID,
			PortfolioName:   r.PortfolioName,
			IRR:             r.IRR,
			NPV:             r.NPV,
			TotalInvestment: r.TotalInvestment.String(),
			CurrentValue:    r.CurrentValue.String(),
			Years:           r.Period.Years,
			Months:          r.Period.Months,
			RiskLevel:       string(r.RiskLevel),
			Iterations:      r.Iterations,
		})
	}

	data, err := msgpack.Marshal(cached)
	if err != nil {
		return fmt.Errorf("encode irr cache entry %s: %w", key, err)
	}

	return c.cache.Set(ctx, key, data, ttl)
}

// Delete drops a cached analysis.
func (c *IRRCache) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, key)
}
