package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iho/wealthledger/internal/domain"
)

// IRRAnalyzerConfig tunes the IRR analyzer.
type IRRAnalyzerConfig struct {
	Thresholds   domain.RiskThresholds
	DiscountRate float64
	CacheTTL     time.Duration
	Parallelism  int
	Solver       domain.IRRSolver
}

// DefaultIRRAnalyzerConfig returns the stock analyzer settings.
func DefaultIRRAnalyzerConfig() IRRAnalyzerConfig {
	return IRRAnalyzerConfig{
		Thresholds:   domain.DefaultRiskThresholds,
		DiscountRate: DefaultDiscountRate,
		CacheTTL:     DefaultIRRCacheTTL,
		Parallelism:  DefaultIRRParallelism,
		Solver:       domain.NewIRRSolver(),
	}
}

// IRRAnalyzerUseCase computes per-portfolio IRR reports. It is read-only and
// never touches a ledger transaction.
type IRRAnalyzerUseCase struct {
	portfolioRepo PortfolioRepository
	valuationRepo ValuationRepository
	cache         IRRCache
	recorder      Recorder
	logger        zerolog.Logger
	cfg           IRRAnalyzerConfig
}

// NewIRRAnalyzerUseCase creates a new IRRAnalyzerUseCase. cache may be nil.
func NewIRRAnalyzerUseCase(
	portfolioRepo PortfolioRepository,
	valuationRepo ValuationRepository,
	cache IRRCache,
	recorder Recorder,
	logger zerolog.Logger,
	cfg IRRAnalyzerConfig,
) *IRRAnalyzerUseCase {
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = DefaultIRRParallelism
	}
	if cfg.Solver.MaxIterations <= 0 {
		cfg.Solver = domain.NewIRRSolver()
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &IRRAnalyzerUseCase{
		portfolioRepo: portfolioRepo,
		valuationRepo: valuationRepo,
		cache:         cache,
		recorder:      recorder,
		logger:        logger.With().Str("component", "irr_analyzer").Logger(),
		cfg:           cfg,
	}
}

// Analyze returns IRR results for the caller's portfolios, or for one of them
// when portfolioID is neither empty nor "all". Portfolios that cannot be
// analysed are left out.
func (uc *IRRAnalyzerUseCase) Analyze(ctx context.Context, userID, portfolioID string) ([]*domain.IRRResult, error) {
	if domain.IsAllFilter(portfolioID) {
		portfolioID = ""
	}

	key := irrCacheKey(userID, portfolioID)
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.Warn().Err(err).Str("key", key).Msg("irr cache read failed")
		} else {
			uc.recorder.IRRCacheLookup(ok)
			if ok {
				return cached, nil
			}
		}
	}

	results, err := uc.compute(ctx, userID, portfolioID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && uc.cfg.CacheTTL > 0 {
		if err := uc.cache.Set(ctx, key, results, uc.cfg.CacheTTL); err != nil {
			uc.logger.Warn().Err(err).Str("key", key).Msg("irr cache write failed")
		}
	}

	return results, nil
}

// Recalculate drops the cached analysis and computes it again. Dropping a
// single portfolio also drops the user's combined entry; dropping everything
// also drops every per-portfolio entry of the user.
func (uc *IRRAnalyzerUseCase) Recalculate(ctx context.Context, userID, portfolioID string) ([]*domain.IRRResult, error) {
	if domain.IsAllFilter(portfolioID) {
		portfolioID = ""
	}

	if uc.cache != nil {
		keys := []string{irrCacheKey(userID, portfolioID)}
		if portfolioID != "" {
			keys = append(keys, irrCacheKey(userID, ""))
		} else {
			portfolios, err := uc.portfolioRepo.ListByOwner(ctx, userID, "")
			if err != nil {
				return nil, storeError(err)
			}
			for _, p := range portfolios {
				keys = append(keys, irrCacheKey(userID, p.ID))
			}
		}
		for _, key := range keys {
			if err := uc.cache.Delete(ctx, key); err != nil {
				uc.logger.Warn().Err(err).Str("key", key).Msg("irr cache invalidation failed")
			}
		}
	}

	return uc.Analyze(ctx, userID, portfolioID)
}

func (uc *IRRAnalyzerUseCase) compute(ctx context.Context, userID, portfolioID string) ([]*domain.IRRResult, error) {
	start := time.Now()

	portfolios, err := uc.portfolioRepo.ListByOwner(ctx, userID, portfolioID)
	if err != nil {
		return nil, storeError(err)
	}

	slots := make([]*domain.IRRResult, len(portfolios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.Parallelism)

	for i, p := range portfolios {
		g.Go(func() error {
			result, err := uc.analyzePortfolio(gctx, p)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				uc.logger.Info().
					Err(err).
					Str("portfolio_id", p.ID).
					Msg("portfolio omitted from irr analysis")
				return nil
			}
			slots[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*domain.IRRResult, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, r)
		}
	}

	uc.recorder.IRRBatch(len(results), len(portfolios)-len(results), time.Since(start))

	return results, nil
}

func (uc *IRRAnalyzerUseCase) analyzePortfolio(ctx context.Context, p *domain.Portfolio) (*domain.IRRResult, error) {
	flows, err := uc.portfolioRepo.ListCashFlows(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load cash flows: %w", err)
	}

	series, err := domain.NewFlowSeries(flows)
	if err != nil {
		return nil, err
	}

	solution, err := uc.cfg.Solver.SolveSeries(series)
	if err != nil {
		return nil, err
	}

	npv, err := series.NPV(uc.cfg.DiscountRate)
	if err != nil {
		return nil, err
	}

	current, err := uc.valuationRepo.CurrentValue(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load valuation: %w", err)
	}

	irr := solution.Percent()

	return &domain.IRRResult{
		PortfolioID:     p.ID,
		PortfolioName:   p.Name,
		IRR:             irr,
		NPV:             npv,
		TotalInvestment: domain.TotalContributed(flows),
		CurrentValue:    current,
		Period:          series.Period(),
		RiskLevel:       uc.cfg.Thresholds.Classify(irr),
		Iterations:      solution.Iterations,
	}, nil
}

func irrCacheKey(userID, portfolioID string) string {
	if portfolioID == "" {
		portfolioID = "all"
	}
	return "irr:" + userID + ":" + portfolioID
}
