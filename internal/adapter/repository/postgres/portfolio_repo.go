package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/infrastructure/postgres/generated"
)

// PortfolioRepository implements usecase.PortfolioRepository and
// usecase.ValuationRepository.
type PortfolioRepository struct {
	queries *generated.Queries
}

// NewPortfolioRepository creates a new PortfolioRepository.
func NewPortfolioRepository(db generated.DBTX) *PortfolioRepository {
	return &PortfolioRepository{
		queries: generated.New(db),
	}
}

// ListByOwner lists userID's portfolios. A non-empty portfolioID narrows the
// result to that portfolio.
func (r *PortfolioRepository) ListByOwner(ctx context.Context, userID, portfolioID string) ([]*domain.Portfolio, error) {
	rows, err := r.queries.ListPortfoliosByOwner(ctx, generated.ListPortfoliosByOwnerParams{
		OwnerID:     userID,
		PortfolioID: portfolioID,
	})
	if err != nil {
		return nil, err
	}

	portfolios := make([]*domain.Portfolio, 0, len(rows))
	for _, row := range rows {
		portfolios = append(portfolios, &domain.Portfolio{
			ID:      row.ID,
			Name:    row.Name,
			OwnerID: row.OwnerID,
		})
	}

	return portfolios, nil
}

// ListCashFlows returns the portfolio's flows in the signed convention,
// oldest first.
func (r *PortfolioRepository) ListCashFlows(ctx context.Context, portfolioID string) ([]domain.CashFlow, error) {
	rows, err := r.queries.ListCashFlowsByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	flows := make([]domain.CashFlow, 0, len(rows))
	for _, row := range rows {
		flow, err := domain.NewCashFlow(row.PortfolioID, row.FlowDate.Time,
			domain.FlowType(row.FlowType), numericToDecimal(row.Amount))
		if err != nil {
			return nil, fmt.Errorf("cash flow %s: %w", row.ID, err)
		}
		flows = append(flows, flow)
	}

	return flows, nil
}

// CurrentValue marks the portfolio's positions at their latest close price.
func (r *PortfolioRepository) CurrentValue(ctx context.Context, portfolioID string) (decimal.Decimal, error) {
	value, err := r.queries.GetPortfolioMarketValue(ctx, portfolioID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(value), nil
}
