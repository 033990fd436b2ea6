package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidFlowType = errors.New("invalid cash flow type")

// FlowType is how a cash flow is recorded in storage.
type FlowType string

const (
	// FlowTypeInflow is capital the investor put into the portfolio.
	FlowTypeInflow FlowType = "inflow"
	// FlowTypeOutflow is capital returned to the investor.
	FlowTypeOutflow FlowType = "outflow"
)

// CashFlow is a dated amount from the investor's perspective: contributions
// are negative, returns are positive.
type CashFlow struct {
	PortfolioID string
	Date        time.Time
	Amount      decimal.Decimal
}

// NewCashFlow converts a stored flow into the signed convention. amount is
// the unsigned magnitude recorded with the flow.
func NewCashFlow(portfolioID string, date time.Time, flowType FlowType, amount decimal.Decimal) (CashFlow, error) {
	if amount.IsNegative() {
		return CashFlow{}, fmt.Errorf("%w: flow magnitude %s is negative", ErrInvalidAmount, amount)
	}

	switch flowType {
	case FlowTypeInflow:
		amount = amount.Neg()
	case FlowTypeOutflow:
	default:
		return CashFlow{}, fmt.Errorf("%w: %q", ErrInvalidFlowType, flowType)
	}

	return CashFlow{PortfolioID: portfolioID, Date: date, Amount: amount}, nil
}

// IsContribution reports whether the flow is capital put in.
func (c CashFlow) IsContribution() bool {
	return c.Amount.IsNegative()
}

// SortCashFlows orders flows by date, oldest first.
func SortCashFlows(flows []CashFlow) {
	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].Date.Before(flows[j].Date)
	})
}

// TotalContributed sums the magnitudes of contributions.
func TotalContributed(flows []CashFlow) decimal.Decimal {
	total := decimal.Zero
	for _, f := range flows {
		if f.IsContribution() {
			total = total.Add(f.Amount.Abs())
		}
	}
	return total
}
