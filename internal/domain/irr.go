package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInsufficientCashFlows = errors.New("at least two cash flows are required")
	ErrNoSignChange          = errors.New("cash flows need both a contribution and a return")
	ErrNonFiniteIRR          = errors.New("irr computation produced a non-finite value")
	ErrIRRNotConverged       = errors.New("irr did not converge")
)

const (
	daysPerYear  = 365
	daysPerMonth = 30

	// minIRRRate keeps 1+rate positive so fractional year exponents stay real.
	minIRRRate = -0.999
)

// RiskLevel is a coarse band derived from the IRR.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskThresholds are IRR percentages bounding the medium band.
type RiskThresholds struct {
	Low  float64
	High float64
}

// DefaultRiskThresholds puts IRR below 5% in low and above 20% in high.
var DefaultRiskThresholds = RiskThresholds{Low: 5, High: 20}

// Classify maps an IRR percentage to a risk level.
func (t RiskThresholds) Classify(irrPercent float64) RiskLevel {
	switch {
	case irrPercent < t.Low:
		return RiskLow
	case irrPercent > t.High:
		return RiskHigh
	default:
		return RiskMedium
	}
}

// HoldingPeriod approximates elapsed time with 365-day years and 30-day months.
type HoldingPeriod struct {
	Years  int
	Months int
}

// NewHoldingPeriod measures from first to last.
func NewHoldingPeriod(first, last time.Time) HoldingPeriod {
	days := int(math.Floor(last.Sub(first).Hours() / 24))
	if days < 0 {
		days = 0
	}

	return HoldingPeriod{
		Years:  days / daysPerYear,
		Months: (days % daysPerYear) / daysPerMonth,
	}
}

func (p HoldingPeriod) String() string {
	return fmt.Sprintf("%d years %d months", p.Years, p.Months)
}

// IRRResult is the per-portfolio analysis. IRR is an annualised percentage.
type IRRResult struct {
	PortfolioID     string
	PortfolioName   string
	IRR             float64
	NPV             float64
	TotalInvestment decimal.Decimal
	CurrentValue    decimal.Decimal
	Period          HoldingPeriod
	RiskLevel       RiskLevel
	Iterations      int
}

// IRRSolver finds the rate zeroing the NPV with Newton-Raphson.
type IRRSolver struct {
	InitialGuess      float64
	MaxIterations     int
	Tolerance         float64
	DerivativeEpsilon float64
}

// NewIRRSolver returns a solver starting at 10% with 100 iterations.
func NewIRRSolver() IRRSolver {
	return IRRSolver{
		InitialGuess:      0.10,
		MaxIterations:     100,
		Tolerance:         1e-6,
		DerivativeEpsilon: 1e-10,
	}
}

// IRRSolution is the solved rate as a fraction.
type IRRSolution struct {
	Rate               float64
	Iterations         int
	DerivativeVanished bool
}

// Percent returns the rate as a percentage.
func (s IRRSolution) Percent() float64 {
	return s.Rate * 100
}

// Solve runs Newton-Raphson over flows. A vanishing derivative stops the
// iteration and keeps the current rate.
func (s IRRSolver) Solve(flows []CashFlow) (IRRSolution, error) {
	series, err := NewFlowSeries(flows)
	if err != nil {
		return IRRSolution{}, err
	}

	return s.SolveSeries(series)
}

// SolveSeries is Solve over an already prepared series.
func (s IRRSolver) SolveSeries(series *FlowSeries) (IRRSolution, error) {
	if !series.hasSignChange() {
		return IRRSolution{}, ErrNoSignChange
	}

	rate := s.InitialGuess
	for i := 0; i < s.MaxIterations; i++ {
		npv, derivative, err := series.evaluate(rate)
		if err != nil {
			return IRRSolution{}, err
		}

		if math.Abs(npv) < s.Tolerance {
			return IRRSolution{Rate: rate, Iterations: i}, nil
		}
		if math.Abs(derivative) < s.DerivativeEpsilon {
			return IRRSolution{Rate: rate, Iterations: i, DerivativeVanished: true}, nil
		}

		rate -= npv / derivative
		if !isFinite(rate) {
			return IRRSolution{}, ErrNonFiniteIRR
		}
		if rate < minIRRRate {
			rate = minIRRRate
		}
	}

	return IRRSolution{}, fmt.Errorf("%w after %d iterations", ErrIRRNotConverged, s.MaxIterations)
}

// FlowSeries is a sorted set of flows converted to float64 once, with the
// year offset of every flow from the first one.
type FlowSeries struct {
	amounts  []float64
	years    []float64
	weighted []float64
	first    time.Time
	last     time.Time
}

// NewFlowSeries sorts a copy of flows and prepares it for evaluation.
func NewFlowSeries(flows []CashFlow) (*FlowSeries, error) {
	if len(flows) < 2 {
		return nil, ErrInsufficientCashFlows
	}

	sorted := make([]CashFlow, len(flows))
	copy(sorted, flows)
	SortCashFlows(sorted)

	base := sorted[0].Date
	series := &FlowSeries{
		amounts:  make([]float64, len(sorted)),
		years:    make([]float64, len(sorted)),
		weighted: make([]float64, len(sorted)),
		first:    base,
		last:     sorted[len(sorted)-1].Date,
	}
	for i, cf := range sorted {
		series.amounts[i] = cf.Amount.InexactFloat64()
		series.years[i] = cf.Date.Sub(base).Hours() / 24 / daysPerYear
	}
	floats.MulTo(series.weighted, series.years, series.amounts)

	return series, nil
}

// NPV discounts every flow at rate.
func (fs *FlowSeries) NPV(rate float64) (float64, error) {
	npv, _, err := fs.evaluate(rate)
	return npv, err
}

// Period is the holding period spanned by the series.
func (fs *FlowSeries) Period() HoldingPeriod {
	return NewHoldingPeriod(fs.first, fs.last)
}

func (fs *FlowSeries) evaluate(rate float64) (float64, float64, error) {
	base := 1 + rate
	if base <= 0 || !isFinite(base) {
		return 0, 0, ErrNonFiniteIRR
	}

	factors := make([]float64, len(fs.years))
	for i, y := range fs.years {
		factors[i] = math.Pow(base, -y)
	}

	npv := floats.Dot(fs.amounts, factors)
	derivative := -floats.Dot(fs.weighted, factors) / base
	if !isFinite(npv) || !isFinite(derivative) {
		return 0, 0, ErrNonFiniteIRR
	}

	return npv, derivative, nil
}

func (fs *FlowSeries) hasSignChange() bool {
	var pos, neg bool
	for _, a := range fs.amounts {
		if a > 0 {
			pos = true
		} else if a < 0 {
			neg = true
		}
	}
	return pos && neg
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
