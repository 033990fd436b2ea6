package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/usecase"
)

// CashTransactionResponse represents a journal entry in API responses.
type CashTransactionResponse struct {
	ID                     string          `json:"id"`
	AccountID              string          `json:"account_id"`
	Currency               string          `json:"currency"`
	Kind                   string          `json:"kind"`
	Direction              string          `json:"direction"`
	Amount                 decimal.Decimal `json:"amount"`
	BalanceAfter           decimal.Decimal `json:"balance_after"`
	Description            string          `json:"description,omitempty"`
	ReferenceTransactionID string          `json:"reference_transaction_id,omitempty"`
	Metadata               map[string]any  `json:"metadata,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

// CashTransactionFromDomain converts a journal entry to response.
func CashTransactionFromDomain(t *domain.CashTransaction) *CashTransactionResponse {
	return &CashTransactionResponse{
		ID:                     t.ID,
		AccountID:              t.AccountID,
		Currency:               t.Currency,
		Kind:                   string(t.Kind),
		Direction:              string(t.Direction),
		Amount:                 t.Amount,
		BalanceAfter:           t.BalanceAfter,
		Description:            t.Description,
		ReferenceTransactionID: t.ReferenceTransactionID,
		Metadata:               t.Metadata,
		CreatedAt:              t.CreatedAt,
	}
}

// CashTransactionsFromDomain converts journal entries to responses.
func CashTransactionsFromDomain(entries []*domain.CashTransaction) []*CashTransactionResponse {
	result := make([]*CashTransactionResponse, len(entries))
	for i, e := range entries {
		result[i] = CashTransactionFromDomain(e)
	}
	return result
}

// TransactionPageResponse is one page of the journal.
type TransactionPageResponse struct {
	Transactions []*CashTransactionResponse `json:"transactions"`
	Total        int64                      `json:"total"`
	Limit        int                        `json:"limit"`
	Offset       int                        `json:"offset"`
	HasMore      bool                       `json:"has_more"`
}

// TransactionPageFromDomain converts a journal page to response.
func TransactionPageFromDomain(p *domain.TransactionPage) *TransactionPageResponse {
	return &TransactionPageResponse{
		Transactions: CashTransactionsFromDomain(p.Entries),
		Total:        p.Total,
		Limit:        p.Limit,
		Offset:       p.Offset,
		HasMore:      p.HasMore(),
	}
}

// TransferResponse holds both legs of a transfer.
type TransferResponse struct {
	Debit        *CashTransactionResponse `json:"debit"`
	Credit       *CashTransactionResponse `json:"credit"`
	ExchangeRate decimal.Decimal          `json:"exchange_rate"`
}

// TransferFromDomain converts a transfer result to response.
func TransferFromDomain(r *domain.TransferResult) *TransferResponse {
	return &TransferResponse{
		Debit:        CashTransactionFromDomain(r.Debit),
		Credit:       CashTransactionFromDomain(r.Credit),
		ExchangeRate: r.ExchangeRate,
	}
}

// BalanceResponse represents one account's balances.
type BalanceResponse struct {
	AccountID        string          `json:"account_id"`
	AccountName      string          `json:"account_name"`
	PortfolioID      string          `json:"portfolio_id"`
	Currency         string          `json:"currency"`
	CashBalance      decimal.Decimal `json:"cash_balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	FrozenBalance    decimal.Decimal `json:"frozen_balance"`
}

// BalancesFromDomain converts account balances to responses.
func BalancesFromDomain(balances []*domain.AccountBalance) []*BalanceResponse {
	result := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = &BalanceResponse{
			AccountID:        b.AccountID,
			AccountName:      b.AccountName,
			PortfolioID:      b.PortfolioID,
			Currency:         b.Currency,
			CashBalance:      b.CashBalance,
			AvailableBalance: b.AvailableBalance,
			FrozenBalance:    b.FrozenBalance,
		}
	}
	return result
}

// SummaryResponse aggregates one currency.
type SummaryResponse struct {
	Currency              string          `json:"currency"`
	AccountCount          int             `json:"account_count"`
	TotalCashBalance      decimal.Decimal `json:"total_cash_balance"`
	TotalAvailableBalance decimal.Decimal `json:"total_available_balance"`
	TotalFrozenBalance    decimal.Decimal `json:"total_frozen_balance"`
}

// SummaryFromDomain converts currency summaries to responses.
func SummaryFromDomain(summary []*domain.CurrencySummary) []*SummaryResponse {
	result := make([]*SummaryResponse, len(summary))
	for i, s := range summary {
		result[i] = &SummaryResponse{
			Currency:              s.Currency,
			AccountCount:          s.AccountCount,
			TotalCashBalance:      s.TotalCashBalance,
			TotalAvailableBalance: s.TotalAvailableBalance,
			TotalFrozenBalance:    s.TotalFrozenBalance,
		}
	}
	return result
}

// IRRResponse represents one analysed portfolio.
type IRRResponse struct {
	PortfolioID     string          `json:"portfolio_id"`
	PortfolioName   string          `json:"portfolio_name"`
	IRR             float64         `json:"irr"`
	NPV             float64         `json:"npv"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	CurrentValue    decimal.Decimal `json:"current_value"`
	Period          string          `json:"period"`
	PeriodYears     int             `json:"period_years"`
	PeriodMonths    int             `json:"period_months"`
	RiskLevel       string          `json:"risk_level"`
}

// IRRFromDomain converts IRR results to responses.
func IRRFromDomain(results []*domain.IRRResult) []*IRRResponse {
	out := make([]*IRRResponse, len(results))
	for i, r := range results {
		out[i] = &IRRResponse{
			PortfolioID:     r.PortfolioID,
			PortfolioName:   r.PortfolioName,
			IRR:             r.IRR,
			NPV:             r.NPV,
			TotalInvestment: r.TotalInvestment,
			CurrentValue:    r.CurrentValue,
			Period:          r.Period.String(),
			PeriodYears:     r.Period.Years,
			PeriodMonths:    r.Period.Months,
			RiskLevel:       string(r.RiskLevel),
		}
	}
	return out
}

// ReconciliationResponse reports a journal replay against stored cash.
type ReconciliationResponse struct {
	AccountID         string          `json:"account_id"`
	Currency          string          `json:"currency"`
	OpeningBalance    decimal.Decimal `json:"opening_balance"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	EntryCount        int             `json:"entry_count"`
	InvariantHolds    bool            `json:"invariant_holds"`
	IsReconciled      bool            `json:"is_reconciled"`
	Detail            string          `json:"detail,omitempty"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationFromResult converts a reconciliation result to response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         r.AccountID,
		Currency:          r.Currency,
		OpeningBalance:    r.OpeningBalance,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		EntryCount:        r.EntryCount,
		InvariantHolds:    r.InvariantHolds,
		IsReconciled:      r.IsReconciled,
		Detail:            r.Detail,
		LastChecked:       r.LastChecked,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
