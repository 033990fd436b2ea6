package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/wealthledger/internal/adapter/http/dto"
	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/usecase"
)

// CashLedgerService is the subset of the cash ledger the handler needs.
type CashLedgerService interface {
	Deposit(ctx context.Context, input usecase.CashOperationInput) (*domain.CashTransaction, error)
	Withdraw(ctx context.Context, input usecase.CashOperationInput) (*domain.CashTransaction, error)
	RecordInvestment(ctx context.Context, input usecase.CashOperationInput) (*domain.CashTransaction, error)
	RecordRedemption(ctx context.Context, input usecase.CashOperationInput) (*domain.CashTransaction, error)
	Freeze(ctx context.Context, input usecase.CashOperationInput) (*domain.CashTransaction, error)
	Unfreeze(ctx context.Context, input usecase.CashOperationInput) (*domain.CashTransaction, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.TransferResult, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) (*domain.TransactionPage, error)
	GetBalances(ctx context.Context, userID, portfolioID string) ([]*domain.AccountBalance, error)
	GetSummary(ctx context.Context, userID, currency string) ([]*domain.CurrencySummary, error)
}

// CashHandler handles cash ledger HTTP requests.
type CashHandler struct {
	ledger CashLedgerService
}

// NewCashHandler creates a new CashHandler.
func NewCashHandler(ledger CashLedgerService) *CashHandler {
	return &CashHandler{ledger: ledger}
}

type cashOperation func(ctx context.Context, input usecase.CashOperationInput) (*domain.CashTransaction, error)

func (h *CashHandler) handleOperation(w http.ResponseWriter, r *http.Request, op cashOperation, failure string) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.CashOperationRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := op(r.Context(), req.ToUseCaseInput(userID, accountID))
	if err != nil {
		writeDomainError(w, failure, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CashTransactionFromDomain(entry))
}

// Deposit adds cash to an account.
func (h *CashHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, h.ledger.Deposit, "failed to deposit")
}

// Withdraw takes available cash out of an account.
func (h *CashHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, h.ledger.Withdraw, "failed to withdraw")
}

// Invest records cash spent on a purchase.
func (h *CashHandler) Invest(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, h.ledger.RecordInvestment, "failed to record investment")
}

// Redeem records cash received from a sale.
func (h *CashHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, h.ledger.RecordRedemption, "failed to record redemption")
}

// Freeze reserves available cash.
func (h *CashHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, h.ledger.Freeze, "failed to freeze")
}

// Unfreeze releases reserved cash.
func (h *CashHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, h.ledger.Unfreeze, "failed to unfreeze")
}

// Transfer moves cash between two of the caller's accounts.
func (h *CashHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledger.Transfer(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeDomainError(w, "failed to transfer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(result))
}

// ListTransactions lists the caller's journal, newest first.
func (h *CashHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	page, err := h.ledger.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		UserID:    userID,
		AccountID: r.URL.Query().Get("accountId"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionPageFromDomain(page))
}

// Balances lists the caller's account balances.
func (h *CashHandler) Balances(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	balances, err := h.ledger.GetBalances(r.Context(), userID, r.URL.Query().Get("portfolioId"))
	if err != nil {
		writeDomainError(w, "failed to get balances", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances))
}

// Summary aggregates the caller's balances per currency.
func (h *CashHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.ledger.GetSummary(r.Context(), userID, r.URL.Query().Get("currency"))
	if err != nil {
		writeDomainError(w, "failed to get summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}
