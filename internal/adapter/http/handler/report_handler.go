package handler

import (
	"context"
	"net/http"

	"github.com/iho/wealthledger/internal/adapter/http/dto"
	"github.com/iho/wealthledger/internal/domain"
)

// IRRService analyses portfolio returns.
type IRRService interface {
	Analyze(ctx context.Context, userID, portfolioID string) ([]*domain.IRRResult, error)
	Recalculate(ctx context.Context, userID, portfolioID string) ([]*domain.IRRResult, error)
}

// ReportHandler serves performance reports.
type ReportHandler struct {
	irr IRRService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(irr IRRService) *ReportHandler {
	return &ReportHandler{irr: irr}
}

// IRR returns the IRR analysis of the caller's portfolios.
func (h *ReportHandler) IRR(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	results, err := h.irr.Analyze(r.Context(), userID, r.URL.Query().Get("portfolioId"))
	if err != nil {
		writeDomainError(w, "failed to analyze portfolios", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IRRFromDomain(results))
}

// RecalculateIRR drops the cached analysis and computes it again.
func (h *ReportHandler) RecalculateIRR(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	results, err := h.irr.Recalculate(r.Context(), userID, r.URL.Query().Get("portfolioId"))
	if err != nil {
		writeDomainError(w, "failed to recalculate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IRRFromDomain(results))
}
