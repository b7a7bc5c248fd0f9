package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

// LedgerService defines the ledger-wide reads needed by LedgerHandler.
type LedgerService interface {
	Postings(ctx context.Context, tenantID string) ([]domain.Posting, error)
	CheckConsistency(ctx context.Context, tenantID string) (usecase.ConsistencyReport, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Postings returns every derived posting of the book.
func (h *LedgerHandler) Postings(w http.ResponseWriter, r *http.Request) {
	postings, err := h.ledgerUC.Postings(r.Context(), tenantParam(r))
	if err != nil {
		writeDomainError(w, err, "failed to derive postings")
		return
	}

	writeJSON(w, http.StatusOK, dto.PostingsFromDomain(postings))
}

// CheckConsistency checks if the ledger is consistent.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context(), tenantParam(r))
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, dto.ConsistencyFromReport(report))
			return
		}
		writeDomainError(w, err, "failed to check consistency")
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
