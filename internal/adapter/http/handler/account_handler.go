package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/ledger"
	"github.com/iho/storebooks/internal/report"
	"github.com/iho/storebooks/internal/report/render"
	"github.com/iho/storebooks/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, tenantID, code string) error
}

// AccountLedgerService derives the ledger of a single account.
type AccountLedgerService interface {
	AccountLedger(ctx context.Context, tenantID, code string) ([]domain.LedgerLine, error)
}

// StatementService builds account statements.
type StatementService interface {
	AccountStatement(ctx context.Context, tenantID, code string) (report.Statement, error)
}

// AccountHandler handles chart-of-accounts HTTP requests.
type AccountHandler struct {
	accountUC   AccountService
	ledgerUC    AccountLedgerService
	statementUC StatementService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, ledgerUC AccountLedgerService, statementUC StatementService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, ledgerUC: ledgerUC, statementUC: statementUC}
}

// Create adds an account to the tenant's chart.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput(tenantParam(r)))
	if err != nil {
		writeDomainError(w, err, "failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by code.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccountByCode(r.Context(), tenantParam(r), chi.URLParam(r, "code"))
	if err != nil {
		writeDomainError(w, err, "failed to get account")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists the whole chart ordered by code.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListAccounts(r.Context(), tenantParam(r))
	if err != nil {
		writeDomainError(w, err, "failed to list accounts")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Update applies a partial update to the account at code.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), req.ToUseCaseInput(tenantParam(r), chi.URLParam(r, "code")))
	if err != nil {
		writeDomainError(w, err, "failed to update account")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete removes a user-defined account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUC.DeleteAccount(r.Context(), tenantParam(r), chi.URLParam(r, "code")); err != nil {
		writeDomainError(w, err, "failed to delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Ledger returns the account's ledger lines with the running balance.
func (h *AccountHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	lines, err := h.ledgerUC.AccountLedger(r.Context(), tenantParam(r), code)
	if err != nil {
		writeDomainError(w, err, "failed to build account ledger")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountLedgerResponse{
		AccountCode:    code,
		Lines:          dto.LedgerLinesFromDomain(lines),
		ClosingBalance: ledger.ClosingBalance(lines),
	})
}

// Statement returns the account statement, as JSON or as a printable page.
func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	tenantID := tenantParam(r)

	st, err := h.statementUC.AccountStatement(r.Context(), tenantID, chi.URLParam(r, "code"))
	if err != nil {
		writeDomainError(w, err, "failed to build account statement")
		return
	}

	if wantsHTML(r) {
		writeHTML(w, func(buf *bytes.Buffer) error {
			return render.RenderStatement(buf, tenantID, st)
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromReport(st))
}

// writeHTML renders into a buffer first so a template failure still yields a
// clean error response.
func writeHTML(w http.ResponseWriter, renderFn func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := renderFn(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render document", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
