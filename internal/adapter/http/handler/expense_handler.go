package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input usecase.ExpenseInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, tenantID, id string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Expense, error)
	UpdateExpense(ctx context.Context, id string, input usecase.ExpenseInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, tenantID, id string) error
}

// ExpenseHandler handles cash expenses.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.CreateExpense(r.Context(), req.ToUseCaseInput(tenantParam(r)))
	if err != nil {
		writeDomainError(w, err, "failed to create expense")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Get retrieves an expense by ID.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenseUC.GetExpense(r.Context(), tenantParam(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get expense")
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// List lists expenses in the order they were recorded.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	expenses, err := h.expenseUC.ListExpenses(r.Context(), tenantParam(r), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list expenses")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.ExpenseResponse]{
		Items:  dto.FromDomainList(expenses, dto.ExpenseFromDomain),
		Limit:  limit,
		Offset: offset,
	})
}

// Update replaces every field of an expense.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.UpdateExpense(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput(tenantParam(r)))
	if err != nil {
		writeDomainError(w, err, "failed to update expense")
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseUC.DeleteExpense(r.Context(), tenantParam(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete expense")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
