package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

// InvoiceService defines the behavior needed by InvoiceHandler.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input usecase.InvoiceInput) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, tenantID, id string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, input usecase.InvoiceInput) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, tenantID, id string) error
}

// InvoiceHandler handles sale and purchase invoices.
type InvoiceHandler struct {
	invoiceUC InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceUC InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceUC: invoiceUC}
}

// Create records a new invoice.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.InvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	invoice, err := h.invoiceUC.CreateInvoice(r.Context(), req.ToUseCaseInput(tenantParam(r)))
	if err != nil {
		writeDomainError(w, err, "failed to create invoice")
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvoiceFromDomain(invoice))
}

// Get retrieves an invoice by ID.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceUC.GetInvoice(r.Context(), tenantParam(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get invoice")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// List lists invoices in the order they were recorded.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	invoices, err := h.invoiceUC.ListInvoices(r.Context(), tenantParam(r), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list invoices")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.InvoiceResponse]{
		Items:  dto.FromDomainList(invoices, dto.InvoiceFromDomain),
		Limit:  limit,
		Offset: offset,
	})
}

// Update replaces every field of an invoice.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.InvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	invoice, err := h.invoiceUC.UpdateInvoice(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput(tenantParam(r)))
	if err != nil {
		writeDomainError(w, err, "failed to update invoice")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// Delete removes an invoice.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.invoiceUC.DeleteInvoice(r.Context(), tenantParam(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete invoice")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
