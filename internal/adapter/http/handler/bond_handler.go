package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

// BondService defines the behavior needed by BondHandler.
type BondService interface {
	CreateBond(ctx context.Context, input usecase.BondInput) (*domain.Bond, error)
	GetBond(ctx context.Context, tenantID, id string) (*domain.Bond, error)
	ListBonds(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Bond, error)
	UpdateBond(ctx context.Context, id string, input usecase.BondInput) (*domain.Bond, error)
	DeleteBond(ctx context.Context, tenantID, id string) error
}

// BondHandler handles receipt and payment vouchers.
type BondHandler struct {
	bondUC BondService
}

// NewBondHandler creates a new BondHandler.
func NewBondHandler(bondUC BondService) *BondHandler {
	return &BondHandler{bondUC: bondUC}
}

// Create records a new bond.
func (h *BondHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.BondRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bond, err := h.bondUC.CreateBond(r.Context(), req.ToUseCaseInput(tenantParam(r)))
	if err != nil {
		writeDomainError(w, err, "failed to create bond")
		return
	}

	writeJSON(w, http.StatusCreated, dto.BondFromDomain(bond))
}

// Get retrieves a bond by ID.
func (h *BondHandler) Get(w http.ResponseWriter, r *http.Request) {
	bond, err := h.bondUC.GetBond(r.Context(), tenantParam(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get bond")
		return
	}

	writeJSON(w, http.StatusOK, dto.BondFromDomain(bond))
}

// List lists bonds in the order they were recorded.
func (h *BondHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	bonds, err := h.bondUC.ListBonds(r.Context(), tenantParam(r), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list bonds")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.BondResponse]{
		Items:  dto.FromDomainList(bonds, dto.BondFromDomain),
		Limit:  limit,
		Offset: offset,
	})
}

// Update replaces every field of a bond.
func (h *BondHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.BondRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bond, err := h.bondUC.UpdateBond(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput(tenantParam(r)))
	if err != nil {
		writeDomainError(w, err, "failed to update bond")
		return
	}

	writeJSON(w, http.StatusOK, dto.BondFromDomain(bond))
}

// Delete removes a bond.
func (h *BondHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bondUC.DeleteBond(r.Context(), tenantParam(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete bond")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
