package handler

import (
	"context"
	"net/http"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

// TenantService defines the behavior needed by TenantHandler.
type TenantService interface {
	Provision(ctx context.Context, input usecase.ProvisionTenantInput) (*domain.Tenant, error)
	GetTenant(ctx context.Context, id string) (*domain.Tenant, error)
	ListTenants(ctx context.Context, limit, offset int) ([]*domain.Tenant, error)
}

// TenantHandler handles tenant provisioning.
type TenantHandler struct {
	tenantUC TenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantUC TenantService) *TenantHandler {
	return &TenantHandler{tenantUC: tenantUC}
}

// Provision creates a tenant together with its default chart of accounts.
func (h *TenantHandler) Provision(w http.ResponseWriter, r *http.Request) {
	var req dto.ProvisionTenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tenant, err := h.tenantUC.Provision(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to provision tenant")
		return
	}

	writeJSON(w, http.StatusCreated, dto.TenantFromDomain(tenant))
}

// Get retrieves a tenant.
func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.tenantUC.GetTenant(r.Context(), tenantParam(r))
	if err != nil {
		writeDomainError(w, err, "failed to get tenant")
		return
	}

	writeJSON(w, http.StatusOK, dto.TenantFromDomain(tenant))
}

// List lists tenants.
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	tenants, err := h.tenantUC.ListTenants(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, "failed to list tenants")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.TenantResponse]{
		Items:  dto.FromDomainList(tenants, dto.TenantFromDomain),
		Limit:  limit,
		Offset: offset,
	})
}
