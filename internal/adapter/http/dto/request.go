package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

// ProvisionTenantRequest represents a request to provision a tenant.
type ProvisionTenantRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *ProvisionTenantRequest) ToUseCaseInput() usecase.ProvisionTenantInput {
	return usecase.ProvisionTenantInput{
		ID:   r.ID,
		Name: r.Name,
	}
}

// CreateAccountRequest represents a request to add an account to the chart.
type CreateAccountRequest struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Description    string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(tenantID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		TenantID:       tenantID,
		Code:           r.Code,
		Name:           r.Name,
		Type:           domain.AccountType(r.Type),
		OpeningBalance: r.OpeningBalance,
		Description:    r.Description,
	}
}

// UpdateAccountRequest is a partial update; absent fields are left as is.
type UpdateAccountRequest struct {
	Code           *string          `json:"code,omitempty"`
	Name           *string          `json:"name,omitempty"`
	Type           *string          `json:"type,omitempty"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
	Description    *string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input for the account at code.
func (r *UpdateAccountRequest) ToUseCaseInput(tenantID, code string) usecase.UpdateAccountInput {
	in := usecase.UpdateAccountInput{
		TenantID:       tenantID,
		Code:           code,
		NewCode:        r.Code,
		Name:           r.Name,
		OpeningBalance: r.OpeningBalance,
		Description:    r.Description,
	}
	if r.Type != nil {
		t := domain.AccountType(*r.Type)
		in.Type = &t
	}
	return in
}

// InvoiceRequest carries the fields of an invoice.
type InvoiceRequest struct {
	Number      string          `json:"number,omitempty"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Date        Date            `json:"date"`
	Total       decimal.Decimal `json:"total"`
	ContactName string          `json:"contact_name,omitempty"`
	Currency    string          `json:"currency,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *InvoiceRequest) ToUseCaseInput(tenantID string) usecase.InvoiceInput {
	return usecase.InvoiceInput{
		TenantID:    tenantID,
		Number:      r.Number,
		Type:        domain.InvoiceType(r.Type),
		Status:      domain.InvoiceStatus(r.Status),
		Date:        r.Date.Time(),
		Total:       r.Total,
		ContactName: r.ContactName,
		Currency:    r.Currency,
	}
}

// BondRequest carries the fields of a receipt or payment voucher.
type BondRequest struct {
	Type          string          `json:"type"`
	Date          Date            `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	EntityName    string          `json:"entity_name,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	Description   string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *BondRequest) ToUseCaseInput(tenantID string) usecase.BondInput {
	return usecase.BondInput{
		TenantID:      tenantID,
		Type:          domain.BondType(r.Type),
		Date:          r.Date.Time(),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Amount:        r.Amount,
		EntityName:    r.EntityName,
		Currency:      r.Currency,
		Description:   r.Description,
	}
}

// ExpenseRequest carries the fields of an expense.
type ExpenseRequest struct {
	Date     Date            `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Title    string          `json:"title"`
	Category string          `json:"category,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ExpenseRequest) ToUseCaseInput(tenantID string) usecase.ExpenseInput {
	return usecase.ExpenseInput{
		TenantID: tenantID,
		Date:     r.Date.Time(),
		Amount:   r.Amount,
		Title:    r.Title,
		Category: r.Category,
	}
}
