package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
)

// InvoiceUseCase manages sale and purchase invoices.
type InvoiceUseCase struct {
	tenantRepo  TenantRepository
	invoiceRepo InvoiceRepository
	idGen       IDGenerator
	recorder    Recorder
}

// NewInvoiceUseCase creates a new InvoiceUseCase.
func NewInvoiceUseCase(tenantRepo TenantRepository, invoiceRepo InvoiceRepository, idGen IDGenerator, recorder Recorder) *InvoiceUseCase {
	return &InvoiceUseCase{
		tenantRepo:  tenantRepo,
		invoiceRepo: invoiceRepo,
		idGen:       idGen,
		recorder:    recorder,
	}
}

// InvoiceInput holds the fields of an invoice. Contact names are free text
// and are not checked against any registry.
type InvoiceInput struct {
	TenantID    string               `validate:"required"`
	Number      string               `validate:"max=64"`
	Type        domain.InvoiceType   `validate:"required,oneof=sale purchase"`
	Status      domain.InvoiceStatus `validate:"required,oneof=paid pending cancelled credit"`
	Date        time.Time            `validate:"required"`
	Total       decimal.Decimal      `validate:"gte=0"`
	ContactName string               `validate:"max=255"`
	Currency    string               `validate:"omitempty,len=3,uppercase"`
}

func (in InvoiceInput) validate() error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	return domain.ValidateAmount(in.Total)
}

// CreateInvoice records a new invoice.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, input InvoiceInput) (*domain.Invoice, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := requireTenant(ctx, uc.tenantRepo, input.TenantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		ID:        uc.idGen.Generate(),
		CreatedAt: now,
	}
	applyInvoiceInput(invoice, input, now)

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	uc.recorder.SourceMutation(SourceInvoice, OpCreate)
	return invoice, nil
}

// GetInvoice retrieves an invoice by ID.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, tenantID, id string) (*domain.Invoice, error) {
	return uc.invoiceRepo.GetByID(ctx, tenantID, id)
}

// ListInvoices lists invoices with pagination.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Invoice, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.invoiceRepo.List(ctx, tenantID, limit, offset)
}

// UpdateInvoice replaces the fields of an existing invoice.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id string, input InvoiceInput) (*domain.Invoice, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	invoice, err := uc.invoiceRepo.GetByID(ctx, input.TenantID, id)
	if err != nil {
		return nil, err
	}
	applyInvoiceInput(invoice, input, time.Now().UTC())

	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	uc.recorder.SourceMutation(SourceInvoice, OpUpdate)
	return invoice, nil
}

// DeleteInvoice removes an invoice.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, tenantID, id string) error {
	if err := uc.invoiceRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	uc.recorder.SourceMutation(SourceInvoice, OpDelete)
	return nil
}

func applyInvoiceInput(invoice *domain.Invoice, input InvoiceInput, now time.Time) {
	invoice.TenantID = input.TenantID
	invoice.Number = input.Number
	invoice.Type = input.Type
	invoice.Status = input.Status
	invoice.Date = input.Date
	invoice.Total = input.Total
	invoice.ContactName = input.ContactName
	invoice.Currency = input.Currency
	invoice.UpdatedAt = now
}
