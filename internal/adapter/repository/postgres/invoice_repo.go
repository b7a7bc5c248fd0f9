package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/infrastructure/postgres/generated"
	"github.com/iho/storebooks/internal/usecase"
)

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	queries  *generated.Queries
	versions *SourceVersionRepository
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(db generated.DBTX) *InvoiceRepository {
	return &InvoiceRepository{
		queries:  generated.New(db),
		versions: NewSourceVersionRepository(db),
	}
}

// Create creates a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	err := r.queries.CreateInvoice(ctx, generated.CreateInvoiceParams{
		ID:          invoice.ID,
		TenantID:    invoice.TenantID,
		Number:      invoice.Number,
		Type:        string(invoice.Type),
		Status:      string(invoice.Status),
		Date:        timeToPgTimestamptz(invoice.Date),
		Total:       decimalToNumeric(invoice.Total),
		ContactName: invoice.ContactName,
		Currency:    invoice.Currency,
		CreatedAt:   timeToPgTimestamptz(invoice.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(invoice.UpdatedAt),
	})
	return tenantWriteError(err)
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Invoice, error) {
	row, err := r.queries.GetInvoiceByID(ctx, generated.GetInvoiceByIDParams{TenantID: tenantID, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, err
	}

	return rowToInvoice(row), nil
}

// List lists invoices in insertion order with pagination.
func (r *InvoiceRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Invoice, error) {
	rows, err := r.queries.ListInvoices(ctx, generated.ListInvoicesParams{
		TenantID: tenantID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToInvoices(rows), nil
}

// ListAll lists every invoice of the tenant in insertion order.
func (r *InvoiceRepository) ListAll(ctx context.Context, tenantID string) ([]*domain.Invoice, error) {
	rows, err := r.queries.ListAllInvoices(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return rowsToInvoices(rows), nil
}

// Update replaces the stored fields of an invoice.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	n, err := r.queries.UpdateInvoice(ctx, generated.UpdateInvoiceParams{
		TenantID:    invoice.TenantID,
		ID:          invoice.ID,
		Number:      invoice.Number,
		Type:        string(invoice.Type),
		Status:      string(invoice.Status),
		Date:        timeToPgTimestamptz(invoice.Date),
		Total:       decimalToNumeric(invoice.Total),
		ContactName: invoice.ContactName,
		Currency:    invoice.Currency,
		UpdatedAt:   timeToPgTimestamptz(invoice.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// Delete removes an invoice.
func (r *InvoiceRepository) Delete(ctx context.Context, tenantID, id string) error {
	n, err := r.queries.DeleteInvoice(ctx, generated.DeleteInvoiceParams{TenantID: tenantID, ID: id})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return r.versions.recordDeletion(ctx, tenantID, usecase.SourceInvoice)
}

func rowsToInvoices(rows []generated.Invoice) []*domain.Invoice {
	invoices := make([]*domain.Invoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, rowToInvoice(row))
	}
	return invoices
}

func rowToInvoice(row generated.Invoice) *domain.Invoice {
	return &domain.Invoice{
		ID:          row.ID,
		TenantID:    row.TenantID,
		Number:      row.Number,
		Type:        domain.InvoiceType(row.Type),
		Status:      domain.InvoiceStatus(row.Status),
		Date:        pgTimestamptzToTime(row.Date),
		Total:       numericToDecimal(row.Total),
		ContactName: row.ContactName,
		Currency:    row.Currency,
		CreatedAt:   pgTimestamptzToTime(row.CreatedAt),
		UpdatedAt:   pgTimestamptzToTime(row.UpdatedAt),
	}
}
