package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/infrastructure/postgres/generated"
	"github.com/iho/storebooks/internal/usecase"
)

// TenantRepository implements usecase.TenantRepository.
type TenantRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewTenantRepository creates a new TenantRepository.
func NewTenantRepository(db generated.DBTX) *TenantRepository {
	return &TenantRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// Create inserts a tenant inside tx.
func (r *TenantRepository) Create(ctx context.Context, tx usecase.Transaction, tenant *domain.Tenant) error {
	err := queriesFor(r.db, tx).CreateTenant(ctx, generated.CreateTenantParams{
		ID:        tenant.ID,
		Name:      tenant.Name,
		CreatedAt: timeToPgTimestamptz(tenant.CreatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrTenantExists
	}
	return err
}

// GetByID retrieves a tenant by ID.
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	row, err := r.queries.GetTenantByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}

		return nil, err
	}

	return rowToTenant(row), nil
}

// List lists tenants in creation order.
func (r *TenantRepository) List(ctx context.Context, limit, offset int) ([]*domain.Tenant, error) {
	rows, err := r.queries.ListTenants(ctx, generated.ListTenantsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	tenants := make([]*domain.Tenant, 0, len(rows))
	for _, row := range rows {
		tenants = append(tenants, rowToTenant(row))
	}

	return tenants, nil
}

func rowToTenant(row generated.Tenant) *domain.Tenant {
	return &domain.Tenant{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: pgTimestamptzToTime(row.CreatedAt),
	}
}
