package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/infrastructure/postgres/generated"
	"github.com/iho/storebooks/internal/usecase"
)

// BondRepository implements usecase.BondRepository.
type BondRepository struct {
	queries  *generated.Queries
	versions *SourceVersionRepository
}

// NewBondRepository creates a new BondRepository.
func NewBondRepository(db generated.DBTX) *BondRepository {
	return &BondRepository{
		queries:  generated.New(db),
		versions: NewSourceVersionRepository(db),
	}
}

// Create creates a new bond.
func (r *BondRepository) Create(ctx context.Context, bond *domain.Bond) error {
	err := r.queries.CreateBond(ctx, generated.CreateBondParams{
		ID:            bond.ID,
		TenantID:      bond.TenantID,
		Type:          string(bond.Type),
		Date:          timeToPgTimestamptz(bond.Date),
		PaymentMethod: string(bond.PaymentMethod),
		Amount:        decimalToNumeric(bond.Amount),
		EntityName:    bond.EntityName,
		Currency:      bond.Currency,
		Description:   bond.Description,
		CreatedAt:     timeToPgTimestamptz(bond.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(bond.UpdatedAt),
	})
	return tenantWriteError(err)
}

// GetByID retrieves a bond by ID.
func (r *BondRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Bond, error) {
	row, err := r.queries.GetBondByID(ctx, generated.GetBondByIDParams{TenantID: tenantID, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBondNotFound
		}

		return nil, err
	}

	return rowToBond(row), nil
}

// List lists bonds in insertion order with pagination.
func (r *BondRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Bond, error) {
	rows, err := r.queries.ListBonds(ctx, generated.ListBondsParams{
		TenantID: tenantID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToBonds(rows), nil
}

// ListAll lists every bond of the tenant in insertion order.
func (r *BondRepository) ListAll(ctx context.Context, tenantID string) ([]*domain.Bond, error) {
	rows, err := r.queries.ListAllBonds(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return rowsToBonds(rows), nil
}

// Update replaces the stored fields of a bond.
func (r *BondRepository) Update(ctx context.Context, bond *domain.Bond) error {
	n, err := r.queries.UpdateBond(ctx, generated.UpdateBondParams{
		TenantID:      bond.TenantID,
		ID:            bond.ID,
		Type:          string(bond.Type),
		Date:          timeToPgTimestamptz(bond.Date),
		PaymentMethod: string(bond.PaymentMethod),
		Amount:        decimalToNumeric(bond.Amount),
		EntityName:    bond.EntityName,
		Currency:      bond.Currency,
		Description:   bond.Description,
		UpdatedAt:     timeToPgTimestamptz(bond.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBondNotFound
	}
	return nil
}

// Delete removes a bond.
func (r *BondRepository) Delete(ctx context.Context, tenantID, id string) error {
	n, err := r.queries.DeleteBond(ctx, generated.DeleteBondParams{TenantID: tenantID, ID: id})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBondNotFound
	}
	return r.versions.recordDeletion(ctx, tenantID, usecase.SourceBond)
}

func rowsToBonds(rows []generated.Bond) []*domain.Bond {
	bonds := make([]*domain.Bond, 0, len(rows))
	for _, row := range rows {
		bonds = append(bonds, rowToBond(row))
	}
	return bonds
}

func rowToBond(row generated.Bond) *domain.Bond {
	return &domain.Bond{
		ID:            row.ID,
		TenantID:      row.TenantID,
		Type:          domain.BondType(row.Type),
		Date:          pgTimestamptzToTime(row.Date),
		PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
		Amount:        numericToDecimal(row.Amount),
		EntityName:    row.EntityName,
		Currency:      row.Currency,
		Description:   row.Description,
		CreatedAt:     pgTimestamptzToTime(row.CreatedAt),
		UpdatedAt:     pgTimestamptzToTime(row.UpdatedAt),
	}
}
