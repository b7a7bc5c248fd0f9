package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
)

// BondUseCase manages receipt and payment vouchers.
type BondUseCase struct {
	tenantRepo TenantRepository
	bondRepo   BondRepository
	idGen      IDGenerator
	recorder   Recorder
}

// NewBondUseCase creates a new BondUseCase.
func NewBondUseCase(tenantRepo TenantRepository, bondRepo BondRepository, idGen IDGenerator, recorder Recorder) *BondUseCase {
	return &BondUseCase{
		tenantRepo: tenantRepo,
		bondRepo:   bondRepo,
		idGen:      idGen,
		recorder:   recorder,
	}
}

// BondInput holds the fields of a bond.
type BondInput struct {
	TenantID      string               `validate:"required"`
	Type          domain.BondType      `validate:"required,oneof=receipt payment"`
	Date          time.Time            `validate:"required"`
	PaymentMethod domain.PaymentMethod `validate:"required,oneof=cash bank"`
	Amount        decimal.Decimal      `validate:"gte=0"`
	EntityName    string               `validate:"max=255"`
	Currency      string               `validate:"omitempty,len=3,uppercase"`
	Description   string               `validate:"max=1000"`
}

func (in BondInput) validate() error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	return domain.ValidateAmount(in.Amount)
}

// CreateBond records a new bond.
func (uc *BondUseCase) CreateBond(ctx context.Context, input BondInput) (*domain.Bond, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := requireTenant(ctx, uc.tenantRepo, input.TenantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bond := &domain.Bond{
		ID:        uc.idGen.Generate(),
		CreatedAt: now,
	}
	applyBondInput(bond, input, now)

	if err := uc.bondRepo.Create(ctx, bond); err != nil {
		return nil, err
	}

	uc.recorder.SourceMutation(SourceBond, OpCreate)
	return bond, nil
}

// GetBond retrieves a bond by ID.
func (uc *BondUseCase) GetBond(ctx context.Context, tenantID, id string) (*domain.Bond, error) {
	return uc.bondRepo.GetByID(ctx, tenantID, id)
}

// ListBonds lists bonds with pagination.
func (uc *BondUseCase) ListBonds(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Bond, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.bondRepo.List(ctx, tenantID, limit, offset)
}

// UpdateBond replaces the fields of an existing bond.
func (uc *BondUseCase) UpdateBond(ctx context.Context, id string, input BondInput) (*domain.Bond, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	bond, err := uc.bondRepo.GetByID(ctx, input.TenantID, id)
	if err != nil {
		return nil, err
	}
	applyBondInput(bond, input, time.Now().UTC())

	if err := uc.bondRepo.Update(ctx, bond); err != nil {
		return nil, err
	}

	uc.recorder.SourceMutation(SourceBond, OpUpdate)
	return bond, nil
}

// DeleteBond removes a bond.
func (uc *BondUseCase) DeleteBond(ctx context.Context, tenantID, id string) error {
	if err := uc.bondRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	uc.recorder.SourceMutation(SourceBond, OpDelete)
	return nil
}

func applyBondInput(bond *domain.Bond, input BondInput, now time.Time) {
	bond.TenantID = input.TenantID
	bond.Type = input.Type
	bond.Date = input.Date
	bond.PaymentMethod = input.PaymentMethod
	bond.Amount = input.Amount
	bond.EntityName = input.EntityName
	bond.Currency = input.Currency
	bond.Description = input.Description
	bond.UpdatedAt = now
}
