package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/ledger"
)

// TenantUseCase provisions tenants and their books.
type TenantUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	tenantRepo  TenantRepository
	accountRepo AccountRepository
	idGen       IDGenerator
	extraChart  []domain.Account
	log         zerolog.Logger
}

// NewTenantUseCase creates a new TenantUseCase. extraChart holds additional
// non-system accounts seeded into every new book after the default chart.
func NewTenantUseCase(
	txManager TransactionManager,
	retrier Retrier,
	tenantRepo TenantRepository,
	accountRepo AccountRepository,
	idGen IDGenerator,
	extraChart []domain.Account,
	log zerolog.Logger,
) *TenantUseCase {
	return &TenantUseCase{
		txManager:   txManager,
		retrier:     retrier,
		tenantRepo:  tenantRepo,
		accountRepo: accountRepo,
		idGen:       idGen,
		extraChart:  extraChart,
		log:         log,
	}
}

// ProvisionTenantInput represents input for provisioning a tenant.
type ProvisionTenantInput struct {
	ID   string `validate:"omitempty,max=64,slug"`
	Name string `validate:"required,max=255"`
}

// Provision creates the tenant and seeds its chart of accounts atomically.
func (uc *TenantUseCase) Provision(ctx context.Context, input ProvisionTenantInput) (*domain.Tenant, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		ID:        input.ID,
		Name:      input.Name,
		CreatedAt: time.Now().UTC(),
	}
	if tenant.ID == "" {
		tenant.ID = uc.idGen.Generate()
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	err := uc.retrier.Retry(ctx, func() error {
		return uc.seed(ctx, tenant)
	})
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	if _, err := ledger.ResolveWellKnown(accounts); err != nil {
		uc.log.Error().Err(err).Str("tenant_id", tenant.ID).Msg("provisioned book is missing well-known accounts")
		return nil, fmt.Errorf("provision tenant %s: %w", tenant.ID, err)
	}

	uc.log.Info().
		Str("tenant_id", tenant.ID).
		Int("accounts", len(accounts)).
		Msg("tenant provisioned")

	return tenant, nil
}

func (uc *TenantUseCase) seed(ctx context.Context, tenant *domain.Tenant) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.tenantRepo.Create(ctx, tx, tenant); err != nil {
		return err
	}

	for _, account := range uc.chartFor(tenant) {
		if err := uc.accountRepo.CreateTx(ctx, tx, &account); err != nil {
			return fmt.Errorf("seed account %s: %w", account.Code, err)
		}
	}

	return tx.Commit(ctx)
}

func (uc *TenantUseCase) chartFor(tenant *domain.Tenant) []domain.Account {
	chart := domain.SeedAccounts(tenant.ID)
	for _, extra := range uc.extraChart {
		extra.TenantID = tenant.ID
		extra.SystemAccount = false
		chart = append(chart, extra)
	}

	for i := range chart {
		chart[i].ID = uc.idGen.Generate()
		chart[i].CreatedAt = tenant.CreatedAt
		chart[i].UpdatedAt = tenant.CreatedAt
	}
	return chart
}

// GetTenant retrieves a tenant by ID.
func (uc *TenantUseCase) GetTenant(ctx context.Context, id string) (*domain.Tenant, error) {
	return uc.tenantRepo.GetByID(ctx, id)
}

// ListTenants lists tenants with pagination.
func (uc *TenantUseCase) ListTenants(ctx context.Context, limit, offset int) ([]*domain.Tenant, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.tenantRepo.List(ctx, limit, offset)
}

// requireTenant fails with ErrTenantNotFound unless tenantID was provisioned,
// so no record can be written ahead of its book.
func requireTenant(ctx context.Context, tenants TenantRepository, tenantID string) error {
	_, err := tenants.GetByID(ctx, tenantID)
	return err
}
