package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/infrastructure/postgres/generated"
	"github.com/iho/storebooks/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db       generated.DBTX
	queries  *generated.Queries
	versions *SourceVersionRepository
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{
		db:       db,
		queries:  generated.New(db),
		versions: NewSourceVersionRepository(db),
	}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.CreateTx(ctx, nil, account)
}

// CreateTx creates a new account inside tx.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	err := queriesFor(r.db, tx).CreateAccount(ctx, generated.CreateAccountParams{
		ID:             account.ID,
		TenantID:       account.TenantID,
		Code:           account.Code,
		Name:           account.Name,
		Type:           string(account.Type),
		OpeningBalance: decimalToNumeric(account.OpeningBalance),
		Description:    account.Description,
		SystemAccount:  account.SystemAccount,
		CreatedAt:      timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateAccountCode
	}
	return tenantWriteError(err)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, generated.GetAccountByIDParams{TenantID: tenantID, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByCode retrieves an account by its code.
func (r *AccountRepository) GetByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByCode(ctx, generated.GetAccountByCodeParams{TenantID: tenantID, Code: code})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// ListByTenant lists the tenant's chart ordered by code.
func (r *AccountRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// Update writes the mutable fields of an account.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	n, err := r.queries.UpdateAccount(ctx, generated.UpdateAccountParams{
		TenantID:       account.TenantID,
		ID:             account.ID,
		Code:           account.Code,
		Name:           account.Name,
		Type:           string(account.Type),
		OpeningBalance: decimalToNumeric(account.OpeningBalance),
		Description:    account.Description,
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAccountCode
		}
		return err
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// Delete removes an account.
func (r *AccountRepository) Delete(ctx context.Context, tenantID, id string) error {
	n, err := r.queries.DeleteAccount(ctx, generated.DeleteAccountParams{TenantID: tenantID, ID: id})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return r.versions.recordDeletion(ctx, tenantID, usecase.SourceAccount)
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:             row.ID,
		TenantID:       row.TenantID,
		Code:           row.Code,
		Name:           row.Name,
		Type:           domain.AccountType(row.Type),
		OpeningBalance: numericToDecimal(row.OpeningBalance),
		Description:    row.Description,
		SystemAccount:  row.SystemAccount,
		CreatedAt:      pgTimestamptzToTime(row.CreatedAt),
		UpdatedAt:      pgTimestamptzToTime(row.UpdatedAt),
	}
}
