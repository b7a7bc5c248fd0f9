package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
)

// AccountUseCase manages a tenant's chart of accounts.
type AccountUseCase struct {
	tenantRepo  TenantRepository
	accountRepo AccountRepository
	idGen       IDGenerator
	recorder    Recorder
	log         zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(tenantRepo TenantRepository, accountRepo AccountRepository, idGen IDGenerator, recorder Recorder, log zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		tenantRepo:  tenantRepo,
		accountRepo: accountRepo,
		idGen:       idGen,
		recorder:    recorder,
		log:         log,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	TenantID       string             `validate:"required"`
	Code           string             `validate:"required,accountcode"`
	Name           string             `validate:"required,max=255"`
	Type           domain.AccountType `validate:"required,accounttype"`
	OpeningBalance decimal.Decimal    `validate:"gte=0"`
	Description    string             `validate:"max=1000"`
}

// CreateAccount adds a user account to the chart. User accounts are never
// system accounts.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.OpeningBalance); err != nil {
		return nil, err
	}
	if err := requireTenant(ctx, uc.tenantRepo, input.TenantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		TenantID:       input.TenantID,
		Code:           input.Code,
		Name:           input.Name,
		Type:           input.Type,
		OpeningBalance: input.OpeningBalance,
		Description:    input.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.recorder.SourceMutation(SourceAccount, OpCreate)
	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, tenantID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, tenantID, id)
}

// GetAccountByCode retrieves an account by its code.
func (uc *AccountUseCase) GetAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	return uc.accountRepo.GetByCode(ctx, tenantID, code)
}

// ListAccounts lists every account of the tenant ordered by code.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, tenantID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByTenant(ctx, tenantID)
}

// UpdateAccountInput represents a partial update of the account named by Code.
type UpdateAccountInput struct {
	TenantID       string              `validate:"required"`
	Code           string              `validate:"required"`
	NewCode        *string             `validate:"omitempty,accountcode"`
	Name           *string             `validate:"omitempty,min=1,max=255"`
	Type           *domain.AccountType `validate:"omitempty,accounttype"`
	OpeningBalance *decimal.Decimal    `validate:"omitempty,gte=0"`
	Description    *string             `validate:"omitempty,max=1000"`
}

// UpdateAccount applies a partial update. Code and type of system accounts
// are fixed.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	if input.OpeningBalance != nil {
		if err := domain.ValidateAmount(*input.OpeningBalance); err != nil {
			return nil, err
		}
	}

	account, err := uc.accountRepo.GetByCode(ctx, input.TenantID, input.Code)
	if err != nil {
		return nil, err
	}

	err = account.ApplyUpdate(domain.AccountUpdate{
		Code:           input.NewCode,
		Name:           input.Name,
		Type:           input.Type,
		OpeningBalance: input.OpeningBalance,
		Description:    input.Description,
	})
	if err != nil {
		uc.refused(input.TenantID, "update", err)
		return nil, err
	}

	account.UpdatedAt = time.Now().UTC()
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	uc.recorder.SourceMutation(SourceAccount, OpUpdate)
	return account, nil
}

// DeleteAccount removes a user account. System accounts are refused and the
// chart is left unchanged.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, tenantID, code string) error {
	account, err := uc.accountRepo.GetByCode(ctx, tenantID, code)
	if err != nil {
		return err
	}

	if err := account.CheckDeletable(); err != nil {
		uc.refused(tenantID, "delete", err)
		return err
	}

	if err := uc.accountRepo.Delete(ctx, tenantID, account.ID); err != nil {
		return err
	}

	uc.recorder.SourceMutation(SourceAccount, OpDelete)
	return nil
}

func (uc *AccountUseCase) refused(tenantID, operation string, err error) {
	var protected *domain.ProtectedAccountError
	if !errors.As(err, &protected) {
		return
	}

	uc.recorder.ProtectedMutation(operation)
	uc.log.Warn().
		Str("tenant_id", tenantID).
		Str("account_code", protected.Code).
		Str("operation", protected.Operation).
		Msg("refused mutation of system account")
}
