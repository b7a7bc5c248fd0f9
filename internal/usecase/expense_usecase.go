package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
)

// ExpenseUseCase manages operating expenses.
type ExpenseUseCase struct {
	tenantRepo  TenantRepository
	expenseRepo ExpenseRepository
	idGen       IDGenerator
	recorder    Recorder
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(tenantRepo TenantRepository, expenseRepo ExpenseRepository, idGen IDGenerator, recorder Recorder) *ExpenseUseCase {
	return &ExpenseUseCase{
		tenantRepo:  tenantRepo,
		expenseRepo: expenseRepo,
		idGen:       idGen,
		recorder:    recorder,
	}
}

// ExpenseInput holds the fields of an expense.
type ExpenseInput struct {
	TenantID string          `validate:"required"`
	Date     time.Time       `validate:"required"`
	Amount   decimal.Decimal `validate:"gte=0"`
	Title    string          `validate:"required,max=255"`
	Category string          `validate:"max=100"`
}

func (in ExpenseInput) validate() error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	return domain.ValidateAmount(in.Amount)
}

// CreateExpense records a new expense.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input ExpenseInput) (*domain.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := requireTenant(ctx, uc.tenantRepo, input.TenantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:        uc.idGen.Generate(),
		CreatedAt: now,
	}
	applyExpenseInput(expense, input, now)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	uc.recorder.SourceMutation(SourceExpense, OpCreate)
	return expense, nil
}

// GetExpense retrieves an expense by ID.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, tenantID, id string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, tenantID, id)
}

// ListExpenses lists expenses with pagination.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Expense, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.expenseRepo.List(ctx, tenantID, limit, offset)
}

// UpdateExpense replaces the fields of an existing expense.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, id string, input ExpenseInput) (*domain.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense, err := uc.expenseRepo.GetByID(ctx, input.TenantID, id)
	if err != nil {
		return nil, err
	}
	applyExpenseInput(expense, input, time.Now().UTC())

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	uc.recorder.SourceMutation(SourceExpense, OpUpdate)
	return expense, nil
}

// DeleteExpense removes an expense.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, tenantID, id string) error {
	if err := uc.expenseRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	uc.recorder.SourceMutation(SourceExpense, OpDelete)
	return nil
}

func applyExpenseInput(expense *domain.Expense, input ExpenseInput, now time.Time) {
	expense.TenantID = input.TenantID
	expense.Date = input.Date
	expense.Amount = input.Amount
	expense.Title = input.Title
	expense.Category = input.Category
	expense.UpdatedAt = now
}
