package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/infrastructure/postgres/generated"
	"github.com/iho/storebooks/internal/usecase"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	queries  *generated.Queries
	versions *SourceVersionRepository
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db generated.DBTX) *ExpenseRepository {
	return &ExpenseRepository{
		queries:  generated.New(db),
		versions: NewSourceVersionRepository(db),
	}
}

// Create creates a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	err := r.queries.CreateExpense(ctx, generated.CreateExpenseParams{
		ID:        expense.ID,
		TenantID:  expense.TenantID,
		Date:      timeToPgTimestamptz(expense.Date),
		Amount:    decimalToNumeric(expense.Amount),
		Title:     expense.Title,
		Category:  expense.Category,
		CreatedAt: timeToPgTimestamptz(expense.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(expense.UpdatedAt),
	})
	return tenantWriteError(err)
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Expense, error) {
	row, err := r.queries.GetExpenseByID(ctx, generated.GetExpenseByIDParams{TenantID: tenantID, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	return rowToExpense(row), nil
}

// List lists expenses in insertion order with pagination.
func (r *ExpenseRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx, generated.ListExpensesParams{
		TenantID: tenantID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToExpenses(rows), nil
}

// ListAll lists every expense of the tenant in insertion order.
func (r *ExpenseRepository) ListAll(ctx context.Context, tenantID string) ([]*domain.Expense, error) {
	rows, err := r.queries.ListAllExpenses(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return rowsToExpenses(rows), nil
}

// Update replaces the stored fields of an expense.
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	n, err := r.queries.UpdateExpense(ctx, generated.UpdateExpenseParams{
		TenantID:  expense.TenantID,
		ID:        expense.ID,
		Date:      timeToPgTimestamptz(expense.Date),
		Amount:    decimalToNumeric(expense.Amount),
		Title:     expense.Title,
		Category:  expense.Category,
		UpdatedAt: timeToPgTimestamptz(expense.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, tenantID, id string) error {
	n, err := r.queries.DeleteExpense(ctx, generated.DeleteExpenseParams{TenantID: tenantID, ID: id})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrExpenseNotFound
	}
	return r.versions.recordDeletion(ctx, tenantID, usecase.SourceExpense)
}

func rowsToExpenses(rows []generated.Expense) []*domain.Expense {
	expenses := make([]*domain.Expense, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, rowToExpense(row))
	}
	return expenses
}

func rowToExpense(row generated.Expense) *domain.Expense {
	return &domain.Expense{
		ID:        row.ID,
		TenantID:  row.TenantID,
		Date:      pgTimestamptzToTime(row.Date),
		Amount:    numericToDecimal(row.Amount),
		Title:     row.Title,
		Category:  row.Category,
		CreatedAt: pgTimestamptzToTime(row.CreatedAt),
		UpdatedAt: pgTimestamptzToTime(row.UpdatedAt),
	}
}
