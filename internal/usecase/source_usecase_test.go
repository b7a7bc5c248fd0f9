package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

func TestInvoiceUseCase_CRUD(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()
	env.provision(t, "acme")

	input := usecase.InvoiceInput{
		TenantID:    "acme",
		Number:      "INV-001",
		Type:        domain.InvoiceTypeSale,
		Status:      domain.InvoiceStatusPending,
		Date:        date(1),
		Total:       decimal.NewFromInt(120),
		ContactName: "Nobody in particular",
		Currency:    "USD",
	}

	inv, err := env.invoices.CreateInvoice(ctx, input)
	require.NoError(t, err)

	input.Status = domain.InvoiceStatusPaid
	updated, err := env.invoices.UpdateInvoice(ctx, inv.ID, input)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, updated.Status)
	assert.Equal(t, inv.CreatedAt, updated.CreatedAt)

	list, err := env.invoices.ListInvoices(ctx, "acme", 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.invoices.DeleteInvoice(ctx, "acme", inv.ID))
	_, err = env.invoices.GetInvoice(ctx, "acme", inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	assert.Equal(t, 1, env.recorder.sources["invoice/create"])
	assert.Equal(t, 1, env.recorder.sources["invoice/update"])
	assert.Equal(t, 1, env.recorder.sources["invoice/delete"])
}

func TestInvoiceUseCase_Validation(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})

	valid := usecase.InvoiceInput{TenantID: "acme", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPaid, Date: date(1), Total: decimal.NewFromInt(1)}

	tests := []struct {
		name   string
		mutate func(*usecase.InvoiceInput)
	}{
		{"unknown type", func(in *usecase.InvoiceInput) { in.Type = "refund" }},
		{"unknown status", func(in *usecase.InvoiceInput) { in.Status = "draft" }},
		{"missing date", func(in *usecase.InvoiceInput) { in.Date = time.Time{} }},
		{"negative total", func(in *usecase.InvoiceInput) { in.Total = decimal.NewFromInt(-10) }},
		{"total finer than storage", func(in *usecase.InvoiceInput) { in.Total = decimal.RequireFromString("10.00005") }},
		{"lower case currency", func(in *usecase.InvoiceInput) { in.Currency = "usd" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := env.invoices.CreateInvoice(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestBondUseCase_CRUD(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()
	env.provision(t, "acme")

	input := usecase.BondInput{
		TenantID:      "acme",
		Type:          domain.BondTypeReceipt,
		Date:          date(2),
		PaymentMethod: domain.PaymentMethodBank,
		Amount:        decimal.NewFromInt(300),
		EntityName:    "Customer",
	}

	bond, err := env.bonds.CreateBond(ctx, input)
	require.NoError(t, err)

	input.PaymentMethod = domain.PaymentMethodCash
	updated, err := env.bonds.UpdateBond(ctx, bond.ID, input)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodCash, updated.PaymentMethod)

	_, err = env.bonds.CreateBond(ctx, usecase.BondInput{TenantID: "acme", Type: "refund", Date: date(2), PaymentMethod: domain.PaymentMethodCash})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, env.bonds.DeleteBond(ctx, "acme", bond.ID))
	assert.ErrorIs(t, env.bonds.DeleteBond(ctx, "acme", bond.ID), domain.ErrBondNotFound)
}

func TestExpenseUseCase_CRUD(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()
	env.provision(t, "acme")

	input := usecase.ExpenseInput{TenantID: "acme", Date: date(3), Amount: decimal.NewFromInt(40), Title: "Electricity", Category: "utilities"}

	expense, err := env.expenses.CreateExpense(ctx, input)
	require.NoError(t, err)

	input.Amount = decimal.NewFromInt(45)
	updated, err := env.expenses.UpdateExpense(ctx, expense.ID, input)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(45).Equal(updated.Amount))

	_, err = env.expenses.UpdateExpense(ctx, "missing", input)
	assert.ErrorIs(t, err, domain.ErrExpenseNotFound)

	_, err = env.expenses.CreateExpense(ctx, usecase.ExpenseInput{TenantID: "acme", Date: date(3), Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSourceUseCases_RequireProvisionedTenant(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()

	_, err := env.invoices.CreateInvoice(ctx, usecase.InvoiceInput{TenantID: "ghost", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPaid, Date: date(1), Total: decimal.NewFromInt(500)})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)

	_, err = env.bonds.CreateBond(ctx, usecase.BondInput{TenantID: "ghost", Type: domain.BondTypeReceipt, Date: date(1), PaymentMethod: domain.PaymentMethodCash, Amount: decimal.NewFromInt(500)})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)

	_, err = env.expenses.CreateExpense(ctx, usecase.ExpenseInput{TenantID: "ghost", Date: date(1), Amount: decimal.NewFromInt(5), Title: "Paper"})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)

	_, err = env.accounts.CreateAccount(ctx, usecase.CreateAccountInput{TenantID: "ghost", Code: "1001", Name: "Cash", Type: domain.AccountTypeAsset})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)

	// Nothing was written ahead of the book, so provisioning later starts clean.
	env.provision(t, "ghost")

	invoices, err := env.invoices.ListInvoices(ctx, "ghost", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, invoices)

	bonds, err := env.bonds.ListBonds(ctx, "ghost", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, bonds)

	expenses, err := env.expenses.ListExpenses(ctx, "ghost", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
