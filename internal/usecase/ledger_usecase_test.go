package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/storebooks/internal/adapter/repository/memory"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// recordScenario books a sale of 1000, a purchase of 400, a cash receipt of
// 1000 and a cash expense of 100.
func recordScenario(t *testing.T, env *testEnv, tenantID string) {
	t.Helper()
	ctx := context.Background()

	_, err := env.invoices.CreateInvoice(ctx, usecase.InvoiceInput{TenantID: tenantID, Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPaid, Date: date(1), Total: dec(1000)})
	require.NoError(t, err)
	_, err = env.invoices.CreateInvoice(ctx, usecase.InvoiceInput{TenantID: tenantID, Type: domain.InvoiceTypePurchase, Status: domain.InvoiceStatusPending, Date: date(1), Total: dec(400)})
	require.NoError(t, err)
	_, err = env.bonds.CreateBond(ctx, usecase.BondInput{TenantID: tenantID, Type: domain.BondTypeReceipt, Date: date(2), PaymentMethod: domain.PaymentMethodCash, Amount: dec(1000)})
	require.NoError(t, err)
	_, err = env.expenses.CreateExpense(ctx, usecase.ExpenseInput{TenantID: tenantID, Date: date(3), Amount: dec(100), Title: "Supplies"})
	require.NoError(t, err)
}

func TestLedgerUseCase_EndToEnd(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()
	env.provision(t, "acme")
	recordScenario(t, env, "acme")

	rows, err := env.ledger.TrialBalance(ctx, "acme")
	require.NoError(t, err)

	net := map[string]decimal.Decimal{}
	for _, r := range rows {
		net[r.AccountCode] = r.NetBalance
	}
	assert.True(t, dec(900).Equal(net[domain.CodeCash]))
	assert.True(t, net[domain.CodeReceivable].IsZero())
	assert.True(t, dec(-1000).Equal(net[domain.CodeSales]))
	assert.True(t, dec(400).Equal(net[domain.CodePurchases]))
	assert.True(t, dec(-400).Equal(net[domain.CodePayable]))
	assert.True(t, dec(100).Equal(net[domain.CodeGeneralExpenses]))

	report, err := env.ledger.CheckConsistency(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, report.Balanced)
	assert.True(t, dec(2500).Equal(report.TotalDebit))
	assert.Zero(t, report.UnassignedLegs)
	assert.Empty(t, report.MissingAccounts)

	lines, err := env.ledger.AccountLedger(ctx, "acme", domain.CodeCash)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, dec(1000).Equal(lines[0].Balance))
	assert.True(t, dec(900).Equal(lines[1].Balance))
}

func TestLedgerUseCase_CancelledInvoiceHasNoEffect(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()
	env.provision(t, "acme")

	_, err := env.invoices.CreateInvoice(ctx, usecase.InvoiceInput{TenantID: "acme", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusCancelled, Date: date(1), Total: dec(999)})
	require.NoError(t, err)

	postings, err := env.ledger.Postings(ctx, "acme")
	require.NoError(t, err)
	assert.Empty(t, postings)
}

func TestLedgerUseCase_UnknownAccountAndTenant(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()
	env.provision(t, "acme")

	_, err := env.ledger.AccountLedger(ctx, "acme", "9999")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = env.ledger.TrialBalance(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestLedgerUseCase_UnbalancedOpeningsAreReported(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()
	env.provision(t, "acme")

	_, err := env.accounts.UpdateAccount(ctx, usecase.UpdateAccountInput{TenantID: "acme", Code: domain.CodeBank, OpeningBalance: ptr(dec(700))})
	require.NoError(t, err)

	report, err := env.ledger.CheckConsistency(ctx, "acme")
	require.ErrorIs(t, err, usecase.ErrInconsistentLedger)
	assert.False(t, report.Balanced)
	assert.True(t, dec(700).Equal(report.OpeningDifference))

	_, err = env.accounts.UpdateAccount(ctx, usecase.UpdateAccountInput{TenantID: "acme", Code: domain.CodeCapital, OpeningBalance: ptr(dec(700))})
	require.NoError(t, err)

	report, err = env.ledger.CheckConsistency(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, report.OpeningDifference.IsZero())
}

func TestLedgerUseCase_MissingWellKnownAccount(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()

	// A book written directly to storage, bypassing provisioning.
	tenantRepo := memory.NewTenantRepository(env.store)
	accountRepo := memory.NewAccountRepository(env.store)
	require.NoError(t, tenantRepo.Create(ctx, nil, &domain.Tenant{ID: "legacy"}))
	for _, a := range domain.SeedAccounts("legacy") {
		if a.Code == domain.CodeSales {
			continue
		}
		a.ID = "legacy-" + a.Code
		require.NoError(t, accountRepo.Create(ctx, &a))
	}

	_, err := env.invoices.CreateInvoice(ctx, usecase.InvoiceInput{TenantID: "legacy", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPaid, Date: date(1), Total: dec(50)})
	require.NoError(t, err)

	report, err := env.ledger.CheckConsistency(ctx, "legacy")
	require.ErrorIs(t, err, usecase.ErrInconsistentLedger)
	assert.Equal(t, 1, report.UnassignedLegs)
	assert.Equal(t, []string{domain.CodeSales}, report.MissingAccounts)
	assert.Positive(t, env.recorder.unassigned["sale/credit"])
}
