package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/report"
	"github.com/iho/storebooks/internal/usecase"
)

func TestReportUseCase_Documents(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()
	env.provision(t, "acme")
	recordScenario(t, env, "acme")

	chart, err := env.reports.ChartOfAccounts(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, chart, 9)
	assert.Equal(t, domain.CodeCash, chart[0].Code)

	fa, err := env.reports.FinalAccounts(ctx, "acme", report.FinalAccountsOptions{NonZeroOnly: true})
	require.NoError(t, err)
	assert.Len(t, fa.Rows, 6)
	assert.True(t, fa.Balanced)
	assert.True(t, dec(500).Equal(fa.IncomeStatement.NetIncome))

	st, err := env.reports.AccountStatement(ctx, "acme", domain.CodePayable)
	require.NoError(t, err)
	assert.True(t, dec(-400).Equal(st.ClosingBalance))
	assert.True(t, dec(400).Equal(st.TotalCredit))

	_, err = env.reports.AccountStatement(ctx, "acme", "0000")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	bs, err := env.reports.BalanceSheet(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, bs.Balanced)
	assert.True(t, dec(900).Equal(bs.Assets.Total))
}

func TestReportUseCase_CacheInvalidatesOnSourceChange(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{Enabled: true})
	ctx := context.Background()
	env.provision(t, "acme")
	recordScenario(t, env, "acme")

	first, err := env.reports.FinalAccounts(ctx, "acme", report.FinalAccountsOptions{})
	require.NoError(t, err)
	second, err := env.reports.FinalAccounts(ctx, "acme", report.FinalAccountsOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, env.recorder.cacheMiss)
	assert.Equal(t, 1, env.recorder.cacheHits)
	assert.True(t, first.TotalDebit.Equal(second.TotalDebit))
	assert.Len(t, env.cache.data, 1)

	_, err = env.expenses.CreateExpense(ctx, usecase.ExpenseInput{TenantID: "acme", Date: date(4), Amount: dec(50), Title: "Postage"})
	require.NoError(t, err)

	third, err := env.reports.FinalAccounts(ctx, "acme", report.FinalAccountsOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, env.recorder.cacheMiss)
	assert.True(t, dec(2550).Equal(third.TotalDebit), "stale report served: %s", third.TotalDebit)
}

func TestReportUseCase_CacheDisabledByDefault(t *testing.T) {
	env := newTestEnv(t, usecase.ReportCacheConfig{})
	ctx := context.Background()
	env.provision(t, "acme")

	_, err := env.reports.BalanceSheet(ctx, "acme")
	require.NoError(t, err)
	assert.Empty(t, env.cache.data)
	assert.Zero(t, env.recorder.cacheHits+env.recorder.cacheMiss)
}
