// Package report builds the read-only documents shown to users: chart of
// accounts, final accounts, account statements and the balance sheet. Every
// builder is a pure function over ledger output.
package report

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/ledger"
)

// ChartOfAccounts returns a copy of the accounts ordered by code.
func ChartOfAccounts(accounts []*domain.Account) []domain.Account {
	chart := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a != nil {
			chart = append(chart, *a)
		}
	}
	slices.SortStableFunc(chart, func(a, b domain.Account) int {
		return strings.Compare(a.Code, b.Code)
	})
	return chart
}

// IncomeStatementFrom sums revenue and expense rows of a trial balance.
func IncomeStatementFrom(rows []domain.TrialBalanceRow) domain.IncomeStatement {
	revenue, expense := decimal.Zero, decimal.Zero
	for _, r := range rows {
		switch r.AccountType {
		case domain.AccountTypeRevenue:
			revenue = revenue.Add(r.NetBalance.Abs())
		case domain.AccountTypeExpense:
			expense = expense.Add(r.NetBalance.Abs())
		}
	}
	return domain.IncomeStatement{
		Revenue:   revenue,
		Expense:   expense,
		NetIncome: revenue.Sub(expense),
	}
}

// FinalAccountsOptions narrows what FinalAccounts reports.
type FinalAccountsOptions struct {
	// NonZeroOnly drops rows for accounts with no activity.
	NonZeroOnly bool
	// AsOf ignores postings dated after it. Zero means no cut-off.
	AsOf time.Time
}

// FinalAccounts is the trial balance together with its income statement.
type FinalAccounts struct {
	Rows            []domain.TrialBalanceRow
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
	Balanced        bool
	IncomeStatement domain.IncomeStatement
}

// BuildFinalAccounts computes the final accounts of a book. Totals and the
// income statement always cover every account; NonZeroOnly only affects the
// rows returned.
func BuildFinalAccounts(accounts []*domain.Account, postings []domain.Posting, opts FinalAccountsOptions) FinalAccounts {
	postings = postingsAsOf(postings, opts.AsOf)

	rows := ledger.TrialBalance(accounts, postings)
	debit, credit := ledger.Totals(rows)
	income := IncomeStatementFrom(rows)

	if opts.NonZeroOnly {
		rows = slices.DeleteFunc(rows, func(r domain.TrialBalanceRow) bool {
			return !r.HasActivity()
		})
	}

	return FinalAccounts{
		Rows:            rows,
		TotalDebit:      debit,
		TotalCredit:     credit,
		Balanced:        debit.Equal(credit),
		IncomeStatement: income,
	}
}

func postingsAsOf(postings []domain.Posting, asOf time.Time) []domain.Posting {
	if asOf.IsZero() {
		return postings
	}
	kept := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if !p.Date.After(asOf) {
			kept = append(kept, p)
		}
	}
	return kept
}

// Statement is one account's ledger with column totals.
type Statement struct {
	Account        domain.Account
	Lines          []domain.LedgerLine
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	ClosingBalance decimal.Decimal
}

// AccountStatement folds the postings touching account into a statement.
func AccountStatement(account domain.Account, postings []domain.Posting) Statement {
	lines := ledger.AccountLedger(account.Code, postings)

	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}

	return Statement{
		Account:        account,
		Lines:          lines,
		TotalDebit:     debit,
		TotalCredit:    credit,
		ClosingBalance: ledger.ClosingBalance(lines),
	}
}
