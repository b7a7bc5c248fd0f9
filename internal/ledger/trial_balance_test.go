package ledger_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/ledger"
)

func TestTrialBalance_EndToEndScenario(t *testing.T) {
	accounts := defaultAccounts()
	postings := ledger.DerivePostings(ledger.Book{
		Accounts: accounts,
		Invoices: []*domain.Invoice{
			{ID: "s", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPaid, Date: day(1), Total: dec(1000)},
			{ID: "p", Type: domain.InvoiceTypePurchase, Status: domain.InvoiceStatusPaid, Date: day(1), Total: dec(400)},
		},
		Bonds: []*domain.Bond{
			{ID: "r", Type: domain.BondTypeReceipt, PaymentMethod: domain.PaymentMethodCash, Date: day(2), Amount: dec(1000)},
		},
		Expenses: []*domain.Expense{
			{ID: "x", Date: day(3), Amount: dec(100)},
		},
	})

	rows := ledger.TrialBalance(accounts, postings)
	require.Len(t, rows, 9)

	tests := []struct {
		code          string
		debit, credit int64
		net           int64
	}{
		{domain.CodeCash, 1000, 100, 900},
		{domain.CodeReceivable, 1000, 1000, 0},
		{domain.CodeSales, 0, 1000, -1000},
		{domain.CodePurchases, 400, 0, 400},
		{domain.CodePayable, 0, 400, -400},
		{domain.CodeGeneralExpenses, 100, 0, 100},
		{domain.CodeBank, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			row := rowFor(t, rows, tt.code)
			assert.True(t, dec(tt.debit).Equal(row.TotalDebit), "debit %s", row.TotalDebit)
			assert.True(t, dec(tt.credit).Equal(row.TotalCredit), "credit %s", row.TotalCredit)
			assert.True(t, dec(tt.net).Equal(row.NetBalance), "net %s", row.NetBalance)
		})
	}

	debit, credit := ledger.Totals(rows)
	assert.True(t, dec(2500).Equal(debit))
	assert.True(t, dec(2500).Equal(credit))
	assert.True(t, ledger.Balanced(rows))
}

func TestTrialBalance_IncludesIdleAccountsSortedByCode(t *testing.T) {
	accounts := defaultAccounts()
	// reverse to prove ordering does not depend on input order
	for i, j := 0, len(accounts)-1; i < j; i, j = i+1, j-1 {
		accounts[i], accounts[j] = accounts[j], accounts[i]
	}

	rows := ledger.TrialBalance(accounts, nil)
	require.Len(t, rows, len(domain.WellKnownCodes))
	for i, code := range domain.WellKnownCodes {
		assert.Equal(t, code, rows[i].AccountCode)
		assert.False(t, rows[i].HasActivity())
	}
}

func TestTrialBalance_GlobalBalanceInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	invoiceTypes := []domain.InvoiceType{domain.InvoiceTypeSale, domain.InvoiceTypePurchase}
	statuses := []domain.InvoiceStatus{domain.InvoiceStatusPaid, domain.InvoiceStatusPending, domain.InvoiceStatusCancelled, domain.InvoiceStatusCredit}
	bondTypes := []domain.BondType{domain.BondTypeReceipt, domain.BondTypePayment}
	methods := []domain.PaymentMethod{domain.PaymentMethodCash, domain.PaymentMethodBank}

	for round := 0; round < 50; round++ {
		book := ledger.Book{Accounts: defaultAccounts()}
		for i := 0; i < rng.Intn(20); i++ {
			book.Invoices = append(book.Invoices, &domain.Invoice{
				ID:     "inv",
				Type:   invoiceTypes[rng.Intn(len(invoiceTypes))],
				Status: statuses[rng.Intn(len(statuses))],
				Date:   day(1 + rng.Intn(28)),
				Total:  dec(rng.Int63n(10000) - 100),
			})
		}
		for i := 0; i < rng.Intn(20); i++ {
			book.Bonds = append(book.Bonds, &domain.Bond{
				ID:            "bond",
				Type:          bondTypes[rng.Intn(len(bondTypes))],
				PaymentMethod: methods[rng.Intn(len(methods))],
				Date:          day(1 + rng.Intn(28)),
				Amount:        dec(rng.Int63n(10000)),
			})
		}
		for i := 0; i < rng.Intn(20); i++ {
			book.Expenses = append(book.Expenses, &domain.Expense{
				ID:     "exp",
				Date:   day(1 + rng.Intn(28)),
				Amount: dec(rng.Int63n(500)),
			})
		}

		rows := ledger.TrialBalance(book.Accounts, ledger.DerivePostings(book))
		debit, credit := ledger.Totals(rows)
		require.True(t, debit.Equal(credit), "round %d: debit %s credit %s", round, debit, credit)
	}
}

func TestTrialBalance_UnassignedLegsAreExcluded(t *testing.T) {
	var accounts []*domain.Account
	for _, a := range defaultAccounts() {
		if a.Code != domain.CodeGeneralExpenses {
			accounts = append(accounts, a)
		}
	}

	postings := ledger.DerivePostings(ledger.Book{
		Accounts: accounts,
		Expenses: []*domain.Expense{{ID: "e", Date: day(1), Amount: dec(10)}},
	})
	rows := ledger.TrialBalance(accounts, postings)

	assert.True(t, dec(10).Equal(rowFor(t, rows, domain.CodeCash).TotalCredit))
	assert.False(t, ledger.Balanced(rows))
}

func TestResolveWellKnown(t *testing.T) {
	wk, err := ledger.ResolveWellKnown(defaultAccounts())
	require.NoError(t, err)
	assert.Equal(t, domain.CodeCash, wk.Cash.Code)
	assert.Equal(t, domain.CodeGeneralExpenses, wk.GeneralExpenses.Code)

	_, err = ledger.ResolveWellKnown([]*domain.Account{{Code: domain.CodeCash}})
	require.ErrorIs(t, err, domain.ErrMissingWellKnownAccount)

	var missing *domain.MissingAccountsError
	require.ErrorAs(t, err, &missing)
	assert.Len(t, missing.Codes, len(domain.WellKnownCodes)-1)
	assert.NotContains(t, missing.Codes, domain.CodeCash)
}
