package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/ledger"
)

func defaultAccounts() []*domain.Account {
	seeded := domain.SeedAccounts("t1")
	accounts := make([]*domain.Account, len(seeded))
	for i := range seeded {
		a := seeded[i]
		a.ID = "acc-" + a.Code
		accounts[i] = &a
	}
	return accounts
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func rowFor(t *testing.T, rows []domain.TrialBalanceRow, code string) domain.TrialBalanceRow {
	t.Helper()
	for _, r := range rows {
		if r.AccountCode == code {
			return r
		}
	}
	t.Fatalf("no trial balance row for %s", code)
	return domain.TrialBalanceRow{}
}

func TestDerivePostings_Rules(t *testing.T) {
	book := ledger.Book{
		TenantID: "t1",
		Accounts: defaultAccounts(),
		Invoices: []*domain.Invoice{
			{ID: "inv-1", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPaid, Date: day(1), Total: dec(1000)},
			{ID: "inv-2", Type: domain.InvoiceTypePurchase, Status: domain.InvoiceStatusPending, Date: day(2), Total: dec(400)},
		},
		Bonds: []*domain.Bond{
			{ID: "b-1", Type: domain.BondTypeReceipt, PaymentMethod: domain.PaymentMethodBank, Date: day(3), Amount: dec(250)},
			{ID: "b-2", Type: domain.BondTypePayment, PaymentMethod: domain.PaymentMethodCash, Date: day(4), Amount: dec(150)},
		},
		Expenses: []*domain.Expense{
			{ID: "e-1", Date: day(5), Amount: dec(75), Title: "Electricity"},
		},
	}

	postings := ledger.DerivePostings(book)
	require.Len(t, postings, 5)

	tests := []struct {
		kind   domain.PostingKind
		debit  string
		credit string
		amount int64
	}{
		{domain.PostingKindSale, domain.CodeReceivable, domain.CodeSales, 1000},
		{domain.PostingKindPurchase, domain.CodePurchases, domain.CodePayable, 400},
		{domain.PostingKindReceipt, domain.CodeBank, domain.CodeReceivable, 250},
		{domain.PostingKindPayment, domain.CodePayable, domain.CodeCash, 150},
		{domain.PostingKindExpense, domain.CodeGeneralExpenses, domain.CodeCash, 75},
	}

	for i, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			p := postings[i]
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.debit, p.DebitAccountCode)
			assert.Equal(t, tt.credit, p.CreditAccountCode)
			assert.True(t, dec(tt.amount).Equal(p.Amount), "amount %s", p.Amount)
		})
	}
}

func TestDerivePostings_CancelledInvoiceContributesNothing(t *testing.T) {
	book := ledger.Book{
		Accounts: defaultAccounts(),
		Invoices: []*domain.Invoice{
			{ID: "inv-1", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusCancelled, Date: day(1), Total: dec(999999)},
			{ID: "inv-2", Type: domain.InvoiceTypePurchase, Status: domain.InvoiceStatusCancelled, Date: day(1), Total: dec(5)},
		},
	}

	assert.Empty(t, ledger.DerivePostings(book))
}

func TestDerivePostings_SkipsNilSourceRecords(t *testing.T) {
	book := ledger.Book{
		Accounts: append(defaultAccounts(), nil),
		Invoices: []*domain.Invoice{nil},
		Bonds:    []*domain.Bond{nil},
		Expenses: []*domain.Expense{
			nil,
			{ID: "exp-1", Date: day(4), Amount: dec(30), Title: "Postage"},
			nil,
		},
	}

	var postings []domain.Posting
	require.NotPanics(t, func() { postings = ledger.DerivePostings(book) })
	require.Len(t, postings, 1)
	assert.Equal(t, "exp-1", postings[0].SourceID)
	assert.Equal(t, domain.PostingKindExpense, postings[0].Kind)
}

func TestDerivePostings_CreditAndPendingInvoicesPost(t *testing.T) {
	book := ledger.Book{
		Accounts: defaultAccounts(),
		Invoices: []*domain.Invoice{
			{ID: "inv-1", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusCredit, Date: day(1), Total: dec(10)},
			{ID: "inv-2", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPending, Date: day(1), Total: dec(20)},
		},
	}

	assert.Len(t, ledger.DerivePostings(book), 2)
}

func TestDerivePostings_OpeningBalanceSides(t *testing.T) {
	accounts := defaultAccounts()
	accounts = append(accounts,
		&domain.Account{ID: "acc-1300", Code: "1300", Name: "Prepaid", Type: domain.AccountTypeAsset, OpeningBalance: dec(500)},
		&domain.Account{ID: "acc-4100", Code: "4100", Name: "Other Revenue", Type: domain.AccountTypeRevenue, OpeningBalance: dec(500)},
	)

	postings := ledger.DerivePostings(ledger.Book{Accounts: accounts})
	require.Len(t, postings, 2)

	asset := ledger.AccountLedger("1300", postings)
	require.Len(t, asset, 1)
	assert.True(t, dec(500).Equal(asset[0].Debit))
	assert.True(t, decimal.Zero.Equal(asset[0].Credit))
	assert.True(t, dec(500).Equal(asset[0].Balance))

	revenue := ledger.AccountLedger("4100", postings)
	require.Len(t, revenue, 1)
	assert.True(t, decimal.Zero.Equal(revenue[0].Debit))
	assert.True(t, dec(500).Equal(revenue[0].Credit))
	assert.True(t, dec(-500).Equal(revenue[0].Balance))

	assert.True(t, ledger.OpeningDifference(postings).IsZero())
}

func TestDerivePostings_OpeningsSortFirst(t *testing.T) {
	accounts := defaultAccounts()
	for _, a := range accounts {
		if a.Code == domain.CodeCash {
			a.OpeningBalance = dec(50)
		}
	}

	postings := ledger.DerivePostings(ledger.Book{
		Accounts: accounts,
		Expenses: []*domain.Expense{{ID: "e-1", Date: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), Amount: dec(1)}},
	})

	require.Len(t, postings, 2)
	assert.Equal(t, domain.PostingKindOpening, postings[0].Kind)
	assert.Equal(t, domain.OpeningDate, postings[0].Date)
}

func TestDerivePostings_NonPositiveOpeningIgnored(t *testing.T) {
	accounts := []*domain.Account{
		{ID: "a", Code: "1300", Type: domain.AccountTypeAsset, OpeningBalance: dec(0)},
		{ID: "b", Code: "1400", Type: domain.AccountTypeAsset, OpeningBalance: dec(-10)},
	}

	assert.Empty(t, ledger.DerivePostings(ledger.Book{Accounts: accounts}))
}

func TestAccountLedger_RunningBalance(t *testing.T) {
	postings := ledger.DerivePostings(ledger.Book{
		Accounts: defaultAccounts(),
		Bonds: []*domain.Bond{
			{ID: "b-1", Type: domain.BondTypeReceipt, PaymentMethod: domain.PaymentMethodCash, Date: day(1), Amount: dec(1000)},
		},
		Expenses: []*domain.Expense{
			{ID: "e-1", Date: day(2), Amount: dec(300), Title: "Rent"},
		},
	})

	lines := ledger.AccountLedger(domain.CodeCash, postings)
	require.Len(t, lines, 2)
	assert.True(t, dec(1000).Equal(lines[0].Balance))
	assert.True(t, dec(700).Equal(lines[1].Balance))
	assert.True(t, dec(700).Equal(ledger.ClosingBalance(lines)))
}

func TestAccountLedger_SortsByDateWithSourceTieBreak(t *testing.T) {
	postings := ledger.DerivePostings(ledger.Book{
		Accounts: defaultAccounts(),
		Expenses: []*domain.Expense{
			{ID: "late", Date: day(9), Amount: dec(1)},
			{ID: "first", Date: day(2), Amount: dec(2)},
			{ID: "second", Date: day(2), Amount: dec(3)},
		},
	})

	lines := ledger.AccountLedger(domain.CodeGeneralExpenses, postings)
	require.Len(t, lines, 3)
	assert.True(t, dec(2).Equal(lines[0].Debit))
	assert.True(t, dec(3).Equal(lines[1].Debit))
	assert.True(t, dec(1).Equal(lines[2].Debit))
	assert.True(t, dec(6).Equal(lines[2].Balance))
}

func TestAccountLedger_EmptyForUntouchedAccount(t *testing.T) {
	lines := ledger.AccountLedger(domain.CodeInventory, nil)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
	assert.True(t, ledger.ClosingBalance(lines).IsZero())
}

func TestDerivePostings_Idempotent(t *testing.T) {
	book := ledger.Book{
		Accounts: defaultAccounts(),
		Invoices: []*domain.Invoice{
			{ID: "inv-1", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPaid, Date: day(3), Total: dec(10)},
		},
		Bonds: []*domain.Bond{
			{ID: "b-1", Type: domain.BondTypePayment, PaymentMethod: domain.PaymentMethodBank, Date: day(3), Amount: dec(4)},
		},
		Expenses: []*domain.Expense{
			{ID: "e-1", Date: day(1), Amount: dec(7)},
		},
	}

	first := ledger.DerivePostings(book)
	second := ledger.DerivePostings(book)
	assert.Equal(t, first, second)
}

func TestDerivePostings_IDStableUntilFieldsChange(t *testing.T) {
	inv := &domain.Invoice{ID: "inv-1", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPending, Date: day(3), Total: dec(10), ContactName: "Ada"}
	book := ledger.Book{Accounts: defaultAccounts(), Invoices: []*domain.Invoice{inv}}

	before := ledger.DerivePostings(book)[0].ID

	inv.ContactName = "Grace"
	assert.Equal(t, before, ledger.DerivePostings(book)[0].ID, "contact name is not read by the rule")

	inv.Total = dec(11)
	assert.NotEqual(t, before, ledger.DerivePostings(book)[0].ID)
}

func TestDerivePostings_MissingWellKnownAccountLeavesLegBlank(t *testing.T) {
	var accounts []*domain.Account
	for _, a := range defaultAccounts() {
		if a.Code != domain.CodeSales {
			accounts = append(accounts, a)
		}
	}

	postings := ledger.DerivePostings(ledger.Book{
		Accounts: accounts,
		Invoices: []*domain.Invoice{
			{ID: "inv-1", Type: domain.InvoiceTypeSale, Status: domain.InvoiceStatusPaid, Date: day(1), Total: dec(100)},
		},
	})

	require.Len(t, postings, 1)
	assert.Equal(t, domain.CodeReceivable, postings[0].DebitAccountCode)
	assert.Empty(t, postings[0].CreditAccountCode)

	legs := ledger.UnassignedLegs(postings)
	require.Len(t, legs, 1)
	assert.Equal(t, ledger.SideCredit, legs[0].Side)
	assert.Equal(t, domain.PostingKindSale, legs[0].Kind)

	assert.Empty(t, ledger.AccountLedger("", postings))
}

func TestDerivePostings_NegativeAmountsFoldAsGiven(t *testing.T) {
	postings := ledger.DerivePostings(ledger.Book{
		Accounts: defaultAccounts(),
		Expenses: []*domain.Expense{{ID: "e-1", Date: day(1), Amount: dec(-40)}},
	})

	lines := ledger.AccountLedger(domain.CodeCash, postings)
	require.Len(t, lines, 1)
	assert.True(t, dec(40).Equal(lines[0].Balance))
}
