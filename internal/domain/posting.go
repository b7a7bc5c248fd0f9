package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingKind names the source rule a posting was derived from.
type PostingKind string

const (
	PostingKindOpening  PostingKind = "opening"
	PostingKindSale     PostingKind = "sale"
	PostingKindPurchase PostingKind = "purchase"
	PostingKindReceipt  PostingKind = "receipt"
	PostingKindPayment  PostingKind = "payment"
	PostingKindExpense  PostingKind = "expense"
)

// OpeningDate is the synthetic date of opening-balance postings. It sorts
// before any real transaction date.
var OpeningDate = time.Time{}

// Posting is one derived double-entry record. A blank account code marks an
// unassigned leg.
type Posting struct {
	ID                string
	SourceID          string
	Date              time.Time
	Kind              PostingKind
	Ref               string
	Description       string
	DebitAccountCode  string
	CreditAccountCode string
	Amount            decimal.Decimal
}

// LedgerLine is a posting seen from one account, with the running balance.
type LedgerLine struct {
	PostingID   string
	Date        time.Time
	Kind        PostingKind
	Ref         string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
}

// TrialBalanceRow aggregates every leg touching one account.
type TrialBalanceRow struct {
	AccountCode string
	AccountName string
	AccountType AccountType
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	NetBalance  decimal.Decimal
}

// HasActivity reports whether any leg touched the account.
func (r TrialBalanceRow) HasActivity() bool {
	return !r.TotalDebit.IsZero() || !r.TotalCredit.IsZero()
}

// IncomeStatement is revenue less expense over the whole book.
type IncomeStatement struct {
	Revenue   decimal.Decimal
	Expense   decimal.Decimal
	NetIncome decimal.Decimal
}
