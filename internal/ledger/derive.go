// Package ledger derives postings, per-account ledgers and the trial balance
// from a tenant's source records. Nothing here is persisted: every result is
// a pure function of the Book it is given.
package ledger

import (
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
)

// Book is the current snapshot of one tenant's sources.
type Book struct {
	TenantID string
	Accounts []*domain.Account
	Invoices []*domain.Invoice
	Bonds    []*domain.Bond
	Expenses []*domain.Expense
}

// DerivePostings applies the derivation rules to every source record and
// returns the postings ordered by date. Ties keep source order: openings
// (by account code), then invoices, bonds and expenses as given.
//
// Legs addressed to a well-known code absent from the book's chart are left
// blank rather than failing; see UnassignedLegs.
func DerivePostings(book Book) []domain.Posting {
	wk := resolveLenient(book.Accounts)

	postings := make([]domain.Posting, 0, len(book.Accounts)+len(book.Invoices)+len(book.Bonds)+len(book.Expenses))
	postings = appendOpenings(postings, book.Accounts)

	for _, inv := range book.Invoices {
		if p, ok := invoicePosting(inv, wk); ok {
			postings = append(postings, p)
		}
	}
	for _, b := range book.Bonds {
		if p, ok := bondPosting(b, wk); ok {
			postings = append(postings, p)
		}
	}
	for _, e := range book.Expenses {
		if p, ok := expensePosting(e, wk); ok {
			postings = append(postings, p)
		}
	}

	slices.SortStableFunc(postings, func(a, b domain.Posting) int {
		return a.Date.Compare(b.Date)
	})

	return postings
}

func appendOpenings(postings []domain.Posting, accounts []*domain.Account) []domain.Posting {
	sorted := make([]*domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a != nil && a.OpeningBalance.IsPositive() {
			sorted = append(sorted, a)
		}
	}
	slices.SortStableFunc(sorted, func(a, b *domain.Account) int {
		switch {
		case a.Code < b.Code:
			return -1
		case a.Code > b.Code:
			return 1
		}
		return 0
	})

	for _, a := range sorted {
		p := domain.Posting{
			ID:          postingID(domain.PostingKindOpening, a.ID, a.Code, string(a.Type), a.OpeningBalance.String()),
			SourceID:    a.ID,
			Date:        domain.OpeningDate,
			Kind:        domain.PostingKindOpening,
			Ref:         "OB-" + a.Code,
			Description: "Opening balance: " + a.Name,
			Amount:      a.OpeningBalance,
		}
		if a.Type.DebitNormal() {
			p.DebitAccountCode = a.Code
		} else {
			p.CreditAccountCode = a.Code
		}
		postings = append(postings, p)
	}

	return postings
}

func invoicePosting(inv *domain.Invoice, wk wellKnownSet) (domain.Posting, bool) {
	if inv == nil || inv.Status == domain.InvoiceStatusCancelled {
		return domain.Posting{}, false
	}

	p := domain.Posting{
		SourceID: inv.ID,
		Date:     inv.Date,
		Ref:      invoiceRef(inv),
		Amount:   inv.Total,
	}

	switch inv.Type {
	case domain.InvoiceTypeSale:
		p.Kind = domain.PostingKindSale
		p.Description = "Sale invoice: " + inv.ContactName
		p.DebitAccountCode = wk.code(domain.CodeReceivable)
		p.CreditAccountCode = wk.code(domain.CodeSales)
	case domain.InvoiceTypePurchase:
		p.Kind = domain.PostingKindPurchase
		p.Description = "Purchase invoice: " + inv.ContactName
		p.DebitAccountCode = wk.code(domain.CodePurchases)
		p.CreditAccountCode = wk.code(domain.CodePayable)
	default:
		return domain.Posting{}, false
	}

	p.ID = postingID(p.Kind, inv.ID, inv.Date.String(), string(inv.Status), inv.Total.String())
	return p, true
}

func bondPosting(b *domain.Bond, wk wellKnownSet) (domain.Posting, bool) {
	if b == nil {
		return domain.Posting{}, false
	}

	settlement := wk.code(domain.CodeCash)
	if b.PaymentMethod == domain.PaymentMethodBank {
		settlement = wk.code(domain.CodeBank)
	}

	p := domain.Posting{
		SourceID: b.ID,
		Date:     b.Date,
		Ref:      "BOND-" + b.ID,
		Amount:   b.Amount,
	}

	switch b.Type {
	case domain.BondTypeReceipt:
		p.Kind = domain.PostingKindReceipt
		p.Description = "Receipt from " + b.EntityName
		p.DebitAccountCode = settlement
		p.CreditAccountCode = wk.code(domain.CodeReceivable)
	case domain.BondTypePayment:
		p.Kind = domain.PostingKindPayment
		p.Description = "Payment to " + b.EntityName
		p.DebitAccountCode = wk.code(domain.CodePayable)
		p.CreditAccountCode = settlement
	default:
		return domain.Posting{}, false
	}

	p.ID = postingID(p.Kind, b.ID, b.Date.String(), string(b.PaymentMethod), b.Amount.String())
	return p, true
}

func expensePosting(e *domain.Expense, wk wellKnownSet) (domain.Posting, bool) {
	if e == nil {
		return domain.Posting{}, false
	}

	return domain.Posting{
		ID:                postingID(domain.PostingKindExpense, e.ID, e.Date.String(), e.Amount.String()),
		SourceID:          e.ID,
		Date:              e.Date,
		Kind:              domain.PostingKindExpense,
		Ref:               "EXP-" + e.ID,
		Description:       e.Title,
		DebitAccountCode:  wk.code(domain.CodeGeneralExpenses),
		CreditAccountCode: wk.code(domain.CodeCash),
		Amount:            e.Amount,
	}, true
}

func invoiceRef(inv *domain.Invoice) string {
	if inv.Number != "" {
		return inv.Number
	}
	return "INV-" + inv.ID
}

// postingID is stable while the fields a posting reads stay unchanged.
func postingID(kind domain.PostingKind, sourceID string, fields ...string) string {
	h := xxhash.New()
	for _, f := range fields {
		_, _ = h.WriteString(f)
		_, _ = h.Write([]byte{0})
	}
	return string(kind) + "-" + sourceID + "-" + strconv.FormatUint(h.Sum64()&0xffffffff, 16)
}

// AccountLedger returns the postings touching code with a running balance.
// Debits increase and credits decrease the balance for every account type.
func AccountLedger(code string, postings []domain.Posting) []domain.LedgerLine {
	lines := make([]domain.LedgerLine, 0)
	if code == "" {
		return lines
	}

	type indexed struct {
		p   domain.Posting
		pos int
	}
	touching := make([]indexed, 0)
	for i, p := range postings {
		if p.DebitAccountCode == code || p.CreditAccountCode == code {
			touching = append(touching, indexed{p: p, pos: i})
		}
	}
	slices.SortStableFunc(touching, func(a, b indexed) int {
		if c := a.p.Date.Compare(b.p.Date); c != 0 {
			return c
		}
		return a.pos - b.pos
	})

	balance := decimal.Zero
	for _, t := range touching {
		debit, credit := decimal.Zero, decimal.Zero
		if t.p.DebitAccountCode == code {
			debit = t.p.Amount
		}
		if t.p.CreditAccountCode == code {
			credit = t.p.Amount
		}
		balance = balance.Add(debit).Sub(credit)

		lines = append(lines, domain.LedgerLine{
			PostingID:   t.p.ID,
			Date:        t.p.Date,
			Kind:        t.p.Kind,
			Ref:         t.p.Ref,
			Description: t.p.Description,
			Debit:       debit,
			Credit:      credit,
			Balance:     balance,
		})
	}

	return lines
}

// ClosingBalance is the balance of the last line, or zero.
func ClosingBalance(lines []domain.LedgerLine) decimal.Decimal {
	if len(lines) == 0 {
		return decimal.Zero
	}
	return lines[len(lines)-1].Balance
}
