package ledger

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
)

// TrialBalance returns one row per account, including accounts with no
// activity, ordered by code. Unassigned legs are not attributed anywhere.
func TrialBalance(accounts []*domain.Account, postings []domain.Posting) []domain.TrialBalanceRow {
	type totals struct {
		debit, credit decimal.Decimal
	}
	byCode := make(map[string]*totals, len(accounts))
	for _, a := range accounts {
		if a != nil {
			byCode[a.Code] = &totals{debit: decimal.Zero, credit: decimal.Zero}
		}
	}

	for _, p := range postings {
		if t, ok := byCode[p.DebitAccountCode]; ok && p.DebitAccountCode != "" {
			t.debit = t.debit.Add(p.Amount)
		}
		if t, ok := byCode[p.CreditAccountCode]; ok && p.CreditAccountCode != "" {
			t.credit = t.credit.Add(p.Amount)
		}
	}

	rows := make([]domain.TrialBalanceRow, 0, len(accounts))
	for _, a := range accounts {
		if a == nil {
			continue
		}
		t := byCode[a.Code]
		rows = append(rows, domain.TrialBalanceRow{
			AccountCode: a.Code,
			AccountName: a.Name,
			AccountType: a.Type,
			TotalDebit:  t.debit,
			TotalCredit: t.credit,
			NetBalance:  t.debit.Sub(t.credit),
		})
	}

	slices.SortStableFunc(rows, func(a, b domain.TrialBalanceRow) int {
		return strings.Compare(a.AccountCode, b.AccountCode)
	})

	return rows
}

// Totals sums the debit and credit columns.
func Totals(rows []domain.TrialBalanceRow) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, r := range rows {
		debit = debit.Add(r.TotalDebit)
		credit = credit.Add(r.TotalCredit)
	}
	return debit, credit
}

// Balanced reports whether total debits equal total credits.
func Balanced(rows []domain.TrialBalanceRow) bool {
	debit, credit := Totals(rows)
	return debit.Equal(credit)
}

// OpeningDifference is debit-side openings less credit-side openings. A book
// whose opening balances are themselves balanced has a zero difference, and
// only such a book can satisfy Balanced.
func OpeningDifference(postings []domain.Posting) decimal.Decimal {
	diff := decimal.Zero
	for _, p := range postings {
		if p.Kind != domain.PostingKindOpening {
			continue
		}
		if p.DebitAccountCode != "" {
			diff = diff.Add(p.Amount)
		}
		if p.CreditAccountCode != "" {
			diff = diff.Sub(p.Amount)
		}
	}
	return diff
}
