package ledger

import (
	"github.com/iho/storebooks/internal/domain"
)

// WellKnown maps each addressing constant to the tenant's account.
type WellKnown struct {
	Cash            *domain.Account
	Bank            *domain.Account
	Receivable      *domain.Account
	Inventory       *domain.Account
	Payable         *domain.Account
	Capital         *domain.Account
	Sales           *domain.Account
	Purchases       *domain.Account
	GeneralExpenses *domain.Account
}

// ResolveWellKnown looks up the nine well-known accounts in a chart. It
// returns a *domain.MissingAccountsError naming every absent code.
func ResolveWellKnown(accounts []*domain.Account) (WellKnown, error) {
	byCode := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		if a != nil {
			byCode[a.Code] = a
		}
	}

	var missing []string
	lookup := func(code string) *domain.Account {
		a, ok := byCode[code]
		if !ok {
			missing = append(missing, code)
		}
		return a
	}

	wk := WellKnown{
		Cash:            lookup(domain.CodeCash),
		Bank:            lookup(domain.CodeBank),
		Receivable:      lookup(domain.CodeReceivable),
		Inventory:       lookup(domain.CodeInventory),
		Payable:         lookup(domain.CodePayable),
		Capital:         lookup(domain.CodeCapital),
		Sales:           lookup(domain.CodeSales),
		Purchases:       lookup(domain.CodePurchases),
		GeneralExpenses: lookup(domain.CodeGeneralExpenses),
	}

	if len(missing) > 0 {
		return wk, &domain.MissingAccountsError{Codes: missing}
	}
	return wk, nil
}

// wellKnownSet is the set of addressing constants present in a chart.
type wellKnownSet map[string]struct{}

func resolveLenient(accounts []*domain.Account) wellKnownSet {
	set := make(wellKnownSet, len(domain.WellKnownCodes))
	for _, a := range accounts {
		if a == nil {
			continue
		}
		for _, code := range domain.WellKnownCodes {
			if a.Code == code {
				set[code] = struct{}{}
			}
		}
	}
	return set
}

// code returns the code when the chart has it, blank otherwise.
func (s wellKnownSet) code(code string) string {
	if _, ok := s[code]; ok {
		return code
	}
	return ""
}

// Side identifies one leg of a posting.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// UnassignedLeg is a rule leg whose target account is missing from the chart.
type UnassignedLeg struct {
	PostingID string
	Kind      domain.PostingKind
	Side      Side
}

// UnassignedLegs lists blank legs of two-sided postings. The open side of an
// opening-balance posting is not reported: openings are single-sided.
func UnassignedLegs(postings []domain.Posting) []UnassignedLeg {
	var legs []UnassignedLeg
	for _, p := range postings {
		if p.Kind == domain.PostingKindOpening {
			continue
		}
		if p.DebitAccountCode == "" {
			legs = append(legs, UnassignedLeg{PostingID: p.ID, Kind: p.Kind, Side: SideDebit})
		}
		if p.CreditAccountCode == "" {
			legs = append(legs, UnassignedLeg{PostingID: p.ID, Kind: p.Kind, Side: SideCredit})
		}
	}
	return legs
}
