package report

import (
	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
)

// BalanceSheetLine is one account shown with its natural sign: debit
// balances positive for assets, credit balances positive for liabilities and
// equity.
type BalanceSheetLine struct {
	Code    string
	Name    string
	Balance decimal.Decimal
}

// BalanceSheetSection groups the accounts of one class.
type BalanceSheetSection struct {
	Label string
	Lines []BalanceSheetLine
	Total decimal.Decimal
}

// BalanceSheet reports the financial position implied by a trial balance.
type BalanceSheet struct {
	Assets                    BalanceSheetSection
	Liabilities               BalanceSheetSection
	Equity                    BalanceSheetSection
	RetainedEarnings          decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
	Balanced                  bool
}

// BuildBalanceSheet splits trial balance rows into sections. Net income for
// the period appears as retained earnings under equity.
func BuildBalanceSheet(rows []domain.TrialBalanceRow, income domain.IncomeStatement) BalanceSheet {
	assets := BalanceSheetSection{Label: "Assets", Total: decimal.Zero}
	liabilities := BalanceSheetSection{Label: "Liabilities", Total: decimal.Zero}
	equity := BalanceSheetSection{Label: "Equity", Total: decimal.Zero}

	for _, r := range rows {
		line := BalanceSheetLine{Code: r.AccountCode, Name: r.AccountName}
		switch r.AccountType {
		case domain.AccountTypeAsset:
			line.Balance = r.NetBalance
			assets.Lines = append(assets.Lines, line)
			assets.Total = assets.Total.Add(line.Balance)
		case domain.AccountTypeLiability:
			line.Balance = r.NetBalance.Neg()
			liabilities.Lines = append(liabilities.Lines, line)
			liabilities.Total = liabilities.Total.Add(line.Balance)
		case domain.AccountTypeEquity:
			line.Balance = r.NetBalance.Neg()
			equity.Lines = append(equity.Lines, line)
			equity.Total = equity.Total.Add(line.Balance)
		}
	}

	equity.Total = equity.Total.Add(income.NetIncome)
	total := liabilities.Total.Add(equity.Total)

	return BalanceSheet{
		Assets:                    assets,
		Liabilities:               liabilities,
		Equity:                    equity,
		RetainedEarnings:          income.NetIncome,
		TotalLiabilitiesAndEquity: total,
		Balanced:                  assets.Total.Equal(total),
	}
}
