package domain

import "github.com/shopspring/decimal"

// Well-known account codes the derivation rules post to.
const (
	CodeCash            = "1001"
	CodeBank            = "1002"
	CodeReceivable      = "1100"
	CodeInventory       = "1200"
	CodePayable         = "2000"
	CodeCapital         = "3000"
	CodeSales           = "4000"
	CodePurchases       = "5000"
	CodeGeneralExpenses = "5100"
)

// WellKnownCodes lists the addressing constants in code order.
var WellKnownCodes = []string{
	CodeCash,
	CodeBank,
	CodeReceivable,
	CodeInventory,
	CodePayable,
	CodeCapital,
	CodeSales,
	CodePurchases,
	CodeGeneralExpenses,
}

// DefaultChart returns the nine system accounts every tenant is provisioned with.
func DefaultChart() []Account {
	return []Account{
		{Code: CodeCash, Name: "Cash", Type: AccountTypeAsset, Description: "Cash on hand"},
		{Code: CodeBank, Name: "Bank", Type: AccountTypeAsset, Description: "Bank accounts"},
		{Code: CodeReceivable, Name: "Accounts Receivable", Type: AccountTypeAsset, Description: "Amounts owed by customers"},
		{Code: CodeInventory, Name: "Inventory", Type: AccountTypeAsset, Description: "Goods held for sale"},
		{Code: CodePayable, Name: "Accounts Payable", Type: AccountTypeLiability, Description: "Amounts owed to suppliers"},
		{Code: CodeCapital, Name: "Capital", Type: AccountTypeEquity, Description: "Owner's capital"},
		{Code: CodeSales, Name: "Sales Revenue", Type: AccountTypeRevenue},
		{Code: CodePurchases, Name: "Purchases", Type: AccountTypeExpense},
		{Code: CodeGeneralExpenses, Name: "General Expenses", Type: AccountTypeExpense},
	}
}

// SeedAccounts returns the default chart ready for insertion into a tenant's book.
func SeedAccounts(tenantID string) []Account {
	chart := DefaultChart()
	for i := range chart {
		chart[i].TenantID = tenantID
		chart[i].OpeningBalance = decimal.Zero
		chart[i].SystemAccount = true
	}
	return chart
}
