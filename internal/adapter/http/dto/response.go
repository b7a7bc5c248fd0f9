package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/report"
	"github.com/iho/storebooks/internal/usecase"
)

// TenantResponse represents a tenant in API responses.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantFromDomain converts a domain tenant to response.
func TenantFromDomain(t *domain.Tenant) *TenantResponse {
	return &TenantResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Description    string          `json:"description,omitempty"`
	SystemAccount  bool            `json:"system_account"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Code:           a.Code,
		Name:           a.Name,
		Type:           string(a.Type),
		OpeningBalance: a.OpeningBalance,
		Description:    a.Description,
		SystemAccount:  a.SystemAccount,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ChartFromReport converts a chart of accounts report to responses.
func ChartFromReport(chart []domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(chart))
	for i := range chart {
		result[i] = AccountFromDomain(&chart[i])
	}
	return result
}

// ListResponse wraps one page of a collection.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number,omitempty"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Date        Date            `json:"date"`
	Total       decimal.Decimal `json:"total"`
	ContactName string          `json:"contact_name,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InvoiceFromDomain converts a domain invoice to response.
func InvoiceFromDomain(in *domain.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          in.ID,
		Number:      in.Number,
		Type:        string(in.Type),
		Status:      string(in.Status),
		Date:        Date(in.Date),
		Total:       in.Total,
		ContactName: in.ContactName,
		Currency:    in.Currency,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
}

// BondResponse represents a bond in API responses.
type BondResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Date          Date            `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	EntityName    string          `json:"entity_name,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BondFromDomain converts a domain bond to response.
func BondFromDomain(b *domain.Bond) *BondResponse {
	return &BondResponse{
		ID:            b.ID,
		Type:          string(b.Type),
		Date:          Date(b.Date),
		PaymentMethod: string(b.PaymentMethod),
		Amount:        b.Amount,
		EntityName:    b.EntityName,
		Currency:      b.Currency,
		Description:   b.Description,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	Date      Date            `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Title     string          `json:"title"`
	Category  string          `json:"category,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ExpenseFromDomain converts a domain expense to response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:        e.ID,
		Date:      Date(e.Date),
		Amount:    e.Amount,
		Title:     e.Title,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// FromDomainList converts a slice with the given converter.
func FromDomainList[D any, R any](items []D, convert func(D) R) []R {
	result := make([]R, len(items))
	for i, item := range items {
		result[i] = convert(item)
	}
	return result
}

// PostingResponse represents a derived posting. Blank account codes mark
// unassigned legs; openings have a null date.
type PostingResponse struct {
	ID                string          `json:"id"`
	SourceID          string          `json:"source_id"`
	Date              Date            `json:"date"`
	Kind              string          `json:"kind"`
	Ref               string          `json:"ref,omitempty"`
	Description       string          `json:"description,omitempty"`
	DebitAccountCode  string          `json:"debit_account_code"`
	CreditAccountCode string          `json:"credit_account_code"`
	Amount            decimal.Decimal `json:"amount"`
}

// PostingsFromDomain converts postings to responses.
func PostingsFromDomain(postings []domain.Posting) []PostingResponse {
	result := make([]PostingResponse, len(postings))
	for i, p := range postings {
		result[i] = PostingResponse{
			ID:                p.ID,
			SourceID:          p.SourceID,
			Date:              Date(p.Date),
			Kind:              string(p.Kind),
			Ref:               p.Ref,
			Description:       p.Description,
			DebitAccountCode:  p.DebitAccountCode,
			CreditAccountCode: p.CreditAccountCode,
			Amount:            p.Amount,
		}
	}
	return result
}

// LedgerLineResponse is one line of an account ledger.
type LedgerLineResponse struct {
	PostingID   string          `json:"posting_id"`
	Date        Date            `json:"date"`
	Kind        string          `json:"kind"`
	Ref         string          `json:"ref,omitempty"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerLinesFromDomain converts ledger lines to responses.
func LedgerLinesFromDomain(lines []domain.LedgerLine) []LedgerLineResponse {
	result := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		result[i] = LedgerLineResponse{
			PostingID:   l.PostingID,
			Date:        Date(l.Date),
			Kind:        string(l.Kind),
			Ref:         l.Ref,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Balance:     l.Balance,
		}
	}
	return result
}

// AccountLedgerResponse is the ledger of one account.
type AccountLedgerResponse struct {
	AccountCode    string               `json:"account_code"`
	Lines          []LedgerLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal      `json:"closing_balance"`
}

// StatementResponse is an account statement with column totals.
type StatementResponse struct {
	Account        *AccountResponse     `json:"account"`
	Lines          []LedgerLineResponse `json:"lines"`
	TotalDebit     decimal.Decimal      `json:"total_debit"`
	TotalCredit    decimal.Decimal      `json:"total_credit"`
	ClosingBalance decimal.Decimal      `json:"closing_balance"`
}

// StatementFromReport converts a statement to response.
func StatementFromReport(st report.Statement) *StatementResponse {
	return &StatementResponse{
		Account:        AccountFromDomain(&st.Account),
		Lines:          LedgerLinesFromDomain(st.Lines),
		TotalDebit:     st.TotalDebit,
		TotalCredit:    st.TotalCredit,
		ClosingBalance: st.ClosingBalance,
	}
}

// TrialBalanceRowResponse is one row of the trial balance.
type TrialBalanceRowResponse struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	NetBalance  decimal.Decimal `json:"net_balance"`
}

// TrialBalanceResponse is the trial balance with its column totals.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"total_debit"`
	TotalCredit decimal.Decimal           `json:"total_credit"`
	Balanced    bool                      `json:"balanced"`
}

// IncomeStatementResponse is revenue less expense.
type IncomeStatementResponse struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Expense   decimal.Decimal `json:"expense"`
	NetIncome decimal.Decimal `json:"net_income"`
}

// FinalAccountsResponse is the trial balance plus income statement.
type FinalAccountsResponse struct {
	TrialBalanceResponse
	IncomeStatement IncomeStatementResponse `json:"income_statement"`
}

// TrialBalanceFromReport converts the trial balance part of final accounts.
func TrialBalanceFromReport(fa report.FinalAccounts) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(fa.Rows))
	for i, r := range fa.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountCode: r.AccountCode,
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			TotalDebit:  r.TotalDebit,
			TotalCredit: r.TotalCredit,
			NetBalance:  r.NetBalance,
		}
	}
	return TrialBalanceResponse{
		Rows:        rows,
		TotalDebit:  fa.TotalDebit,
		TotalCredit: fa.TotalCredit,
		Balanced:    fa.Balanced,
	}
}

// FinalAccountsFromReport converts final accounts to response.
func FinalAccountsFromReport(fa report.FinalAccounts) *FinalAccountsResponse {
	return &FinalAccountsResponse{
		TrialBalanceResponse: TrialBalanceFromReport(fa),
		IncomeStatement: IncomeStatementResponse{
			Revenue:   fa.IncomeStatement.Revenue,
			Expense:   fa.IncomeStatement.Expense,
			NetIncome: fa.IncomeStatement.NetIncome,
		},
	}
}

// BalanceSheetLineResponse is one account in a balance sheet section.
type BalanceSheetLineResponse struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceSheetSectionResponse groups the accounts of one class.
type BalanceSheetSectionResponse struct {
	Label string                     `json:"label"`
	Lines []BalanceSheetLineResponse `json:"lines"`
	Total decimal.Decimal            `json:"total"`
}

// BalanceSheetResponse reports the financial position.
type BalanceSheetResponse struct {
	Assets                    BalanceSheetSectionResponse `json:"assets"`
	Liabilities               BalanceSheetSectionResponse `json:"liabilities"`
	Equity                    BalanceSheetSectionResponse `json:"equity"`
	RetainedEarnings          decimal.Decimal             `json:"retained_earnings"`
	TotalLiabilitiesAndEquity decimal.Decimal             `json:"total_liabilities_and_equity"`
	Balanced                  bool                        `json:"balanced"`
}

func sectionFromReport(s report.BalanceSheetSection) BalanceSheetSectionResponse {
	lines := make([]BalanceSheetLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = BalanceSheetLineResponse{Code: l.Code, Name: l.Name, Balance: l.Balance}
	}
	return BalanceSheetSectionResponse{Label: s.Label, Lines: lines, Total: s.Total}
}

// BalanceSheetFromReport converts a balance sheet to response.
func BalanceSheetFromReport(bs report.BalanceSheet) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		Assets:                    sectionFromReport(bs.Assets),
		Liabilities:               sectionFromReport(bs.Liabilities),
		Equity:                    sectionFromReport(bs.Equity),
		RetainedEarnings:          bs.RetainedEarnings,
		TotalLiabilitiesAndEquity: bs.TotalLiabilitiesAndEquity,
		Balanced:                  bs.Balanced,
	}
}

// ConsistencyResponse reports whether a tenant's book balances.
type ConsistencyResponse struct {
	Status            string          `json:"status"`
	Consistent        bool            `json:"consistent"`
	TotalDebit        decimal.Decimal `json:"total_debit"`
	TotalCredit       decimal.Decimal `json:"total_credit"`
	OpeningDifference decimal.Decimal `json:"opening_difference"`
	UnassignedLegs    int             `json:"unassigned_legs"`
	MissingAccounts   []string        `json:"missing_accounts,omitempty"`
}

// ConsistencyFromReport converts a consistency report to response.
func ConsistencyFromReport(r usecase.ConsistencyReport) *ConsistencyResponse {
	status := "consistent"
	if !r.Balanced {
		status = "inconsistent"
	}
	return &ConsistencyResponse{
		Status:            status,
		Consistent:        r.Balanced,
		TotalDebit:        r.TotalDebit,
		TotalCredit:       r.TotalCredit,
		OpeningDifference: r.OpeningDifference,
		UnassignedLegs:    r.UnassignedLegs,
		MissingAccounts:   r.MissingAccounts,
	}
}

// FieldErrorResponse describes one rejected input field.
type FieldErrorResponse struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message,omitempty"`
	Fields  []FieldErrorResponse `json:"fields,omitempty"`
}
