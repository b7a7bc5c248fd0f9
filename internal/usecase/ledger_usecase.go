package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/ledger"
)

var (
	// ErrInconsistentLedger is returned when the ledger is not balanced.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerUseCase is the read side of a book: it loads the current sources and
// derives postings, ledgers and the trial balance on every call.
type LedgerUseCase struct {
	tenantRepo  TenantRepository
	accountRepo AccountRepository
	invoiceRepo InvoiceRepository
	bondRepo    BondRepository
	expenseRepo ExpenseRepository
	recorder    Recorder
	log         zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	tenantRepo TenantRepository,
	accountRepo AccountRepository,
	invoiceRepo InvoiceRepository,
	bondRepo BondRepository,
	expenseRepo ExpenseRepository,
	recorder Recorder,
	log zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		tenantRepo:  tenantRepo,
		accountRepo: accountRepo,
		invoiceRepo: invoiceRepo,
		bondRepo:    bondRepo,
		expenseRepo: expenseRepo,
		recorder:    recorder,
		log:         log,
	}
}

// LoadBook reads the current snapshot of a tenant's sources.
func (uc *LedgerUseCase) LoadBook(ctx context.Context, tenantID string) (ledger.Book, error) {
	if _, err := uc.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return ledger.Book{}, err
	}

	accounts, err := uc.accountRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return ledger.Book{}, err
	}
	invoices, err := uc.invoiceRepo.ListAll(ctx, tenantID)
	if err != nil {
		return ledger.Book{}, err
	}
	bonds, err := uc.bondRepo.ListAll(ctx, tenantID)
	if err != nil {
		return ledger.Book{}, err
	}
	expenses, err := uc.expenseRepo.ListAll(ctx, tenantID)
	if err != nil {
		return ledger.Book{}, err
	}

	return ledger.Book{
		TenantID: tenantID,
		Accounts: accounts,
		Invoices: invoices,
		Bonds:    bonds,
		Expenses: expenses,
	}, nil
}

// Postings derives every posting of the tenant's book.
func (uc *LedgerUseCase) Postings(ctx context.Context, tenantID string) ([]domain.Posting, error) {
	book, err := uc.LoadBook(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return uc.derive(book), nil
}

// derive runs the engine and reports legs that could not be assigned.
func (uc *LedgerUseCase) derive(book ledger.Book) []domain.Posting {
	start := time.Now()
	postings := ledger.DerivePostings(book)
	uc.recorder.ObserveDerivation(time.Since(start))

	for _, leg := range ledger.UnassignedLegs(postings) {
		uc.recorder.UnassignedLeg(string(leg.Kind), string(leg.Side))
		uc.log.Warn().
			Str("tenant_id", book.TenantID).
			Str("posting_id", leg.PostingID).
			Str("side", string(leg.Side)).
			Msg("posting leg has no account in chart")
	}

	return postings
}

// AccountLedger returns the running-balance ledger of the account with code.
func (uc *LedgerUseCase) AccountLedger(ctx context.Context, tenantID, code string) ([]domain.LedgerLine, error) {
	book, err := uc.LoadBook(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if findAccount(book.Accounts, code) == nil {
		return nil, domain.ErrAccountNotFound
	}

	return ledger.AccountLedger(code, uc.derive(book)), nil
}

// TrialBalance returns one row per account of the tenant's chart.
func (uc *LedgerUseCase) TrialBalance(ctx context.Context, tenantID string) ([]domain.TrialBalanceRow, error) {
	book, err := uc.LoadBook(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ledger.TrialBalance(book.Accounts, uc.derive(book)), nil
}

// ConsistencyReport summarises the health of a derived book.
type ConsistencyReport struct {
	TenantID          string
	TotalDebit        decimal.Decimal
	TotalCredit       decimal.Decimal
	Balanced          bool
	OpeningDifference decimal.Decimal
	UnassignedLegs    int
	MissingAccounts   []string
}

// CheckConsistency verifies that the tenant's book balances. The report is
// returned together with ErrInconsistentLedger when it does not.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context, tenantID string) (ConsistencyReport, error) {
	book, err := uc.LoadBook(ctx, tenantID)
	if err != nil {
		return ConsistencyReport{}, err
	}

	postings := uc.derive(book)
	rows := ledger.TrialBalance(book.Accounts, postings)
	debit, credit := ledger.Totals(rows)

	report := ConsistencyReport{
		TenantID:          tenantID,
		TotalDebit:        debit,
		TotalCredit:       credit,
		Balanced:          debit.Equal(credit),
		OpeningDifference: ledger.OpeningDifference(postings),
		UnassignedLegs:    len(ledger.UnassignedLegs(postings)),
	}

	var missing *domain.MissingAccountsError
	if _, err := ledger.ResolveWellKnown(book.Accounts); errors.As(err, &missing) {
		report.MissingAccounts = missing.Codes
	}

	if !report.Balanced {
		return report, ErrInconsistentLedger
	}
	return report, nil
}

func findAccount(accounts []*domain.Account, code string) *domain.Account {
	for _, a := range accounts {
		if a != nil && a.Code == code {
			return a
		}
	}
	return nil
}
