package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

// TenantRepository implements usecase.TenantRepository.
type TenantRepository struct {
	store *Store
}

// NewTenantRepository creates a new TenantRepository.
func NewTenantRepository(store *Store) *TenantRepository {
	return &TenantRepository{store: store}
}

// Create stores a tenant.
func (r *TenantRepository) Create(ctx context.Context, tx usecase.Transaction, tenant *domain.Tenant) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[tenant.ID]; ok {
		return domain.ErrTenantExists
	}
	c := *tenant
	s.tenants[tenant.ID] = &c
	s.order = append(s.order, tenant.ID)

	if t := asTx(tx); t != nil {
		t.onRollback(func() {
			delete(s.tenants, tenant.ID)
			s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == tenant.ID })
		})
	}
	return nil
}

// GetByID retrieves a tenant by ID.
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.tenants[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	c := *t
	return &c, nil
}

// List lists tenants in creation order.
func (r *TenantRepository) List(ctx context.Context, limit, offset int) ([]*domain.Tenant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tenants := make([]*domain.Tenant, 0)
	for i := offset; i < len(r.store.order) && len(tenants) < limit; i++ {
		c := *r.store.tenants[r.store.order[i]]
		tenants = append(tenants, &c)
	}
	return tenants, nil
}

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create stores an account. Codes are unique per tenant.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.CreateTx(ctx, nil, account)
}

// CreateTx stores an account as part of tx.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.codeTaken(account.TenantID, account.Code, "") {
		return domain.ErrDuplicateAccountCode
	}
	s.accounts.insert(account.TenantID, account)

	if t := asTx(tx); t != nil {
		t.onRollback(func() {
			s.accounts.remove(account.TenantID, account.ID)
		})
	}
	return nil
}

func (r *AccountRepository) codeTaken(tenantID, code, exceptID string) bool {
	for _, a := range r.store.accounts.byTenant[tenantID] {
		if a.Code == code && a.ID != exceptID {
			return true
		}
	}
	return false
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, a := r.store.accounts.find(tenantID, id)
	if a == nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.store.accounts.clone(a), nil
}

// GetByCode retrieves an account by code.
func (r *AccountRepository) GetByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.accounts.byTenant[tenantID] {
		if a.Code == code {
			return r.store.accounts.clone(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// ListByTenant returns the tenant's accounts ordered by code.
func (r *AccountRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := r.store.accounts.all(tenantID)
	sortAccounts(accounts)
	return accounts, nil
}

// Update replaces a stored account.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.codeTaken(account.TenantID, account.Code, account.ID) {
		return domain.ErrDuplicateAccountCode
	}
	if !r.store.accounts.replace(account.TenantID, account) {
		return domain.ErrAccountNotFound
	}
	return nil
}

// Delete removes an account.
func (r *AccountRepository) Delete(ctx context.Context, tenantID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts.remove(tenantID, id); !ok {
		return domain.ErrAccountNotFound
	}
	r.store.markDeleted(tenantID, usecase.SourceAccount)
	return nil
}

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	store *Store
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(store *Store) *InvoiceRepository {
	return &InvoiceRepository{store: store}
}

// Create stores an invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.invoices.insert(invoice.TenantID, invoice)
	return nil
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, inv := r.store.invoices.find(tenantID, id)
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return r.store.invoices.clone(inv), nil
}

// List lists invoices with pagination.
func (r *InvoiceRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.invoices.page(tenantID, limit, offset), nil
}

// ListAll returns every invoice of the tenant in insertion order.
func (r *InvoiceRepository) ListAll(ctx context.Context, tenantID string) ([]*domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.invoices.all(tenantID), nil
}

// Update replaces a stored invoice.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.invoices.replace(invoice.TenantID, invoice) {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// Delete removes an invoice.
func (r *InvoiceRepository) Delete(ctx context.Context, tenantID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.invoices.remove(tenantID, id); !ok {
		return domain.ErrInvoiceNotFound
	}
	r.store.markDeleted(tenantID, usecase.SourceInvoice)
	return nil
}

// BondRepository implements usecase.BondRepository.
type BondRepository struct {
	store *Store
}

// NewBondRepository creates a new BondRepository.
func NewBondRepository(store *Store) *BondRepository {
	return &BondRepository{store: store}
}

// Create stores a bond.
func (r *BondRepository) Create(ctx context.Context, bond *domain.Bond) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.bonds.insert(bond.TenantID, bond)
	return nil
}

// GetByID retrieves a bond by ID.
func (r *BondRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Bond, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, b := r.store.bonds.find(tenantID, id)
	if b == nil {
		return nil, domain.ErrBondNotFound
	}
	return r.store.bonds.clone(b), nil
}

// List lists bonds with pagination.
func (r *BondRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Bond, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.bonds.page(tenantID, limit, offset), nil
}

// ListAll returns every bond of the tenant in insertion order.
func (r *BondRepository) ListAll(ctx context.Context, tenantID string) ([]*domain.Bond, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.bonds.all(tenantID), nil
}

// Update replaces a stored bond.
func (r *BondRepository) Update(ctx context.Context, bond *domain.Bond) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.bonds.replace(bond.TenantID, bond) {
		return domain.ErrBondNotFound
	}
	return nil
}

// Delete removes a bond.
func (r *BondRepository) Delete(ctx context.Context, tenantID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.bonds.remove(tenantID, id); !ok {
		return domain.ErrBondNotFound
	}
	r.store.markDeleted(tenantID, usecase.SourceBond)
	return nil
}

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	store *Store
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(store *Store) *ExpenseRepository {
	return &ExpenseRepository{store: store}
}

// Create stores an expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.expenses.insert(expense.TenantID, expense)
	return nil
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Expense, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, e := r.store.expenses.find(tenantID, id)
	if e == nil {
		return nil, domain.ErrExpenseNotFound
	}
	return r.store.expenses.clone(e), nil
}

// List lists expenses with pagination.
func (r *ExpenseRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Expense, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.expenses.page(tenantID, limit, offset), nil
}

// ListAll returns every expense of the tenant in insertion order.
func (r *ExpenseRepository) ListAll(ctx context.Context, tenantID string) ([]*domain.Expense, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.expenses.all(tenantID), nil
}

// Update replaces a stored expense.
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.expenses.replace(expense.TenantID, expense) {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, tenantID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.expenses.remove(tenantID, id); !ok {
		return domain.ErrExpenseNotFound
	}
	r.store.markDeleted(tenantID, usecase.SourceExpense)
	return nil
}

// SourceVersionRepository implements usecase.SourceVersionRepository.
type SourceVersionRepository struct {
	store *Store
}

// NewSourceVersionRepository creates a new SourceVersionRepository.
func NewSourceVersionRepository(store *Store) *SourceVersionRepository {
	return &SourceVersionRepository{store: store}
}

// SourceVersions summarises the tenant's collections.
func (r *SourceVersionRepository) SourceVersions(ctx context.Context, tenantID string) (domain.SourceVersions, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	deleted := func(source string) time.Time { return s.deletions[tenantID+"/"+source] }
	return domain.SourceVersions{
		Accounts: s.accounts.version(tenantID, deleted(usecase.SourceAccount)),
		Invoices: s.invoices.version(tenantID, deleted(usecase.SourceInvoice)),
		Bonds:    s.bonds.version(tenantID, deleted(usecase.SourceBond)),
		Expenses: s.expenses.version(tenantID, deleted(usecase.SourceExpense)),
	}, nil
}

func sortAccounts(accounts []*domain.Account) {
	slices.SortStableFunc(accounts, func(a, b *domain.Account) int {
		return strings.Compare(a.Code, b.Code)
	})
}
