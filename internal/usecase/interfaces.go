package usecase

import (
	"context"
	"time"

	"github.com/iho/storebooks/internal/domain"
)

// TenantRepository defines data access for tenants.
type TenantRepository interface {
	Create(ctx context.Context, tx Transaction, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Tenant, error)
}

// AccountRepository defines data access for a tenant's chart of accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Account, error)
	GetByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)
	// ListByTenant returns every account of the tenant ordered by code.
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, tenantID, id string) error
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Invoice, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Invoice, error)
	// ListAll returns every invoice of the tenant in insertion order.
	ListAll(ctx context.Context, tenantID string) ([]*domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	Delete(ctx context.Context, tenantID, id string) error
}

// BondRepository defines data access for bonds.
type BondRepository interface {
	Create(ctx context.Context, bond *domain.Bond) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Bond, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Bond, error)
	ListAll(ctx context.Context, tenantID string) ([]*domain.Bond, error)
	Update(ctx context.Context, bond *domain.Bond) error
	Delete(ctx context.Context, tenantID, id string) error
}

// ExpenseRepository defines data access for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Expense, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Expense, error)
	ListAll(ctx context.Context, tenantID string) ([]*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, tenantID, id string) error
}

// SourceVersionRepository reports how a tenant's stored collections last changed.
type SourceVersionRepository interface {
	SourceVersions(ctx context.Context, tenantID string) (domain.SourceVersions, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request did not complete successfully.
	Release(ctx context.Context, key string) error
}

// Recorder receives business metrics from the use cases.
type Recorder interface {
	ProtectedMutation(operation string)
	SourceMutation(source, op string)
	UnassignedLeg(kind, side string)
	ObserveDerivation(d time.Duration)
	ReportCache(hit bool)
}

// NopRecorder discards every observation.
type NopRecorder struct{}

func (NopRecorder) ProtectedMutation(string)        {}
func (NopRecorder) SourceMutation(string, string)   {}
func (NopRecorder) UnassignedLeg(string, string)    {}
func (NopRecorder) ObserveDerivation(time.Duration) {}
func (NopRecorder) ReportCache(bool)                {}
