// Package memory keeps every repository in process memory. It backs the
// STORAGE_DRIVER=memory development mode and the use case tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

// record is implemented by the pointer types stored in a collection.
type record interface {
	*domain.Account | *domain.Invoice | *domain.Bond | *domain.Expense
}

// collection holds one tenant-scoped record type in insertion order.
type collection[T record] struct {
	byTenant map[string][]T
	id       func(T) string
	updated  func(T) time.Time
	clone    func(T) T
}

func newCollection[T record](id func(T) string, updated func(T) time.Time, clone func(T) T) *collection[T] {
	return &collection[T]{
		byTenant: make(map[string][]T),
		id:       id,
		updated:  updated,
		clone:    clone,
	}
}

func (c *collection[T]) find(tenantID, id string) (int, T) {
	for i, r := range c.byTenant[tenantID] {
		if c.id(r) == id {
			return i, r
		}
	}
	var zero T
	return -1, zero
}

func (c *collection[T]) insert(tenantID string, r T) {
	c.byTenant[tenantID] = append(c.byTenant[tenantID], c.clone(r))
}

func (c *collection[T]) replace(tenantID string, r T) bool {
	i, _ := c.find(tenantID, c.id(r))
	if i < 0 {
		return false
	}
	c.byTenant[tenantID][i] = c.clone(r)
	return true
}

func (c *collection[T]) remove(tenantID, id string) (T, bool) {
	i, r := c.find(tenantID, id)
	if i < 0 {
		return r, false
	}
	c.byTenant[tenantID] = slices.Delete(c.byTenant[tenantID], i, i+1)
	return r, true
}

func (c *collection[T]) all(tenantID string) []T {
	rows := c.byTenant[tenantID]
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, c.clone(r))
	}
	return out
}

func (c *collection[T]) page(tenantID string, limit, offset int) []T {
	rows := c.all(tenantID)
	if offset >= len(rows) {
		return []T{}
	}
	end := min(offset+limit, len(rows))
	return rows[offset:end]
}

func (c *collection[T]) version(tenantID string, deletedAt time.Time) domain.CollectionVersion {
	v := domain.CollectionVersion{Count: int64(len(c.byTenant[tenantID])), LastUpdated: deletedAt}
	for _, r := range c.byTenant[tenantID] {
		if u := c.updated(r); u.After(v.LastUpdated) {
			v.LastUpdated = u
		}
	}
	return v
}

// Store is the shared state of every memory repository.
type Store struct {
	mu       sync.RWMutex
	tenants  map[string]*domain.Tenant
	order    []string
	accounts *collection[*domain.Account]
	invoices *collection[*domain.Invoice]
	bonds    *collection[*domain.Bond]
	expenses *collection[*domain.Expense]
	// deletions records the last delete per tenant and source so that
	// source versions move forward on removal.
	deletions map[string]time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		tenants: make(map[string]*domain.Tenant),
		accounts: newCollection(
			func(a *domain.Account) string { return a.ID },
			func(a *domain.Account) time.Time { return a.UpdatedAt },
			func(a *domain.Account) *domain.Account { c := *a; return &c },
		),
		invoices: newCollection(
			func(i *domain.Invoice) string { return i.ID },
			func(i *domain.Invoice) time.Time { return i.UpdatedAt },
			func(i *domain.Invoice) *domain.Invoice { c := *i; return &c },
		),
		bonds: newCollection(
			func(b *domain.Bond) string { return b.ID },
			func(b *domain.Bond) time.Time { return b.UpdatedAt },
			func(b *domain.Bond) *domain.Bond { c := *b; return &c },
		),
		expenses: newCollection(
			func(e *domain.Expense) string { return e.ID },
			func(e *domain.Expense) time.Time { return e.UpdatedAt },
			func(e *domain.Expense) *domain.Expense { c := *e; return &c },
		),
		deletions: make(map[string]time.Time),
	}
}

func (s *Store) markDeleted(tenantID, source string) {
	s.deletions[tenantID+"/"+source] = time.Now().UTC()
}

// TxManager implements usecase.TransactionManager. Writes are applied
// immediately and undone on rollback.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{store: m.store}, nil
}

// Tx collects undo steps for the writes made through it.
type Tx struct {
	store *Store
	undo  []func()
	done  bool
}

func (t *Tx) onRollback(fn func()) {
	t.undo = append(t.undo, fn)
}

// Commit keeps every write made through the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	t.done = true
	t.undo = nil
	return nil
}

// Rollback reverts the writes made through the transaction. It is a no-op
// after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	return nil
}

func asTx(tx usecase.Transaction) *Tx {
	if t, ok := tx.(*Tx); ok {
		return t
	}
	return nil
}
