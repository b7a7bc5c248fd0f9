package usecase_test

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iho/storebooks/internal/adapter/repository/memory"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/usecase"
)

type passthroughRetrier struct{}

func (passthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

type sequenceIDs struct {
	n atomic.Int64
}

func (g *sequenceIDs) Generate() string {
	return "id-" + strconv.FormatInt(g.n.Add(1), 10)
}

type countingRecorder struct {
	mu         sync.Mutex
	protected  map[string]int
	sources    map[string]int
	unassigned map[string]int
	cacheHits  int
	cacheMiss  int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		protected:  map[string]int{},
		sources:    map[string]int{},
		unassigned: map[string]int{},
	}
}

func (r *countingRecorder) ProtectedMutation(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.protected[op]++
}

func (r *countingRecorder) SourceMutation(source, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source+"/"+op]++
}

func (r *countingRecorder) UnassignedLeg(kind, side string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unassigned[kind+"/"+side]++
}

func (r *countingRecorder) ObserveDerivation(time.Duration) {}

func (r *countingRecorder) ReportCache(hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hit {
		r.cacheHits++
	} else {
		r.cacheMiss++
	}
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, usecase.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// testEnv wires every use case to one memory store.
type testEnv struct {
	store    *memory.Store
	recorder *countingRecorder
	cache    *mapCache

	tenants  *usecase.TenantUseCase
	accounts *usecase.AccountUseCase
	invoices *usecase.InvoiceUseCase
	bonds    *usecase.BondUseCase
	expenses *usecase.ExpenseUseCase
	ledger   *usecase.LedgerUseCase
	reports  *usecase.ReportUseCase
}

func newTestEnv(t *testing.T, cacheCfg usecase.ReportCacheConfig, extraChart ...domain.Account) *testEnv {
	t.Helper()

	store := memory.NewStore()
	ids := &sequenceIDs{}
	rec := newCountingRecorder()
	cache := &mapCache{data: map[string][]byte{}}
	log := zerolog.Nop()

	tenantRepo := memory.NewTenantRepository(store)
	accountRepo := memory.NewAccountRepository(store)
	invoiceRepo := memory.NewInvoiceRepository(store)
	bondRepo := memory.NewBondRepository(store)
	expenseRepo := memory.NewExpenseRepository(store)

	ledgerUC := usecase.NewLedgerUseCase(tenantRepo, accountRepo, invoiceRepo, bondRepo, expenseRepo, rec, log)

	return &testEnv{
		store:    store,
		recorder: rec,
		cache:    cache,
		tenants:  usecase.NewTenantUseCase(memory.NewTxManager(store), passthroughRetrier{}, tenantRepo, accountRepo, ids, extraChart, log),
		accounts: usecase.NewAccountUseCase(tenantRepo, accountRepo, ids, rec, log),
		invoices: usecase.NewInvoiceUseCase(tenantRepo, invoiceRepo, ids, rec),
		bonds:    usecase.NewBondUseCase(tenantRepo, bondRepo, ids, rec),
		expenses: usecase.NewExpenseUseCase(tenantRepo, expenseRepo, ids, rec),
		ledger:   ledgerUC,
		reports:  usecase.NewReportUseCase(ledgerUC, memory.NewSourceVersionRepository(store), cache, cacheCfg, rec, log),
	}
}

func (e *testEnv) provision(t *testing.T, id string) {
	t.Helper()
	_, err := e.tenants.Provision(context.Background(), usecase.ProvisionTenantInput{ID: id, Name: "Shop " + id})
	require.NoError(t, err)
}

func date(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}
