package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/adapter/http/handler"
	apimiddleware "github.com/iho/storebooks/internal/adapter/http/middleware"
	"github.com/iho/storebooks/internal/adapter/repository/memory"
	"github.com/iho/storebooks/internal/infrastructure/auth"
	"github.com/iho/storebooks/internal/infrastructure/metrics"
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

// newRouterConfig wires every handler to real use cases over the in-memory store.
func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	log := zerolog.Nop()
	store := memory.NewStore()
	ids := &sequenceIDs{}
	recorder := usecase.NopRecorder{}

	tenants := memory.NewTenantRepository(store)
	accounts := memory.NewAccountRepository(store)
	invoices := memory.NewInvoiceRepository(store)
	bonds := memory.NewBondRepository(store)
	expenses := memory.NewExpenseRepository(store)

	ledgerUC := usecase.NewLedgerUseCase(tenants, accounts, invoices, bonds, expenses, recorder, log)
	reportUC := usecase.NewReportUseCase(ledgerUC, memory.NewSourceVersionRepository(store), nil, usecase.ReportCacheConfig{}, recorder, log)

	cfg := RouterConfig{
		TenantHandler:  handler.NewTenantHandler(usecase.NewTenantUseCase(memory.NewTxManager(store), passthroughRetrier{}, tenants, accounts, ids, nil, log)),
		AccountHandler: handler.NewAccountHandler(usecase.NewAccountUseCase(tenants, accounts, ids, recorder, log), ledgerUC, reportUC),
		InvoiceHandler: handler.NewInvoiceHandler(usecase.NewInvoiceUseCase(tenants, invoices, ids, recorder)),
		BondHandler:    handler.NewBondHandler(usecase.NewBondUseCase(tenants, bonds, ids, recorder)),
		ExpenseHandler: handler.NewExpenseHandler(usecase.NewExpenseUseCase(tenants, expenses, ids, recorder)),
		LedgerHandler:  handler.NewLedgerHandler(ledgerUC),
		ReportHandler:  handler.NewReportHandler(reportUC),
		HealthHandler:  handler.NewHealthHandler(nil),
		Logger:         log,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := do(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /ready without dependencies to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_BookLifecycle(t *testing.T) {
	router := NewRouter(newRouterConfig())
	base := "/api/v1/tenants/acme"

	steps := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodPost, "/api/v1/tenants", `{"id":"acme","name":"Acme Stores"}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/tenants", `{"id":"acme","name":"Again"}`, http.StatusConflict},
		{http.MethodPost, base + "/invoices", `{"type":"sale","status":"credit","date":"2024-06-01","total":"1000","contact_name":"Ada"}`, http.StatusCreated},
		{http.MethodPost, base + "/bonds", `{"type":"receipt","date":"2024-06-02","payment_method":"cash","amount":"400","entity_name":"Ada"}`, http.StatusCreated},
		{http.MethodPost, base + "/expenses", `{"date":"2024-06-03","amount":"40","title":"Stationery"}`, http.StatusCreated},
		{http.MethodPost, base + "/invoices", `{"type":"refund","status":"paid","date":"2024-06-01","total":"1"}`, http.StatusBadRequest},
		{http.MethodDelete, base + "/accounts/1001", "", http.StatusConflict},
		{http.MethodGet, "/api/v1/tenants/nobody/", "", http.StatusNotFound},
		{http.MethodPost, "/api/v1/tenants/nobody/expenses", `{"date":"2024-06-03","amount":"40","title":"Stationery"}`, http.StatusNotFound},
	}
	for _, s := range steps {
		rec := do(t, router, s.method, s.path, s.body)
		if rec.Code != s.status {
			t.Fatalf("%s %s: expected %d, got %d: %s", s.method, s.path, s.status, rec.Code, rec.Body.String())
		}
	}

	rec := do(t, router, http.MethodGet, base+"/ledger/consistency", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected consistent book, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodGet, base+"/accounts/1100/ledger", "")
	var ledgerResp dto.AccountLedgerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &ledgerResp); err != nil {
		t.Fatalf("decode ledger: %v", err)
	}
	if !ledgerResp.ClosingBalance.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected receivable balance 600, got %s", ledgerResp.ClosingBalance)
	}

	rec = do(t, router, http.MethodGet, base+"/reports/final-accounts", "")
	var fa dto.FinalAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &fa); err != nil {
		t.Fatalf("decode final accounts: %v", err)
	}
	if !fa.Balanced || !fa.IncomeStatement.NetIncome.Equal(decimal.NewFromInt(960)) {
		t.Fatalf("unexpected final accounts %+v", fa)
	}

	rec = do(t, router, http.MethodGet, base+"/accounts/1001/statement?format=html", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("expected html statement, got %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestNewRouter_AuthScopesTenants(t *testing.T) {
	jwt := auth.NewJWTManager("router-secret", time.Hour)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.TokenVerifier = jwt
	}))

	admin, _ := jwt.GenerateAdmin("ops")
	acme, _ := jwt.Generate("alice", "acme")

	if rec := do(t, router, http.MethodPost, "/api/v1/tenants", `{"id":"acme","name":"Acme"}`, "Authorization", "Bearer "+acme); rec.Code != http.StatusForbidden {
		t.Fatalf("tenant token must not provision, got %d", rec.Code)
	}
	if rec := do(t, router, http.MethodPost, "/api/v1/tenants", `{"id":"acme","name":"Acme"}`, "Authorization", "Bearer "+admin); rec.Code != http.StatusCreated {
		t.Fatalf("admin should provision, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, router, http.MethodGet, "/api/v1/tenants/acme/accounts", "", "Authorization", "Bearer "+acme); rec.Code != http.StatusOK {
		t.Fatalf("token should read its own tenant, got %d", rec.Code)
	}
	if rec := do(t, router, http.MethodGet, "/api/v1/tenants/other/accounts", "", "Authorization", "Bearer "+acme); rec.Code != http.StatusForbidden {
		t.Fatalf("token must not read another tenant, got %d", rec.Code)
	}
	if rec := do(t, router, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health must not require auth, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(0.001, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	do(t, router, http.MethodPost, "/api/v1/tenants", `{"id":"acme","name":"Acme"}`, apimiddleware.IdempotencyKeyHeader, "key-123")

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
	if string(store.stored) == "" {
		t.Fatalf("expected created tenant to be stored for replay")
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.Metrics = metrics.New(reg)
		cfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}))

	do(t, router, http.MethodGet, "/health", "")
	rec := do(t, router, http.MethodGet, "/metrics", "")

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "storebooks_http_requests_total") {
		t.Fatalf("expected http metrics to be exposed, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/tenants",
		"GET /api/v1/tenants/{tenantID}/",
		"DELETE /api/v1/tenants/{tenantID}/accounts/{code}",
		"GET /api/v1/tenants/{tenantID}/accounts/{code}/statement",
		"PUT /api/v1/tenants/{tenantID}/invoices/{id}",
		"POST /api/v1/tenants/{tenantID}/bonds/",
		"GET /api/v1/tenants/{tenantID}/expenses/",
		"GET /api/v1/tenants/{tenantID}/ledger/consistency",
		"GET /api/v1/tenants/{tenantID}/reports/balance-sheet",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

type stubIdempotencyStore struct {
	checkCalled bool
	stored      []byte
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.stored = append([]byte(nil), response...)
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	return nil
}
