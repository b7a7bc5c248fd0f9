package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/storebooks/internal/adapter/http/handler"
	"github.com/iho/storebooks/internal/adapter/http/middleware"
	"github.com/iho/storebooks/internal/infrastructure/metrics"
	"github.com/iho/storebooks/internal/usecase"
)

// RouterConfig holds dependencies for the router. Optional parts are
// skipped when nil.
type RouterConfig struct {
	TenantHandler  *handler.TenantHandler
	AccountHandler *handler.AccountHandler
	InvoiceHandler *handler.InvoiceHandler
	BondHandler    *handler.BondHandler
	ExpenseHandler *handler.ExpenseHandler
	LedgerHandler  *handler.LedgerHandler
	ReportHandler  *handler.ReportHandler
	HealthHandler  *handler.HealthHandler

	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter
	// TokenVerifier enables JWT auth on /api/v1.
	TokenVerifier    middleware.TokenVerifier
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	logging := middleware.NewLoggingMiddleware(cfg.Logger)

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenVerifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			var replays prometheus.Counter
			if cfg.Metrics != nil {
				replays = cfg.Metrics.IdempotentReplays
			}
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, replays, cfg.Logger)
			r.Use(idempotency.Wrap)
		}

		r.With(middleware.RequireAdmin).Post("/tenants", cfg.TenantHandler.Provision)
		r.With(middleware.RequireAdmin).Get("/tenants", cfg.TenantHandler.List)

		r.Route("/tenants/{tenantID}", func(r chi.Router) {
			r.Use(middleware.TenantScope)
			r.Use(logging.TenantLogger)

			r.Get("/", cfg.TenantHandler.Get)

			// Chart of accounts
			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", cfg.AccountHandler.List)
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/{code}", cfg.AccountHandler.Get)
				r.Put("/{code}", cfg.AccountHandler.Update)
				r.Delete("/{code}", cfg.AccountHandler.Delete)
				r.Get("/{code}/ledger", cfg.AccountHandler.Ledger)
				r.Get("/{code}/statement", cfg.AccountHandler.Statement)
			})

			// Source documents
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", cfg.InvoiceHandler.List)
				r.Post("/", cfg.InvoiceHandler.Create)
				r.Get("/{id}", cfg.InvoiceHandler.Get)
				r.Put("/{id}", cfg.InvoiceHandler.Update)
				r.Delete("/{id}", cfg.InvoiceHandler.Delete)
			})
			r.Route("/bonds", func(r chi.Router) {
				r.Get("/", cfg.BondHandler.List)
				r.Post("/", cfg.BondHandler.Create)
				r.Get("/{id}", cfg.BondHandler.Get)
				r.Put("/{id}", cfg.BondHandler.Update)
				r.Delete("/{id}", cfg.BondHandler.Delete)
			})
			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", cfg.ExpenseHandler.List)
				r.Post("/", cfg.ExpenseHandler.Create)
				r.Get("/{id}", cfg.ExpenseHandler.Get)
				r.Put("/{id}", cfg.ExpenseHandler.Update)
				r.Delete("/{id}", cfg.ExpenseHandler.Delete)
			})

			// Derived views
			r.Get("/ledger/postings", cfg.LedgerHandler.Postings)
			r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
			r.Get("/reports/chart", cfg.ReportHandler.Chart)
			r.Get("/reports/trial-balance", cfg.ReportHandler.TrialBalance)
			r.Get("/reports/final-accounts", cfg.ReportHandler.FinalAccounts)
			r.Get("/reports/balance-sheet", cfg.ReportHandler.BalanceSheet)
		})
	})

	return r
}
