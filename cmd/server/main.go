package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/storebooks/internal/adapter/http"
	"github.com/iho/storebooks/internal/adapter/http/handler"
	"github.com/iho/storebooks/internal/adapter/http/middleware"
	"github.com/iho/storebooks/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/storebooks/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/storebooks/internal/adapter/repository/redis"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/infrastructure/auth"
	"github.com/iho/storebooks/internal/infrastructure/config"
	"github.com/iho/storebooks/internal/infrastructure/logger"
	"github.com/iho/storebooks/internal/infrastructure/metrics"
	"github.com/iho/storebooks/internal/infrastructure/postgres"
	"github.com/iho/storebooks/internal/infrastructure/redis"
	"github.com/iho/storebooks/internal/usecase"
)

const limiterCleanupInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// repositories is the storage backend selected by STORAGE_DRIVER.
type repositories struct {
	txManager usecase.TransactionManager
	retrier   usecase.Retrier
	idGen     usecase.IDGenerator
	tenants   usecase.TenantRepository
	accounts  usecase.AccountRepository
	invoices  usecase.InvoiceRepository
	bonds     usecase.BondRepository
	expenses  usecase.ExpenseRepository
	versions  usecase.SourceVersionRepository
}

// app is everything NewRouter needs plus what must be released on exit.
type app struct {
	router      http.Handler
	rateLimiter *middleware.RateLimiter
	closers     []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	a, err := buildApp(ctx, cfg, log, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer a.Close()

	if a.rateLimiter != nil {
		go a.rateLimiter.RunCleanup(ctx, limiterCleanupInterval)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg *prometheus.Registry) (*app, error) {
	a := &app{}
	checks := map[string]handler.Pinger{}

	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	repos, pool, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if pool != nil {
		a.closers = append(a.closers, pool.Close)
		checks["postgres"] = pool
	}

	var (
		cache       usecase.Cache
		idempotency usecase.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL, redis.Options{})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		checks["redis"] = redisPinger(client)
		cache = redisRepo.NewCache(client)
		idempotency = redisRepo.NewIdempotencyStore(client)
		log.Info().Msg("connected to redis")
	} else if cfg.ReportCacheEnabled {
		log.Warn().Msg("REPORT_CACHE_ENABLED has no effect without REDIS_URL")
	}

	var extraChart []domain.Account
	if cfg.ChartSeedFile != "" {
		extraChart, err = config.LoadChart(cfg.ChartSeedFile)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	tenantUC := usecase.NewTenantUseCase(repos.txManager, repos.retrier, repos.tenants, repos.accounts, repos.idGen, extraChart, log)
	accountUC := usecase.NewAccountUseCase(repos.tenants, repos.accounts, repos.idGen, m, log)
	invoiceUC := usecase.NewInvoiceUseCase(repos.tenants, repos.invoices, repos.idGen, m)
	bondUC := usecase.NewBondUseCase(repos.tenants, repos.bonds, repos.idGen, m)
	expenseUC := usecase.NewExpenseUseCase(repos.tenants, repos.expenses, repos.idGen, m)
	ledgerUC := usecase.NewLedgerUseCase(repos.tenants, repos.accounts, repos.invoices, repos.bonds, repos.expenses, m, log)
	reportUC := usecase.NewReportUseCase(ledgerUC, repos.versions, cache, usecase.ReportCacheConfig{
		Enabled: cfg.ReportCacheEnabled,
		TTL:     cfg.ReportCacheTTL,
	}, m, log)

	routerCfg := httpAdapter.RouterConfig{
		TenantHandler:    handler.NewTenantHandler(tenantUC),
		AccountHandler:   handler.NewAccountHandler(accountUC, ledgerUC, reportUC),
		InvoiceHandler:   handler.NewInvoiceHandler(invoiceUC),
		BondHandler:      handler.NewBondHandler(bondUC),
		ExpenseHandler:   handler.NewExpenseHandler(expenseUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		ReportHandler:    handler.NewReportHandler(reportUC),
		HealthHandler:    handler.NewHealthHandler(checks),
		Logger:           log,
		Metrics:          m,
		MetricsHandler:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		IdempotencyStore: idempotency,
		IdempotencyTTL:   cfg.IdempotencyTTL,
	}

	if cfg.AuthEnabled {
		routerCfg.TokenVerifier = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("JWT authentication enabled")
	}

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimitHits)
		routerCfg.RateLimiter = a.rateLimiter
	}

	a.router = httpAdapter.NewRouter(routerCfg)
	return a, nil
}

// openStorage returns the pool only for the postgres driver.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, *pgxpool.Pool, error) {
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()

	if cfg.StorageDriver == config.StorageMemory {
		store := memory.NewStore()
		log.Warn().Msg("using in-memory storage, data is lost on exit")

		return &repositories{
			txManager: memory.NewTxManager(store),
			retrier:   retrier,
			idGen:     idGen,
			tenants:   memory.NewTenantRepository(store),
			accounts:  memory.NewAccountRepository(store),
			invoices:  memory.NewInvoiceRepository(store),
			bonds:     memory.NewBondRepository(store),
			expenses:  memory.NewExpenseRepository(store),
			versions:  memory.NewSourceVersionRepository(store),
		}, nil, nil
	}

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return nil, nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	log.Info().Msg("connected to postgres")

	return &repositories{
		txManager: postgresRepo.NewTxManager(pool),
		retrier:   retrier,
		idGen:     idGen,
		tenants:   postgresRepo.NewTenantRepository(pool),
		accounts:  postgresRepo.NewAccountRepository(pool),
		invoices:  postgresRepo.NewInvoiceRepository(pool),
		bonds:     postgresRepo.NewBondRepository(pool),
		expenses:  postgresRepo.NewExpenseRepository(pool),
		versions:  postgresRepo.NewSourceVersionRepository(pool),
	}, pool, nil
}

func redisPinger(client goredis.UniversalClient) handler.PingFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
