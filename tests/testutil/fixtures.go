package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	postgresRepo "github.com/iho/storebooks/internal/adapter/repository/postgres"
	"github.com/iho/storebooks/internal/infrastructure/postgres"
	"github.com/iho/storebooks/internal/usecase"
)

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB connects to DATABASE_URL and applies migrations. The test is
// skipped under -short or when DATABASE_URL is unset.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	migrationsPath := "internal/infrastructure/postgres/migrations"
	for _, candidate := range []string{"../../internal/infrastructure/postgres/migrations", "../../../internal/infrastructure/postgres/migrations"} {
		if _, err := os.Stat(migrationsPath); err == nil {
			break
		}
		migrationsPath = candidate
	}

	if err := postgres.RunMigrations(dbURL, migrationsPath, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dbURL, 10, 1)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	db := &TestDB{Pool: pool, t: t}
	t.Cleanup(pool.Close)
	db.TruncateAll(ctx)

	return db
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE source_deletions, expenses, bonds, invoices, accounts, tenants CASCADE;
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// UseCases is the full set of use cases backed by the test database.
type UseCases struct {
	Tenant  *usecase.TenantUseCase
	Account *usecase.AccountUseCase
	Invoice *usecase.InvoiceUseCase
	Bond    *usecase.BondUseCase
	Expense *usecase.ExpenseUseCase
	Ledger  *usecase.LedgerUseCase
	Report  *usecase.ReportUseCase
}

// NewUseCases wires every use case to Postgres repositories. cache may be nil.
func (db *TestDB) NewUseCases(cache usecase.Cache) *UseCases {
	log := zerolog.Nop()
	recorder := usecase.NopRecorder{}
	idGen := postgresRepo.NewULIDGenerator()

	tenants := postgresRepo.NewTenantRepository(db.Pool)
	accounts := postgresRepo.NewAccountRepository(db.Pool)
	invoices := postgresRepo.NewInvoiceRepository(db.Pool)
	bonds := postgresRepo.NewBondRepository(db.Pool)
	expenses := postgresRepo.NewExpenseRepository(db.Pool)

	ledgerUC := usecase.NewLedgerUseCase(tenants, accounts, invoices, bonds, expenses, recorder, log)

	return &UseCases{
		Tenant:  usecase.NewTenantUseCase(postgresRepo.NewTxManager(db.Pool), postgresRepo.NewRetrier(log), tenants, accounts, idGen, nil, log),
		Account: usecase.NewAccountUseCase(tenants, accounts, idGen, recorder, log),
		Invoice: usecase.NewInvoiceUseCase(tenants, invoices, idGen, recorder),
		Bond:    usecase.NewBondUseCase(tenants, bonds, idGen, recorder),
		Expense: usecase.NewExpenseUseCase(tenants, expenses, idGen, recorder),
		Ledger:  ledgerUC,
		Report: usecase.NewReportUseCase(ledgerUC, postgresRepo.NewSourceVersionRepository(db.Pool), cache, usecase.ReportCacheConfig{
			Enabled: cache != nil,
			TTL:     time.Minute,
		}, recorder, log),
	}
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
