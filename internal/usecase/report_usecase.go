package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/report"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ReportCacheConfig controls the read-through report cache.
type ReportCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// ReportUseCase builds the documents shown to users.
type ReportUseCase struct {
	ledger   *LedgerUseCase
	versions SourceVersionRepository
	cache    Cache
	cacheCfg ReportCacheConfig
	recorder Recorder
	log      zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase. versions and cache may be nil
// when the cache is disabled.
func NewReportUseCase(
	ledgerUC *LedgerUseCase,
	versions SourceVersionRepository,
	cache Cache,
	cacheCfg ReportCacheConfig,
	recorder Recorder,
	log zerolog.Logger,
) *ReportUseCase {
	if cacheCfg.TTL <= 0 {
		cacheCfg.TTL = DefaultReportCacheTTL
	}
	if versions == nil || cache == nil {
		cacheCfg.Enabled = false
	}

	return &ReportUseCase{
		ledger:   ledgerUC,
		versions: versions,
		cache:    cache,
		cacheCfg: cacheCfg,
		recorder: recorder,
		log:      log,
	}
}

// ChartOfAccounts returns the tenant's accounts ordered by code.
func (uc *ReportUseCase) ChartOfAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	book, err := uc.ledger.LoadBook(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return report.ChartOfAccounts(book.Accounts), nil
}

// FinalAccounts returns the trial balance and income statement.
func (uc *ReportUseCase) FinalAccounts(ctx context.Context, tenantID string, opts report.FinalAccountsOptions) (report.FinalAccounts, error) {
	name := "final-accounts:" + strconv.FormatBool(opts.NonZeroOnly) + ":" + opts.AsOf.UTC().Format(time.RFC3339)

	var fa report.FinalAccounts
	err := uc.cached(ctx, tenantID, name, &fa, func() error {
		book, err := uc.ledger.LoadBook(ctx, tenantID)
		if err != nil {
			return err
		}
		fa = report.BuildFinalAccounts(book.Accounts, uc.ledger.derive(book), opts)
		return nil
	})
	return fa, err
}

// AccountStatement returns the statement of the account with code.
func (uc *ReportUseCase) AccountStatement(ctx context.Context, tenantID, code string) (report.Statement, error) {
	book, err := uc.ledger.LoadBook(ctx, tenantID)
	if err != nil {
		return report.Statement{}, err
	}

	account := findAccount(book.Accounts, code)
	if account == nil {
		return report.Statement{}, domain.ErrAccountNotFound
	}

	return report.AccountStatement(*account, uc.ledger.derive(book)), nil
}

// BalanceSheet returns the financial position of the tenant's book.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context, tenantID string) (report.BalanceSheet, error) {
	var bs report.BalanceSheet
	err := uc.cached(ctx, tenantID, "balance-sheet", &bs, func() error {
		book, err := uc.ledger.LoadBook(ctx, tenantID)
		if err != nil {
			return err
		}
		fa := report.BuildFinalAccounts(book.Accounts, uc.ledger.derive(book), report.FinalAccountsOptions{})
		bs = report.BuildBalanceSheet(fa.Rows, fa.IncomeStatement)
		return nil
	})
	return bs, err
}

// cached serves dst from the cache when the sources have not changed since it
// was stored, and otherwise runs build and stores the result. Cache failures
// are logged and never fail the request.
func (uc *ReportUseCase) cached(ctx context.Context, tenantID, name string, dst any, build func() error) error {
	if !uc.cacheCfg.Enabled {
		return build()
	}

	versions, err := uc.versions.SourceVersions(ctx, tenantID)
	if err != nil {
		return err
	}
	key := reportCacheKey(tenantID, name, versions)

	data, err := uc.cache.Get(ctx, key)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, dst); jsonErr == nil {
			uc.recorder.ReportCache(true)
			return nil
		}
	case !errors.Is(err, ErrCacheMiss):
		uc.log.Warn().Err(err).Str("key", key).Msg("report cache read failed")
	}
	uc.recorder.ReportCache(false)

	if err := build(); err != nil {
		return err
	}

	data, err = json.Marshal(dst)
	if err == nil {
		err = uc.cache.Set(ctx, key, data, uc.cacheCfg.TTL)
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
	return nil
}

// reportCacheKey changes whenever any source collection of the tenant changes.
func reportCacheKey(tenantID, name string, v domain.SourceVersions) string {
	h := xxhash.New()
	for _, c := range []domain.CollectionVersion{v.Accounts, v.Invoices, v.Bonds, v.Expenses} {
		_, _ = fmt.Fprintf(h, "%d:%d;", c.Count, c.LastUpdated.UnixNano())
	}
	return fmt.Sprintf("report:%s:%s:%016x", tenantID, name, h.Sum64())
}
