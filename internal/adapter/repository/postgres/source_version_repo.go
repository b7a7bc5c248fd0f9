package postgres

import (
	"context"
	"time"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/infrastructure/postgres/generated"
)

// SourceVersionRepository implements usecase.SourceVersionRepository.
type SourceVersionRepository struct {
	queries *generated.Queries
	now     func() time.Time
}

// NewSourceVersionRepository creates a new SourceVersionRepository.
func NewSourceVersionRepository(db generated.DBTX) *SourceVersionRepository {
	return &SourceVersionRepository{
		queries: generated.New(db),
		now:     time.Now,
	}
}

// SourceVersions reads the row count and last change of every collection.
func (r *SourceVersionRepository) SourceVersions(ctx context.Context, tenantID string) (domain.SourceVersions, error) {
	row, err := r.queries.GetSourceVersions(ctx, tenantID)
	if err != nil {
		return domain.SourceVersions{}, err
	}

	return domain.SourceVersions{
		Accounts: domain.CollectionVersion{Count: row.AccountsCount, LastUpdated: pgTimestamptzToTime(row.AccountsUpdated)},
		Invoices: domain.CollectionVersion{Count: row.InvoicesCount, LastUpdated: pgTimestamptzToTime(row.InvoicesUpdated)},
		Bonds:    domain.CollectionVersion{Count: row.BondsCount, LastUpdated: pgTimestamptzToTime(row.BondsUpdated)},
		Expenses: domain.CollectionVersion{Count: row.ExpensesCount, LastUpdated: pgTimestamptzToTime(row.ExpensesUpdated)},
	}, nil
}

func (r *SourceVersionRepository) recordDeletion(ctx context.Context, tenantID, source string) error {
	return r.queries.RecordSourceDeletion(ctx, generated.RecordSourceDeletionParams{
		TenantID:  tenantID,
		Source:    source,
		DeletedAt: timeToPgTimestamptz(r.now()),
	})
}
