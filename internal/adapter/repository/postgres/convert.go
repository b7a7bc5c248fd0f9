package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/infrastructure/postgres/generated"
	"github.com/iho/storebooks/internal/usecase"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	return hasPgCode(err, pgErrUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgErrForeignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// tenantWriteError maps a rejected tenant_id reference to ErrTenantNotFound.
func tenantWriteError(err error) error {
	if isForeignKeyViolation(err) {
		return domain.ErrTenantNotFound
	}
	return err
}

// queriesFor runs on the transaction when one is given, on db otherwise.
func queriesFor(db generated.DBTX, tx usecase.Transaction) *generated.Queries {
	if t, ok := tx.(*Tx); ok && t != nil {
		return generated.New(t.PgxTx())
	}
	return generated.New(db)
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}
