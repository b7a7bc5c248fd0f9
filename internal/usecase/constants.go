package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds the provisioning transaction.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyInFlight is stored under a key while its first request runs.
	IdempotencyInFlight = "processing"

	// DefaultReportCacheTTL applies when the report cache is enabled without a TTL.
	DefaultReportCacheTTL = 5 * time.Minute
)

// Source names used in metrics labels and logs.
const (
	SourceAccount = "account"
	SourceInvoice = "invoice"
	SourceBond    = "bond"
	SourceExpense = "expense"
)

// Mutation names used in metrics labels and logs.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)
