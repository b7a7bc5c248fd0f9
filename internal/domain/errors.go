package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrDuplicateAccountCode = errors.New("account code already exists")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrProtectedAccount     = errors.New("system account is protected")

	// Source errors
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrBondNotFound    = errors.New("bond not found")
	ErrExpenseNotFound = errors.New("expense not found")

	// Tenant errors
	ErrTenantNotFound          = errors.New("tenant not found")
	ErrTenantExists            = errors.New("tenant already exists")
	ErrTenantMismatch          = errors.New("token does not grant access to this tenant")
	ErrMissingWellKnownAccount = errors.New("well-known account missing from chart")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// ProtectedAccountError is returned when a mutation would break the
// invariants of a system account.
type ProtectedAccountError struct {
	Code      string
	Operation string
	Reason    string
}

func (e *ProtectedAccountError) Error() string {
	return fmt.Sprintf("cannot %s system account %s: %s", e.Operation, e.Code, e.Reason)
}

// Is lets errors.Is match ErrProtectedAccount.
func (e *ProtectedAccountError) Is(target error) bool {
	return target == ErrProtectedAccount
}

// MissingAccountsError lists well-known codes absent from a tenant's chart.
type MissingAccountsError struct {
	Codes []string
}

func (e *MissingAccountsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingWellKnownAccount, strings.Join(e.Codes, ", "))
}

func (e *MissingAccountsError) Unwrap() error {
	return ErrMissingWellKnownAccount
}
