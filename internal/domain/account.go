package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the accounting class of a chart-of-accounts entry.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five account classes.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports whether opening balances of this type sit on the debit side.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account is an entry in a tenant's chart of accounts.
type Account struct {
	ID             string
	TenantID       string
	Code           string
	Name           string
	Type           AccountType
	OpeningBalance decimal.Decimal
	Description    string
	SystemAccount  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AccountUpdate carries the requested changes to an account.
// Nil fields are left untouched.
type AccountUpdate struct {
	Code           *string
	Name           *string
	Type           *AccountType
	OpeningBalance *decimal.Decimal
	Description    *string
}

// ApplyUpdate applies u to the account. System accounts refuse code and type
// changes with a *ProtectedAccountError and are left unmodified.
func (a *Account) ApplyUpdate(u AccountUpdate) error {
	if a.SystemAccount {
		if u.Code != nil && *u.Code != a.Code {
			return &ProtectedAccountError{Code: a.Code, Operation: "change code of", Reason: "code of a system account is fixed"}
		}
		if u.Type != nil && *u.Type != a.Type {
			return &ProtectedAccountError{Code: a.Code, Operation: "change type of", Reason: "type of a system account is fixed"}
		}
	}

	if u.Type != nil && !u.Type.Valid() {
		return ErrInvalidAccountType
	}

	if u.Code != nil {
		a.Code = *u.Code
	}
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Type != nil {
		a.Type = *u.Type
	}
	if u.OpeningBalance != nil {
		a.OpeningBalance = *u.OpeningBalance
	}
	if u.Description != nil {
		a.Description = *u.Description
	}

	return nil
}

// CheckDeletable returns a *ProtectedAccountError for system accounts.
func (a *Account) CheckDeletable() error {
	if a.SystemAccount {
		return &ProtectedAccountError{Code: a.Code, Operation: "delete", Reason: "system accounts are part of every book"}
	}
	return nil
}
