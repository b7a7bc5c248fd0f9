package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes sales from purchases.
type InvoiceType string

const (
	InvoiceTypeSale     InvoiceType = "sale"
	InvoiceTypePurchase InvoiceType = "purchase"
)

// Valid reports whether t is a known invoice type.
func (t InvoiceType) Valid() bool {
	return t == InvoiceTypeSale || t == InvoiceTypePurchase
}

// InvoiceStatus is the settlement state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusCredit    InvoiceStatus = "credit"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusPending, InvoiceStatusCancelled, InvoiceStatusCredit:
		return true
	}
	return false
}

// Invoice is a sale or purchase document.
type Invoice struct {
	ID          string
	TenantID    string
	Number      string
	Type        InvoiceType
	Status      InvoiceStatus
	Date        time.Time
	Total       decimal.Decimal
	ContactName string
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BondType distinguishes money received from money paid out.
type BondType string

const (
	BondTypeReceipt BondType = "receipt"
	BondTypePayment BondType = "payment"
)

// Valid reports whether t is a known bond type.
func (t BondType) Valid() bool {
	return t == BondTypeReceipt || t == BondTypePayment
}

// PaymentMethod selects the cash or bank account a bond settles through.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodBank PaymentMethod = "bank"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodBank
}

// Bond is a cash or bank receipt/payment voucher.
type Bond struct {
	ID            string
	TenantID      string
	Type          BondType
	Date          time.Time
	PaymentMethod PaymentMethod
	Amount        decimal.Decimal
	EntityName    string
	Currency      string
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Expense is an operating cost paid in cash.
type Expense struct {
	ID        string
	TenantID  string
	Date      time.Time
	Amount    decimal.Decimal
	Title     string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tenant owns exactly one accounting book.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// CollectionVersion summarises one stored collection for change detection.
type CollectionVersion struct {
	Count       int64
	LastUpdated time.Time
}

// SourceVersions changes whenever any record of a tenant's book is created,
// updated or deleted.
type SourceVersions struct {
	Accounts CollectionVersion
	Invoices CollectionVersion
	Bonds    CollectionVersion
	Expenses CollectionVersion
}
