package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a record as money in or money out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// IsValid reports whether t is one of the closed set of transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Categories is the closed list of record categories.
var Categories = []string{
	"Sales",
	"Services",
	"Supplies",
	"Inventory",
	"Travel",
	"Meals",
	"Utilities",
	"Rent",
	"Payroll",
	"Insurance",
	"Taxes",
	"Other",
}

// IsValidCategory reports whether name is in the closed category list.
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Record is a single dated financial entry against a business.
// Amount is an exact decimal; binary floats are never used for money.
type Record struct {
	RecordID        string          `json:"recordID"`
	BusinessID      string          `json:"businessID"`
	OccurredAt      time.Time       `json:"occurredAt"`
	Amount          decimal.Decimal `json:"amount"`
	Payee           string          `json:"payee"` // store or payee name
	Category        string          `json:"category"`
	TransactionType TransactionType `json:"transactionType"`
	Notes           *string         `json:"notes,omitempty"`
	ReceiptRef      *string         `json:"receiptRef,omitempty"` // opaque handle to a stored receipt image
	AuditFields
}
