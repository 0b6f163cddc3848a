package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntryType is the side of a ledger movement.
type LedgerEntryType string

const (
	LedgerEntryCredit LedgerEntryType = "credit"
	LedgerEntryDebit  LedgerEntryType = "debit"
)

// Valid reports whether the entry type is one of the known values.
func (t LedgerEntryType) Valid() bool {
	return t == LedgerEntryCredit || t == LedgerEntryDebit
}

// LedgerEntry is one row of the append-only general ledger. Balance is the
// running balance after this entry; entries are never mutated or deleted,
// corrections are recorded as new offsetting entries.
type LedgerEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Sequence    int             `gorm:"uniqueIndex" json:"sequence"`
	Description string          `json:"description"`
	Type        LedgerEntryType `gorm:"index" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Category    string          `gorm:"index" json:"category"`
	Reference   string          `json:"reference,omitempty"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Signed returns the entry amount with its sign under the running-balance
// convention: credits increase the balance, debits decrease it.
func (e LedgerEntry) Signed() decimal.Decimal {
	if e.Type == LedgerEntryDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}
