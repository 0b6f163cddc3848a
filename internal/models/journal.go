package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalSource identifies what produced a journal entry.
type JournalSource string

const (
	JournalSourceInvoice   JournalSource = "invoice"
	JournalSourcePayment   JournalSource = "payment"
	JournalSourcePayroll   JournalSource = "payroll"
	JournalSourceManual    JournalSource = "manual"
	JournalSourceMediation JournalSource = "mediation"
)

// Valid reports whether the source is one of the known values.
func (s JournalSource) Valid() bool {
	switch s {
	case JournalSourceInvoice, JournalSourcePayment, JournalSourcePayroll,
		JournalSourceManual, JournalSourceMediation:
		return true
	}
	return false
}

// JournalEntry is a balanced double-entry posting. TotalDebit equals
// TotalCredit for every entry that reaches the journal; unbalanced entries are
// rejected before anything is written.
type JournalEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	EntryNumber     int             `gorm:"uniqueIndex" json:"entry_number"`
	Description     string          `json:"description"`
	Date            time.Time       `gorm:"index" json:"date"`
	Lines           []JournalLine   `gorm:"foreignKey:JournalEntryID" json:"lines"`
	TotalDebit      decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_debit"`
	TotalCredit     decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_credit"`
	IsPosted        bool            `gorm:"index" json:"is_posted"`
	IsReversed      bool            `json:"is_reversed"`
	ReversesEntryID *uuid.UUID      `gorm:"index" json:"reverses_entry_id,omitempty"`
	Source          JournalSource   `gorm:"index" json:"source"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// JournalLine is one side of a journal entry: exactly one of Debit or Credit
// is non-zero.
type JournalLine struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	JournalEntryID uuid.UUID       `gorm:"type:uuid;index" json:"journal_entry_id"`
	AccountCode    string          `gorm:"index" json:"account_code"`
	AccountName    string          `json:"account_name"`
	Debit          decimal.Decimal `gorm:"type:decimal(18,2)" json:"debit"`
	Credit         decimal.Decimal `gorm:"type:decimal(18,2)" json:"credit"`
	EntityName     string          `json:"entity_name,omitempty"`
}
