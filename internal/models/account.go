package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType classifies an account in the chart of accounts. The type
// determines the account's normal balance side.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// NormalDebit reports whether the account increases on the debit side.
// Assets and expenses are debit-normal; liabilities and revenue are
// credit-normal.
func (t AccountType) NormalDebit() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Valid reports whether the type is one of the known classifications.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Account is one row of the chart of accounts. Balance is maintained by the
// journal engine in the account's natural sign: a posting that increases the
// account on its normal side increases Balance.
type Account struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code           string          `gorm:"uniqueIndex" json:"code"`
	Name           string          `json:"name"`
	Type           AccountType     `gorm:"index" json:"type"`
	Balance        decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	EntityCategory string          `json:"entity_category,omitempty"` // buyer, supplier, employee
	CreatedAt      time.Time       `json:"created_at"`
}
