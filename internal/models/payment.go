package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentMethod enumerates how a payment was made.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

// Valid reports whether the method is one of the known values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodCash, PaymentMethodCheque:
		return true
	}
	return false
}

// PaymentStatus is the payment state machine:
// pending -> completed, pending -> failed, completed -> refunded.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// CanTransition reports whether moving from s to next is permitted.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCompleted || next == PaymentStatusFailed
	case PaymentStatusCompleted:
		return next == PaymentStatusRefunded
	}
	return false
}

// Payment records money received. InvoiceID is optional: a payment without an
// invoice link is held as client account credit.
type Payment struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID    *uuid.UUID      `gorm:"index" json:"invoice_id,omitempty"`
	ClientID     *uuid.UUID      `gorm:"index" json:"client_id,omitempty"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Method       PaymentMethod   `json:"method"`
	Status       PaymentStatus   `gorm:"index" json:"status"`
	CustomerName string          `gorm:"index" json:"customer_name"`
	Reference    string          `json:"reference"`
	Details      datatypes.JSON  `json:"details,omitempty"` // receipt/gateway payload, free-form
	CreatedBy    string          `json:"created_by"`
	VerifiedBy   string          `json:"verified_by,omitempty"`
	VerifiedAt   *time.Time      `json:"verified_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
