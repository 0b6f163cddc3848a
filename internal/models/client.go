package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is a customer the business invoices and receives payments from.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"index" json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientFinancialSummary is derived on demand from the client's invoices and
// payments; it is never stored.
type ClientFinancialSummary struct {
	ClientID      uuid.UUID       `json:"client_id"`
	Name          string          `json:"name"`
	TotalInvoiced decimal.Decimal `json:"total_invoiced"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalDue      decimal.Decimal `json:"total_due"`
	DebitBalance  decimal.Decimal `json:"debit_balance"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
	InvoiceCount  int             `json:"invoice_count"`
	PaymentCount  int             `json:"payment_count"`
}
