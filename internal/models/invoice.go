package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
// draft -> pending -> {paid | cancelled}, and pending -> overdue once the due
// date passes. Overdue invoices can still be paid. paid and cancelled are terminal.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed from this status.
func (s InvoiceStatus) Terminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// Payable reports whether the invoice can still be marked paid.
func (s InvoiceStatus) Payable() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusPending || s == InvoiceStatusOverdue
}

type Invoice struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNumber string            `gorm:"uniqueIndex" json:"invoice_number"`
	ClientID      *uuid.UUID        `gorm:"index" json:"client_id,omitempty"`
	CustomerName  string            `gorm:"index" json:"customer_name"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	Items         []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"items"`
	Subtotal      decimal.Decimal   `gorm:"type:decimal(18,2)" json:"subtotal"`
	Tax           decimal.Decimal   `gorm:"type:decimal(18,2)" json:"tax"`
	Discount      decimal.Decimal   `gorm:"type:decimal(18,2)" json:"discount"`
	Total         decimal.Decimal   `gorm:"type:decimal(18,2)" json:"total"`
	Status        InvoiceStatus     `gorm:"index" json:"status"`
	IssueDate     time.Time         `json:"issue_date"`
	DueDate       time.Time         `gorm:"index" json:"due_date"`
	PaidAt        *time.Time        `json:"paid_at,omitempty"`
	IsEdited      bool              `json:"is_edited"`
	EditCount     int               `json:"edit_count"`
	CreatedBy     string            `json:"created_by"`
	CreatedAt     time.Time         `json:"created_at"`
}

type InvoiceLineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index" json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2)" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2)" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2)" json:"line_total"`
}
