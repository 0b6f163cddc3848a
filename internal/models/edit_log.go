package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InvoiceEditLog is the audit trail for invoice edit requests. Details holds a
// JSON snapshot of the invoice's financial fields at the time of the edit.
type InvoiceEditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID      `gorm:"index" json:"invoice_id"`
	Action      string         `json:"action"`
	PerformedBy string         `json:"performed_by"`
	Reason      string         `json:"reason"`
	Details     datatypes.JSON `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
