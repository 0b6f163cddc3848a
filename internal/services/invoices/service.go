package invoices

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
	"github.com/ksuibraheem/arba-sub002/internal/services/journal"
)

// Service manages the invoice lifecycle. Marking an invoice paid posts the
// revenue-recognition journal entry synchronously, in the same transaction as
// the status change.
type Service struct {
	repo    *repository.InvoiceRepository
	journal *journal.Service
	db      *gorm.DB
}

func NewService(repo *repository.InvoiceRepository, journalSvc *journal.Service) *Service {
	return &Service{repo: repo, journal: journalSvc, db: repo.DB()}
}

// CreateParams holds parameters for creating an invoice.
type CreateParams struct {
	ClientID      *uuid.UUID
	CustomerName  string
	CustomerEmail string
	Items         []LineItemParams
	Discount      decimal.Decimal
	IssueDate     time.Time
	DueDate       time.Time
	AsDraft       bool
	CreatedBy     string
}

// Create computes the invoice totals, assigns a unique invoice number and
// stores the invoice in pending (or draft) status.
func (s *Service) Create(params CreateParams) (*models.Invoice, error) {
	if params.CustomerName == "" {
		return nil, models.ValidationError{Field: "customer_name", Reason: "name is required"}
	}
	totals, err := ComputeTotals(params.Items, params.Discount)
	if err != nil {
		return nil, err
	}

	issueDate := params.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	status := models.InvoiceStatusPending
	if params.AsDraft {
		status = models.InvoiceStatusDraft
	}

	var invoice *models.Invoice
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Numbers are zero-padded so the string MAX is also the numeric max;
		// deleted invoices never cause a number to collide with a live one.
		var lastNumber string
		if err := tx.Model(&models.Invoice{}).
			Select("COALESCE(MAX(invoice_number), '')").Scan(&lastNumber).Error; err != nil {
			return err
		}
		next := 1
		if lastNumber != "" {
			if _, err := fmt.Sscanf(lastNumber, "INV-%d", &next); err != nil {
				return fmt.Errorf("parsing invoice number %q: %w", lastNumber, err)
			}
			next++
		}

		invoice = &models.Invoice{
			ID:            uuid.New(),
			InvoiceNumber: fmt.Sprintf("INV-%06d", next),
			ClientID:      params.ClientID,
			CustomerName:  params.CustomerName,
			CustomerEmail: params.CustomerEmail,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Discount:      params.Discount,
			Total:         totals.Total,
			Status:        status,
			IssueDate:     issueDate,
			DueDate:       params.DueDate,
			CreatedBy:     params.CreatedBy,
			CreatedAt:     time.Now(),
		}
		for i, item := range params.Items {
			invoice.Items = append(invoice.Items, models.InvoiceLineItem{
				ID:          uuid.New(),
				InvoiceID:   invoice.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				LineTotal:   totals.Lines[i],
			})
		}
		return tx.Create(invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// MarkAsPaid transitions the invoice to paid and posts revenue recognition:
// debit Cash for the total, credit Subscription Revenue for the net of
// discount, credit VAT Payable for the tax. If the posting fails the status
// change rolls back.
func (s *Service) MarkAsPaid(id uuid.UUID, actor string) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		invoice, err = s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		if !invoice.Status.Payable() {
			return models.InvalidStateError{
				Entity:    "invoice",
				Current:   string(invoice.Status),
				Attempted: "be marked paid",
			}
		}

		now := time.Now()
		invoice.Status = models.InvoiceStatusPaid
		invoice.PaidAt = &now
		if err := tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
			Updates(map[string]interface{}{
				"status":  models.InvoiceStatusPaid,
				"paid_at": now,
			}).Error; err != nil {
			return err
		}

		// A fully discounted invoice has no revenue component and a zero-total
		// invoice has nothing to post; zero lines never reach the journal.
		var lines []journal.LineParams
		if invoice.Total.IsPositive() {
			lines = append(lines, journal.LineParams{AccountCode: models.AccountCash, Debit: invoice.Total, EntityName: invoice.CustomerName})
		}
		if revenue := invoice.Subtotal.Sub(invoice.Discount); revenue.IsPositive() {
			lines = append(lines, journal.LineParams{AccountCode: models.AccountSubscriptionRevenue, Credit: revenue})
		}
		if invoice.Tax.IsPositive() {
			lines = append(lines, journal.LineParams{AccountCode: models.AccountVATPayable, Credit: invoice.Tax})
		}
		if len(lines) == 0 {
			return nil
		}

		_, err = s.journal.PostInTx(tx, journal.PostParams{
			Date:        now,
			Description: fmt.Sprintf("Revenue recognition for %s", invoice.InvoiceNumber),
			Source:      models.JournalSourceInvoice,
			CreatedBy:   actor,
			Lines:       lines,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// Cancel moves the invoice to its terminal cancelled state.
func (s *Service) Cancel(id uuid.UUID) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		invoice, err = s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		if invoice.Status.Terminal() {
			return models.InvalidStateError{
				Entity:    "invoice",
				Current:   string(invoice.Status),
				Attempted: "be cancelled",
			}
		}
		invoice.Status = models.InvoiceStatusCancelled
		return tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
			Update("status", models.InvoiceStatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// RecordEdit registers an edit request: it increments the edit counter and
// appends an audit row with a snapshot of the financial fields. Monetary
// fields are never changed here; corrections to already-posted invoices go
// through a journal reversal and re-post.
func (s *Service) RecordEdit(id uuid.UUID, actor, reason string) (*models.Invoice, error) {
	if reason == "" {
		return nil, models.ValidationError{Field: "reason", Reason: "reason is required"}
	}

	var invoice *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		invoice, err = s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}

		invoice.EditCount++
		invoice.IsEdited = true
		if err := tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
			Updates(map[string]interface{}{
				"edit_count": invoice.EditCount,
				"is_edited":  true,
			}).Error; err != nil {
			return err
		}

		snapshot, err := json.Marshal(map[string]interface{}{
			"subtotal": invoice.Subtotal,
			"tax":      invoice.Tax,
			"discount": invoice.Discount,
			"total":    invoice.Total,
			"status":   invoice.Status,
		})
		if err != nil {
			return err
		}
		return tx.Create(&models.InvoiceEditLog{
			ID:          uuid.New(),
			InvoiceID:   invoice.ID,
			Action:      "edit_requested",
			PerformedBy: actor,
			Reason:      reason,
			Details:     snapshot,
			CreatedAt:   time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// SweepOverdue marks pending invoices whose due date has passed as overdue.
// Overdue invoices remain payable. Returns the number of invoices updated.
func (s *Service) SweepOverdue(now time.Time) (int64, error) {
	result := s.db.Model(&models.Invoice{}).
		Where("status = ? AND due_date < ?", models.InvoiceStatusPending, now).
		Update("status", models.InvoiceStatusOverdue)
	return result.RowsAffected, result.Error
}

// Get fetches one invoice with its line items.
func (s *Service) Get(id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFoundError{Entity: "invoice", ID: id.String()}
	}
	return invoice, err
}

// List returns invoices filtered by status and customer-name search.
func (s *Service) List(query string, statuses []models.InvoiceStatus) ([]models.Invoice, error) {
	return s.repo.Search(query, statuses)
}

func (s *Service) loadForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := tx.Preload("Items").First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFoundError{Entity: "invoice", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
