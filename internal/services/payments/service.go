package payments

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
	"github.com/ksuibraheem/arba-sub002/internal/services/ledger"
)

// Service records and verifies payments. Completed payments are mirrored into
// the ledger in the same transaction as the status change.
type Service struct {
	repo        *repository.PaymentRepository
	invoiceRepo *repository.InvoiceRepository
	clientRepo  *repository.ClientRepository
	ledger      *ledger.Service
	db          *gorm.DB
}

func NewService(
	repo *repository.PaymentRepository,
	invoiceRepo *repository.InvoiceRepository,
	clientRepo *repository.ClientRepository,
	ledgerSvc *ledger.Service,
) *Service {
	return &Service{
		repo:        repo,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		ledger:      ledgerSvc,
		db:          repo.DB(),
	}
}

// RecordParams holds parameters for recording a payment. FromUpload marks
// payments arriving through the receipt-upload flow: they start pending and
// require verification; manual recordings are pre-verified and start completed.
type RecordParams struct {
	InvoiceID    *uuid.UUID
	ClientID     *uuid.UUID
	Amount       decimal.Decimal
	Method       models.PaymentMethod
	CustomerName string
	Reference    string
	CreatedBy    string
	FromUpload   bool
	Details      datatypes.JSON
}

// Record creates a payment. A payment without an invoice link is held as
// client account credit.
func (s *Service) Record(params RecordParams) (*models.Payment, error) {
	if !params.Amount.IsPositive() {
		return nil, models.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if !params.Method.Valid() {
		return nil, models.ValidationError{Field: "method", Reason: fmt.Sprintf("unknown method %q", params.Method)}
	}
	if params.CustomerName == "" {
		return nil, models.ValidationError{Field: "customer_name", Reason: "name is required"}
	}

	if params.InvoiceID != nil {
		if _, err := s.invoiceRepo.GetByID(*params.InvoiceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NotFoundError{Entity: "invoice", ID: params.InvoiceID.String()}
			}
			return nil, err
		}
	}

	status := models.PaymentStatusCompleted
	if params.FromUpload {
		status = models.PaymentStatusPending
	}

	payment := &models.Payment{
		ID:           uuid.New(),
		InvoiceID:    params.InvoiceID,
		ClientID:     params.ClientID,
		Amount:       params.Amount,
		Method:       params.Method,
		Status:       status,
		CustomerName: params.CustomerName,
		Reference:    params.Reference,
		Details:      params.Details,
		CreatedBy:    params.CreatedBy,
		CreatedAt:    time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		if payment.Status == models.PaymentStatusCompleted {
			return s.appendLedgerEntry(tx, payment, models.LedgerEntryCredit, "Payment from "+payment.CustomerName, payment.CreatedBy)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Verify moves a pending payment to completed. Any other starting state is an
// invalid transition.
func (s *Service) Verify(id uuid.UUID, verifier string) (*models.Payment, error) {
	return s.transition(id, models.PaymentStatusCompleted, "be verified", func(tx *gorm.DB, payment *models.Payment) error {
		now := time.Now()
		payment.VerifiedBy = verifier
		payment.VerifiedAt = &now
		if err := tx.Model(&models.Payment{}).Where("id = ?", payment.ID).
			Updates(map[string]interface{}{
				"verified_by": verifier,
				"verified_at": now,
			}).Error; err != nil {
			return err
		}
		return s.appendLedgerEntry(tx, payment, models.LedgerEntryCredit, "Payment from "+payment.CustomerName, verifier)
	})
}

// Fail moves a pending payment to failed.
func (s *Service) Fail(id uuid.UUID) (*models.Payment, error) {
	return s.transition(id, models.PaymentStatusFailed, "be failed", nil)
}

// Refund moves a completed payment to refunded and appends an offsetting
// debit ledger entry.
func (s *Service) Refund(id uuid.UUID, actor string) (*models.Payment, error) {
	return s.transition(id, models.PaymentStatusRefunded, "be refunded", func(tx *gorm.DB, payment *models.Payment) error {
		return s.appendLedgerEntry(tx, payment, models.LedgerEntryDebit, "Refund to "+payment.CustomerName, actor)
	})
}

// LinkToClient associates a payment with a client. Purely additive: no invoice
// state is recomputed.
func (s *Service) LinkToClient(clientID, paymentID uuid.UUID) (*models.Payment, error) {
	if _, err := s.clientRepo.GetByID(clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NotFoundError{Entity: "client", ID: clientID.String()}
		}
		return nil, err
	}

	payment, err := s.get(paymentID)
	if err != nil {
		return nil, err
	}

	payment.ClientID = &clientID
	if err := s.db.Model(&models.Payment{}).Where("id = ?", payment.ID).
		Update("client_id", clientID).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// ClientSummary derives the client's financial position from its invoices and
// payments. Nothing is stored, so repeated calls with no intervening mutation
// return identical results.
func (s *Service) ClientSummary(clientID uuid.UUID) (*models.ClientFinancialSummary, error) {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NotFoundError{Entity: "client", ID: clientID.String()}
		}
		return nil, err
	}

	invoices, err := s.invoiceRepo.ByClient(clientID)
	if err != nil {
		return nil, err
	}
	paymentsList, err := s.repo.ByClient(clientID)
	if err != nil {
		return nil, err
	}

	summary := &models.ClientFinancialSummary{
		ClientID: client.ID,
		Name:     client.Name,
	}
	for _, inv := range invoices {
		// drafts are not issued yet and cancelled invoices are void;
		// neither counts toward what the client owes
		if inv.Status == models.InvoiceStatusDraft || inv.Status == models.InvoiceStatusCancelled {
			continue
		}
		summary.TotalInvoiced = summary.TotalInvoiced.Add(inv.Total)
		summary.InvoiceCount++
	}
	for _, p := range paymentsList {
		if p.Status != models.PaymentStatusCompleted {
			continue
		}
		summary.TotalPaid = summary.TotalPaid.Add(p.Amount)
		summary.PaymentCount++
	}

	summary.TotalDue = summary.TotalInvoiced.Sub(summary.TotalPaid)
	if summary.TotalDue.IsPositive() {
		summary.DebitBalance = summary.TotalDue
	} else {
		summary.CreditBalance = summary.TotalDue.Neg()
	}
	return summary, nil
}

// CreateClient registers a client so payments and invoices can be linked to it.
func (s *Service) CreateClient(name, email, phone string) (*models.Client, error) {
	if name == "" {
		return nil, models.ValidationError{Field: "name", Reason: "name is required"}
	}
	client := &models.Client{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// SearchClients performs a fuzzy name search.
func (s *Service) SearchClients(query string) ([]models.Client, error) {
	return s.clientRepo.Search(query)
}

// Get fetches one payment.
func (s *Service) Get(id uuid.UUID) (*models.Payment, error) {
	return s.get(id)
}

// List returns payments, optionally filtered by status.
func (s *Service) List(status models.PaymentStatus) ([]models.Payment, error) {
	return s.repo.List(status)
}

func (s *Service) get(id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFoundError{Entity: "payment", ID: id.String()}
	}
	return payment, err
}

// transition flips the payment status inside one transaction. The guard reads
// through tx and the flip is conditional on the status it read, so of two
// concurrent transitions on the same payment exactly one applies; the other
// gets an InvalidStateError.
func (s *Service) transition(
	id uuid.UUID,
	next models.PaymentStatus,
	attempted string,
	apply func(tx *gorm.DB, payment *models.Payment) error,
) (*models.Payment, error) {
	var payment *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		payment, err = loadPayment(tx, id)
		if err != nil {
			return err
		}
		stateErr := models.InvalidStateError{
			Entity:    "payment",
			Current:   string(payment.Status),
			Attempted: attempted,
		}
		if !payment.Status.CanTransition(next) {
			return stateErr
		}

		result := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, payment.Status).
			Update("status", next)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return stateErr
		}

		if apply != nil {
			if err := apply(tx, payment); err != nil {
				return err
			}
		}
		payment.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func loadPayment(tx *gorm.DB, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := tx.First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFoundError{Entity: "payment", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Service) appendLedgerEntry(tx *gorm.DB, payment *models.Payment, entryType models.LedgerEntryType, description, actor string) error {
	reference := payment.Reference
	if reference == "" {
		reference = payment.ID.String()
	}
	_, err := s.ledger.AddInTx(tx, ledger.AddParams{
		Description: description,
		Type:        entryType,
		Amount:      payment.Amount,
		Category:    "payment",
		Reference:   reference,
		CreatedBy:   actor,
	})
	return err
}
