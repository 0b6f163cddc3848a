package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Expose DB if needed
func (r *PaymentRepository) DB() *gorm.DB {
	return r.db
}

// GetByID fetches a single payment.
func (r *PaymentRepository) GetByID(id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// List returns payments, newest first, optionally filtered by status.
func (r *PaymentRepository) List(status models.PaymentStatus) ([]models.Payment, error) {
	var payments []models.Payment
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&payments).Error
	return payments, err
}

// ByClient returns all payments linked to a client.
func (r *PaymentRepository) ByClient(clientID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("client_id = ?", clientID).Find(&payments).Error
	return payments, err
}

// ByInvoice returns all payments recorded against an invoice.
func (r *PaymentRepository) ByInvoice(invoiceID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("invoice_id = ?", invoiceID).Find(&payments).Error
	return payments, err
}
