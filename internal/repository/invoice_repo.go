package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Expose DB if needed
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// GetByID fetches a single invoice with its line items.
func (r *InvoiceRepository) GetByID(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("Items").First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Search returns invoices with optional status filter and customer-name fuzzy
// search (simple LIKE).
func (r *InvoiceRepository) Search(query string, statuses []models.InvoiceStatus) ([]models.Invoice, error) {
	var invoices []models.Invoice

	dbQuery := r.db.Model(&models.Invoice{}).Preload("Items")

	if query != "" {
		dbQuery = dbQuery.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if len(statuses) > 0 {
		dbQuery = dbQuery.Where("status IN ?", statuses)
	}

	err := dbQuery.Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

// ByClient returns all invoices linked to a client.
func (r *InvoiceRepository) ByClient(clientID uuid.UUID) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("client_id = ?", clientID).Find(&invoices).Error
	return invoices, err
}
