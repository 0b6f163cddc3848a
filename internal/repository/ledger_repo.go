package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Expose DB if needed
func (r *LedgerRepository) DB() *gorm.DB {
	return r.db
}

// All returns every ledger entry in insertion order.
func (r *LedgerRepository) All() ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.Order("sequence ASC").Find(&entries).Error
	return entries, err
}

// Last returns the most recently appended entry, or nil when the ledger is empty.
func (r *LedgerRepository) Last() (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := r.db.Order("sequence DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ByCategory returns entries of one category in insertion order.
func (r *LedgerRepository) ByCategory(category string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.Where("category = ?", category).Order("sequence ASC").Find(&entries).Error
	return entries, err
}
