package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
)

type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Expose DB if needed
func (r *JournalRepository) DB() *gorm.DB {
	return r.db
}

// GetByID fetches a journal entry with its lines.
func (r *JournalRepository) GetByID(id uuid.UUID) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := r.db.Preload("Lines").First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// All returns posted entries with lines, ordered by entry number.
func (r *JournalRepository) All() ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := r.db.Preload("Lines").Where("is_posted = ?", true).
		Order("entry_number ASC").Find(&entries).Error
	return entries, err
}

// PostedBetween returns posted entries dated within the closed range [start, end].
func (r *JournalRepository) PostedBetween(start, end time.Time) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := r.db.Preload("Lines").
		Where("is_posted = ? AND date >= ? AND date <= ?", true, start, end).
		Order("entry_number ASC").Find(&entries).Error
	return entries, err
}
