package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Expose DB if needed
func (r *ClientRepository) DB() *gorm.DB {
	return r.db
}

// GetByID fetches a single client.
func (r *ClientRepository) GetByID(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Search performs a fuzzy name search (simple LIKE).
func (r *ClientRepository) Search(query string) ([]models.Client, error) {
	var clients []models.Client
	dbQuery := r.db.Model(&models.Client{})
	if query != "" {
		dbQuery = dbQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	err := dbQuery.Order("name ASC").Find(&clients).Error
	return clients, err
}
