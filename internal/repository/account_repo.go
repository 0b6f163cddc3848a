package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ksuibraheem/arba-sub002/internal/models"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Expose DB if needed
func (r *AccountRepository) DB() *gorm.DB {
	return r.db
}

// Seed inserts the chart of accounts, skipping codes that already exist.
func (r *AccountRepository) Seed(accounts []models.Account) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&accounts).Error
}

// All returns the full chart ordered by code.
func (r *AccountRepository) All() ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Order("code ASC").Find(&accounts).Error
	return accounts, err
}

// GetByCode fetches a single account by its chart code.
func (r *AccountRepository) GetByCode(code string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ByType returns all accounts of the given type, ordered by code.
func (r *AccountRepository) ByType(t models.AccountType) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Where("type = ?", t).Order("code ASC").Find(&accounts).Error
	return accounts, err
}
