package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
)

// Service is the append-only ledger entry store. Entries are never mutated or
// deleted once appended; corrections are new offsetting entries.
type Service struct {
	repo *repository.LedgerRepository
	db   *gorm.DB
}

func NewService(repo *repository.LedgerRepository) *Service {
	return &Service{repo: repo, db: repo.DB()}
}

// AddParams holds parameters for appending a ledger entry.
type AddParams struct {
	Description string
	Type        models.LedgerEntryType
	Amount      decimal.Decimal
	Category    string
	Reference   string
	CreatedBy   string
}

// Add appends an entry, computing the running balance from the previous
// entry's balance (0 when the ledger is empty).
func (s *Service) Add(params AddParams) (*models.LedgerEntry, error) {
	var entry *models.LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.AddInTx(tx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// AddInTx appends within an existing transaction; used by the payment recorder
// so the ledger movement commits atomically with the payment state change.
func (s *Service) AddInTx(tx *gorm.DB, params AddParams) (*models.LedgerEntry, error) {
	if !params.Amount.IsPositive() {
		return nil, models.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if !params.Type.Valid() {
		return nil, models.ValidationError{Field: "type", Reason: "must be credit or debit"}
	}
	if params.Description == "" {
		return nil, models.ValidationError{Field: "description", Reason: "description is required"}
	}

	prevBalance := decimal.Zero
	sequence := 1

	var last models.LedgerEntry
	err := tx.Order("sequence DESC").First(&last).Error
	switch {
	case err == nil:
		prevBalance = last.Balance
		sequence = last.Sequence + 1
	case errors.Is(err, gorm.ErrRecordNotFound):
		// empty ledger
	default:
		return nil, err
	}

	entry := &models.LedgerEntry{
		ID:          uuid.New(),
		Sequence:    sequence,
		Description: params.Description,
		Type:        params.Type,
		Amount:      params.Amount,
		Category:    params.Category,
		Reference:   params.Reference,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   time.Now(),
	}
	entry.Balance = prevBalance.Add(entry.Signed())

	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Entries returns every ledger entry in insertion order.
func (s *Service) Entries() ([]models.LedgerEntry, error) {
	return s.repo.All()
}

// CurrentBalance returns the last entry's balance, or 0 for an empty ledger.
func (s *Service) CurrentBalance() (decimal.Decimal, error) {
	last, err := s.repo.Last()
	if err != nil {
		return decimal.Zero, err
	}
	if last == nil {
		return decimal.Zero, nil
	}
	return last.Balance, nil
}
