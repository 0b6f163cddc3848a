package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
)

// Service posts balanced double-entry journal entries and maintains account
// balances. Every mutating operation runs inside a single transaction.
type Service struct {
	journalRepo *repository.JournalRepository
	accountRepo *repository.AccountRepository
	db          *gorm.DB
}

func NewService(
	journalRepo *repository.JournalRepository,
	accountRepo *repository.AccountRepository,
) *Service {
	return &Service{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		db:          journalRepo.DB(),
	}
}

// LineParams is one input line for a posting. Exactly one of Debit/Credit must
// be positive.
type LineParams struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	EntityName  string
}

// PostParams holds parameters for posting a journal entry.
type PostParams struct {
	Date            time.Time
	Description     string
	Source          models.JournalSource
	CreatedBy       string
	Lines           []LineParams
	ReversesEntryID *uuid.UUID
}

// PostEntry validates and posts a journal entry. Posting is all-or-nothing: an
// unbalanced or otherwise invalid entry leaves the journal and every account
// balance untouched.
func (s *Service) PostEntry(params PostParams) (*models.JournalEntry, error) {
	var entry *models.JournalEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.PostInTx(tx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PostInTx posts within an existing transaction. Callers whose own state
// change must commit atomically with the posting (invoice payment, mediation)
// use this directly.
func (s *Service) PostInTx(tx *gorm.DB, params PostParams) (*models.JournalEntry, error) {
	totalDebit, totalCredit, err := validateLines(params.Lines)
	if err != nil {
		return nil, err
	}
	if !params.Source.Valid() {
		return nil, models.ValidationError{Field: "source", Reason: fmt.Sprintf("unknown source %q", params.Source)}
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	var maxNumber int
	if err := tx.Model(&models.JournalEntry{}).
		Select("COALESCE(MAX(entry_number), 0)").Scan(&maxNumber).Error; err != nil {
		return nil, err
	}

	entry := &models.JournalEntry{
		ID:              uuid.New(),
		EntryNumber:     maxNumber + 1,
		Description:     params.Description,
		Date:            date,
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		IsPosted:        true,
		ReversesEntryID: params.ReversesEntryID,
		Source:          params.Source,
		CreatedBy:       params.CreatedBy,
		CreatedAt:       time.Now(),
	}

	for _, line := range params.Lines {
		account, err := s.loadAccount(tx, line.AccountCode)
		if err != nil {
			return nil, err
		}

		entry.Lines = append(entry.Lines, models.JournalLine{
			ID:             uuid.New(),
			JournalEntryID: entry.ID,
			AccountCode:    account.Code,
			AccountName:    account.Name,
			Debit:          line.Debit,
			Credit:         line.Credit,
			EntityName:     line.EntityName,
		})

		// Assets and expenses increase on debit; liabilities and revenue on credit.
		delta := line.Debit.Sub(line.Credit)
		if !account.Type.NormalDebit() {
			delta = delta.Neg()
		}
		newBalance := account.Balance.Add(delta)
		if err := tx.Model(&models.Account{}).
			Where("id = ?", account.ID).
			Update("balance", newBalance).Error; err != nil {
			return nil, err
		}
	}

	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ReverseEntry posts a mirror entry (debits and credits swapped) for a posted
// entry and flags the original as reversed. This is the only sanctioned way to
// undo a posting; posted entries are never mutated in place.
func (s *Service) ReverseEntry(entryID uuid.UUID, actor, reason string) (*models.JournalEntry, error) {
	var reversal *models.JournalEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var original models.JournalEntry
		if err := tx.Preload("Lines").First(&original, "id = ?", entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFoundError{Entity: "journal entry", ID: entryID.String()}
			}
			return err
		}
		if !original.IsPosted || original.IsReversed {
			return models.InvalidStateError{
				Entity:    "journal entry",
				Current:   fmt.Sprintf("posted=%t reversed=%t", original.IsPosted, original.IsReversed),
				Attempted: "be reversed",
			}
		}

		lines := make([]LineParams, 0, len(original.Lines))
		for _, l := range original.Lines {
			lines = append(lines, LineParams{
				AccountCode: l.AccountCode,
				Debit:       l.Credit,
				Credit:      l.Debit,
				EntityName:  l.EntityName,
			})
		}

		description := fmt.Sprintf("Reversal of entry #%d: %s", original.EntryNumber, reason)
		var err error
		reversal, err = s.PostInTx(tx, PostParams{
			Date:            time.Now(),
			Description:     description,
			Source:          models.JournalSourceManual,
			CreatedBy:       actor,
			Lines:           lines,
			ReversesEntryID: &original.ID,
		})
		if err != nil {
			return err
		}

		return tx.Model(&models.JournalEntry{}).
			Where("id = ?", original.ID).
			Update("is_reversed", true).Error
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

// Get fetches a single entry with its lines.
func (s *Service) Get(id uuid.UUID) (*models.JournalEntry, error) {
	entry, err := s.journalRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFoundError{Entity: "journal entry", ID: id.String()}
	}
	return entry, err
}

// Entries returns all posted entries in posting order.
func (s *Service) Entries() ([]models.JournalEntry, error) {
	return s.journalRepo.All()
}

func (s *Service) loadAccount(tx *gorm.DB, code string) (*models.Account, error) {
	var account models.Account
	err := tx.First(&account, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFoundError{Entity: "account", ID: code}
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// validateLines enforces the line-level invariants and returns the entry
// totals. An empty line set, a line with both or neither side, a negative
// amount, or more than 2 decimal places is rejected; unequal totals are the
// fundamental double-entry violation.
func validateLines(lines []LineParams) (totalDebit, totalCredit decimal.Decimal, err error) {
	if len(lines) == 0 {
		return decimal.Zero, decimal.Zero, models.ValidationError{Field: "lines", Reason: "entry has no lines"}
	}

	hundred := decimal.NewFromInt(100)
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return decimal.Zero, decimal.Zero, models.ValidationError{
				Field:  fmt.Sprintf("lines[%d]", i),
				Reason: "amounts must not be negative",
			}
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			return decimal.Zero, decimal.Zero, models.ValidationError{
				Field:  fmt.Sprintf("lines[%d]", i),
				Reason: "line must have exactly one of debit or credit",
			}
		}
		amount := line.Debit.Add(line.Credit)
		if !amount.Mul(hundred).Equal(amount.Mul(hundred).Floor()) {
			return decimal.Zero, decimal.Zero, models.ValidationError{
				Field:  fmt.Sprintf("lines[%d]", i),
				Reason: fmt.Sprintf("amount %s has more than 2 decimal places", amount),
			}
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return decimal.Zero, decimal.Zero, models.UnbalancedEntryError{
			TotalDebit:  totalDebit,
			TotalCredit: totalCredit,
		}
	}
	return totalDebit, totalCredit, nil
}
