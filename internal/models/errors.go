package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError rejects malformed input before any state is mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NotFoundError means a referenced record does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidStateError means the requested transition is not permitted from the
// record's current state.
type InvalidStateError struct {
	Entity    string
	Current   string
	Attempted string
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("%s in state %q cannot %s", e.Entity, e.Current, e.Attempted)
}

// UnbalancedEntryError rejects a journal entry whose debits and credits do not
// sum equally. An unbalanced entry must never reach the journal or the account
// balances, by any code path.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e UnbalancedEntryError) Error() string {
	return fmt.Sprintf("unbalanced entry: debits (%s) != credits (%s)",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
}
