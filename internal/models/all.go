package models

// All returns every persisted model, in migration order.
func All() []any {
	return []any{
		&Account{},
		&Client{},
		&Invoice{},
		&InvoiceLineItem{},
		&InvoiceEditLog{},
		&Payment{},
		&LedgerEntry{},
		&JournalEntry{},
		&JournalLine{},
	}
}
