package invoices_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
	"github.com/ksuibraheem/arba-sub002/internal/services/invoices"
	"github.com/ksuibraheem/arba-sub002/internal/services/journal"
	"github.com/ksuibraheem/arba-sub002/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newService(t *testing.T) (*invoices.Service, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	journalSvc := journal.NewService(
		repository.NewJournalRepository(db),
		repository.NewAccountRepository(db),
	)
	return invoices.NewService(repository.NewInvoiceRepository(db), journalSvc), db
}

func createInvoice(t *testing.T, svc *invoices.Service, discount string, due time.Time) *models.Invoice {
	t.Helper()
	invoice, err := svc.Create(invoices.CreateParams{
		CustomerName: "Acme Trading",
		Items: []invoices.LineItemParams{
			{Description: "Seats", Quantity: dec("2"), UnitPrice: dec("100")},
			{Description: "Setup", Quantity: dec("1"), UnitPrice: dec("50")},
		},
		Discount:  dec(discount),
		DueDate:   due,
		CreatedBy: "tester",
	})
	require.NoError(t, err)
	return invoice
}

func accountBalance(t *testing.T, db *gorm.DB, code string) decimal.Decimal {
	t.Helper()
	account, err := repository.NewAccountRepository(db).GetByCode(code)
	require.NoError(t, err)
	return account.Balance
}

func TestCreateInvoice(t *testing.T) {
	svc, _ := newService(t)

	invoice := createInvoice(t, svc, "10", time.Now().Add(14*24*time.Hour))

	assert.Equal(t, "INV-000001", invoice.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Len(t, invoice.Items, 2)
	assert.True(t, invoice.Subtotal.Equal(dec("250")), "subtotal %s", invoice.Subtotal)
	assert.True(t, invoice.Tax.Equal(dec("37.50")), "tax %s", invoice.Tax)
	assert.True(t, invoice.Total.Equal(dec("277.50")), "total %s", invoice.Total)

	second := createInvoice(t, svc, "0", time.Now().Add(14*24*time.Hour))
	assert.Equal(t, "INV-000002", second.InvoiceNumber)
}

func TestCreateInvoiceRejectsEmptyItems(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(invoices.CreateParams{
		CustomerName: "Acme Trading",
		DueDate:      time.Now(),
	})
	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestMarkAsPaidPostsRevenueEntry(t *testing.T) {
	svc, db := newService(t)
	invoice := createInvoice(t, svc, "10", time.Now().Add(24*time.Hour))

	paid, err := svc.MarkAsPaid(invoice.ID, "accountant")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	entries, err := repository.NewJournalRepository(db).All()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, models.JournalSourceInvoice, entry.Source)
	assert.True(t, entry.IsPosted)
	assert.True(t, entry.TotalDebit.Equal(entry.TotalCredit))
	assert.True(t, entry.TotalDebit.Equal(dec("277.50")), "total debit %s", entry.TotalDebit)

	assert.True(t, accountBalance(t, db, models.AccountCash).Equal(dec("277.50")))
	assert.True(t, accountBalance(t, db, models.AccountSubscriptionRevenue).Equal(dec("240")))
	assert.True(t, accountBalance(t, db, models.AccountVATPayable).Equal(dec("37.50")))
}

func TestMarkAsPaidFullyDiscounted(t *testing.T) {
	svc, db := newService(t)

	invoice, err := svc.Create(invoices.CreateParams{
		CustomerName: "Acme Trading",
		Items: []invoices.LineItemParams{
			{Description: "Seats", Quantity: dec("1"), UnitPrice: dec("100")},
		},
		Discount:  dec("100"),
		DueDate:   time.Now().Add(24 * time.Hour),
		CreatedBy: "tester",
	})
	require.NoError(t, err)
	assert.True(t, invoice.Total.Equal(dec("15")), "total %s", invoice.Total)

	paid, err := svc.MarkAsPaid(invoice.ID, "accountant")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)

	// no revenue line: only the VAT collected moves
	entries, err := repository.NewJournalRepository(db).All()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Lines, 2)
	assert.True(t, entries[0].TotalDebit.Equal(entries[0].TotalCredit))

	assert.True(t, accountBalance(t, db, models.AccountCash).Equal(dec("15")))
	assert.True(t, accountBalance(t, db, models.AccountSubscriptionRevenue).IsZero())
	assert.True(t, accountBalance(t, db, models.AccountVATPayable).Equal(dec("15")))
}

func TestCreateInvoiceRejectsExcessDiscount(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(invoices.CreateParams{
		CustomerName: "Acme Trading",
		Items: []invoices.LineItemParams{
			{Description: "Seats", Quantity: dec("1"), UnitPrice: dec("100")},
		},
		Discount:  dec("150"),
		DueDate:   time.Now().Add(24 * time.Hour),
		CreatedBy: "tester",
	})
	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestInvoiceNumbersNotRecycled(t *testing.T) {
	svc, db := newService(t)

	first := createInvoice(t, svc, "0", time.Now().Add(24*time.Hour))
	second := createInvoice(t, svc, "0", time.Now().Add(24*time.Hour))
	assert.Equal(t, "INV-000002", second.InvoiceNumber)

	require.NoError(t, db.Delete(&models.Invoice{}, "id = ?", first.ID).Error)

	third := createInvoice(t, svc, "0", time.Now().Add(24*time.Hour))
	assert.Equal(t, "INV-000003", third.InvoiceNumber)
}

func TestMarkAsPaidOnCancelledInvoice(t *testing.T) {
	svc, db := newService(t)
	invoice := createInvoice(t, svc, "0", time.Now().Add(24*time.Hour))

	_, err := svc.Cancel(invoice.ID)
	require.NoError(t, err)

	_, err = svc.MarkAsPaid(invoice.ID, "accountant")
	var stateErr models.InvalidStateError
	require.ErrorAs(t, err, &stateErr)

	// invoice unchanged, nothing posted
	reloaded, err := svc.Get(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCancelled, reloaded.Status)
	assert.Nil(t, reloaded.PaidAt)

	entries, err := repository.NewJournalRepository(db).All()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMarkAsPaidTwice(t *testing.T) {
	svc, _ := newService(t)
	invoice := createInvoice(t, svc, "0", time.Now().Add(24*time.Hour))

	_, err := svc.MarkAsPaid(invoice.ID, "accountant")
	require.NoError(t, err)

	_, err = svc.MarkAsPaid(invoice.ID, "accountant")
	var stateErr models.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}

func TestMarkAsPaidMissingInvoice(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.MarkAsPaid(uuid.New(), "accountant")
	var notFoundErr models.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestRecordEdit(t *testing.T) {
	svc, db := newService(t)
	invoice := createInvoice(t, svc, "0", time.Now().Add(24*time.Hour))

	edited, err := svc.RecordEdit(invoice.ID, "manager", "wrong quantity on line 1")
	require.NoError(t, err)
	assert.True(t, edited.IsEdited)
	assert.Equal(t, 1, edited.EditCount)

	// financial fields untouched
	assert.True(t, edited.Total.Equal(invoice.Total))

	var logs []models.InvoiceEditLog
	require.NoError(t, db.Where("invoice_id = ?", invoice.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "manager", logs[0].PerformedBy)
	assert.Equal(t, "wrong quantity on line 1", logs[0].Reason)

	_, err = svc.RecordEdit(invoice.ID, "manager", "")
	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSweepOverdue(t *testing.T) {
	svc, _ := newService(t)

	pastDue := createInvoice(t, svc, "0", time.Now().Add(-48*time.Hour))
	future := createInvoice(t, svc, "0", time.Now().Add(48*time.Hour))

	count, err := svc.SweepOverdue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	reloaded, err := svc.Get(pastDue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusOverdue, reloaded.Status)

	untouched, err := svc.Get(future.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, untouched.Status)

	// overdue invoices can still be paid
	paid, err := svc.MarkAsPaid(pastDue.ID, "accountant")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
}
