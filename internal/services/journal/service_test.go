package journal_test

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

func newService(t *testing.T) (*journal.Service, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	svc := journal.NewService(
		repository.NewJournalRepository(db),
		repository.NewAccountRepository(db),
	)
	return svc, db
}

func accountBalance(t *testing.T, db *gorm.DB, code string) decimal.Decimal {
	t.Helper()
	account, err := repository.NewAccountRepository(db).GetByCode(code)
	require.NoError(t, err)
	return account.Balance
}

func manualParams(lines []journal.LineParams) journal.PostParams {
	return journal.PostParams{
		Date:        time.Now(),
		Description: "manual adjustment",
		Source:      models.JournalSourceManual,
		CreatedBy:   "accountant",
		Lines:       lines,
	}
}

func TestPostEntryBalanced(t *testing.T) {
	svc, db := newService(t)

	entry, err := svc.PostEntry(manualParams([]journal.LineParams{
		{AccountCode: models.AccountCash, Debit: dec("115")},
		{AccountCode: models.AccountSubscriptionRevenue, Credit: dec("100")},
		{AccountCode: models.AccountVATPayable, Credit: dec("15")},
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, entry.EntryNumber)
	assert.True(t, entry.IsPosted)
	require.Len(t, entry.Lines, 3)
	assert.True(t, entry.TotalDebit.Equal(dec("115")))
	assert.True(t, entry.TotalCredit.Equal(dec("115")))

	assert.True(t, accountBalance(t, db, models.AccountCash).Equal(dec("115")))
	assert.True(t, accountBalance(t, db, models.AccountSubscriptionRevenue).Equal(dec("100")))
	assert.True(t, accountBalance(t, db, models.AccountVATPayable).Equal(dec("15")))
}

func TestPostEntrySequentialNumbers(t *testing.T) {
	svc, _ := newService(t)

	for want := 1; want <= 3; want++ {
		entry, err := svc.PostEntry(manualParams([]journal.LineParams{
			{AccountCode: models.AccountCash, Debit: dec("10")},
			{AccountCode: models.AccountSalesRevenue, Credit: dec("10")},
		}))
		require.NoError(t, err)
		assert.Equal(t, want, entry.EntryNumber)
	}
}

func TestPostEntryUnbalanced(t *testing.T) {
	svc, db := newService(t)

	_, err := svc.PostEntry(manualParams([]journal.LineParams{
		{AccountCode: models.AccountCash, Debit: dec("100")},
		{AccountCode: models.AccountSalesRevenue, Credit: dec("90")},
	}))
	var unbalancedErr models.UnbalancedEntryError
	require.ErrorAs(t, err, &unbalancedErr)
	assert.True(t, unbalancedErr.TotalDebit.Equal(dec("100")))
	assert.True(t, unbalancedErr.TotalCredit.Equal(dec("90")))

	entries, err := repository.NewJournalRepository(db).All()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.True(t, accountBalance(t, db, models.AccountCash).IsZero())
}

func TestPostEntryLineValidation(t *testing.T) {
	svc, _ := newService(t)

	cases := []struct {
		name  string
		lines []journal.LineParams
	}{
		{"no lines", nil},
		{"both sides set", []journal.LineParams{
			{AccountCode: models.AccountCash, Debit: dec("50"), Credit: dec("50")},
			{AccountCode: models.AccountSalesRevenue, Credit: dec("0")},
		}},
		{"neither side set", []journal.LineParams{
			{AccountCode: models.AccountCash},
			{AccountCode: models.AccountSalesRevenue, Credit: dec("10")},
		}},
		{"negative amount", []journal.LineParams{
			{AccountCode: models.AccountCash, Debit: dec("-10")},
			{AccountCode: models.AccountSalesRevenue, Credit: dec("-10")},
		}},
		{"sub-cent precision", []journal.LineParams{
			{AccountCode: models.AccountCash, Debit: dec("10.005")},
			{AccountCode: models.AccountSalesRevenue, Credit: dec("10.005")},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PostEntry(manualParams(tc.lines))
			var validationErr models.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestPostEntryUnknownAccount(t *testing.T) {
	svc, db := newService(t)

	_, err := svc.PostEntry(manualParams([]journal.LineParams{
		{AccountCode: models.AccountCash, Debit: dec("10")},
		{AccountCode: "9999", Credit: dec("10")},
	}))
	var notFoundErr models.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	// rollback: the cash debit that was applied first must not stick
	assert.True(t, accountBalance(t, db, models.AccountCash).IsZero())
	entries, err := repository.NewJournalRepository(db).All()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPayrollAccrual(t *testing.T) {
	svc, db := newService(t)

	entry, err := svc.CreatePayrollAccrualEntry([]journal.EmployeePay{
		{Name: "Sara", Salary: dec("3000")},
		{Name: "Omar", Salary: dec("2500")},
		{Name: "Lina", Salary: dec("2000")},
	}, "hr-manager")
	require.NoError(t, err)

	assert.Equal(t, models.JournalSourcePayroll, entry.Source)
	assert.True(t, entry.TotalDebit.Equal(dec("7500")))
	assert.True(t, entry.TotalCredit.Equal(dec("7500")))
	require.Len(t, entry.Lines, 2)

	assert.True(t, accountBalance(t, db, models.AccountSalaryExpense).Equal(dec("7500")))
	assert.True(t, accountBalance(t, db, models.AccountSalariesPayable).Equal(dec("7500")))
}

func TestPayrollAccrualValidation(t *testing.T) {
	svc, _ := newService(t)

	cases := []struct {
		name      string
		employees []journal.EmployeePay
	}{
		{"empty roster", nil},
		{"missing name", []journal.EmployeePay{{Salary: dec("1000")}}},
		{"zero salary", []journal.EmployeePay{{Name: "Sara", Salary: dec("0")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePayrollAccrualEntry(tc.employees, "hr-manager")
			var validationErr models.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestMediationEntries(t *testing.T) {
	svc, db := newService(t)

	result, err := svc.CreateMediationEntries(journal.MediationParams{
		SaleAmount:     dec("1150"),
		BuyerName:      "Buyer Co",
		PurchaseAmount: dec("920"),
		SupplierName:   "Supplier LLC",
		Description:    "equipment resale",
		ApprovedBy:     "broker",
	})
	require.NoError(t, err)

	assert.True(t, result.NetSale.Equal(dec("1000.00")), "net sale %s", result.NetSale)
	assert.True(t, result.NetPurchase.Equal(dec("800.00")), "net purchase %s", result.NetPurchase)
	assert.True(t, result.Profit.Equal(dec("200.00")), "profit %s", result.Profit)

	// both entries individually balanced
	for _, entry := range []*models.JournalEntry{result.SalesEntry, result.PurchaseEntry} {
		require.NotNil(t, entry)
		assert.True(t, entry.TotalDebit.Equal(entry.TotalCredit))
		assert.Equal(t, models.JournalSourceMediation, entry.Source)
	}
	assert.Equal(t, result.SalesEntry.EntryNumber+1, result.PurchaseEntry.EntryNumber)

	// output VAT 150 minus input VAT 120 leaves 30 payable
	assert.True(t, accountBalance(t, db, models.AccountVATPayable).Equal(dec("30")))
	assert.True(t, accountBalance(t, db, models.AccountReceivable).Equal(dec("1150")))
	assert.True(t, accountBalance(t, db, models.AccountSuppliersPayable).Equal(dec("920")))
	assert.True(t, accountBalance(t, db, models.AccountSalesRevenue).Equal(dec("1000")))
	assert.True(t, accountBalance(t, db, models.AccountCOGS).Equal(dec("800")))
}

func TestMediationValidation(t *testing.T) {
	svc, _ := newService(t)

	base := journal.MediationParams{
		SaleAmount:     dec("1150"),
		BuyerName:      "Buyer Co",
		PurchaseAmount: dec("920"),
		SupplierName:   "Supplier LLC",
		ApprovedBy:     "broker",
	}

	cases := []struct {
		name   string
		mutate func(*journal.MediationParams)
	}{
		{"zero sale", func(p *journal.MediationParams) { p.SaleAmount = decimal.Zero }},
		{"negative purchase", func(p *journal.MediationParams) { p.PurchaseAmount = dec("-1") }},
		{"missing buyer", func(p *journal.MediationParams) { p.BuyerName = "" }},
		{"missing supplier", func(p *journal.MediationParams) { p.SupplierName = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := base
			tc.mutate(&params)
			_, err := svc.CreateMediationEntries(params)
			var validationErr models.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestReverseEntry(t *testing.T) {
	svc, db := newService(t)

	original, err := svc.PostEntry(manualParams([]journal.LineParams{
		{AccountCode: models.AccountCash, Debit: dec("115")},
		{AccountCode: models.AccountSubscriptionRevenue, Credit: dec("100")},
		{AccountCode: models.AccountVATPayable, Credit: dec("15")},
	}))
	require.NoError(t, err)

	reversal, err := svc.ReverseEntry(original.ID, "accountant", "posted against wrong period")
	require.NoError(t, err)

	assert.True(t, reversal.TotalDebit.Equal(original.TotalDebit))
	assert.True(t, reversal.TotalCredit.Equal(original.TotalCredit))
	require.NotNil(t, reversal.ReversesEntryID)
	assert.Equal(t, original.ID, *reversal.ReversesEntryID)

	reloaded, err := svc.Get(original.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsReversed)

	// balances net back to zero
	assert.True(t, accountBalance(t, db, models.AccountCash).IsZero())
	assert.True(t, accountBalance(t, db, models.AccountSubscriptionRevenue).IsZero())
	assert.True(t, accountBalance(t, db, models.AccountVATPayable).IsZero())

	_, err = svc.ReverseEntry(original.ID, "accountant", "again")
	var stateErr models.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}

func TestReverseEntryNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.ReverseEntry(uuid.New(), "accountant", "nothing")
	var notFoundErr models.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
