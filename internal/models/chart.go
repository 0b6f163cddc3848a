package models

import (
	"time"

	"github.com/google/uuid"
)

// Well-known account codes. The journal builders and the invoice/payment
// flows post against these; the numbering follows the usual convention of
// 1xxx assets, 2xxx liabilities, 4xxx revenue, 5xxx expenses.
const (
	AccountCash                = "1010"
	AccountReceivable          = "1020"
	AccountSalariesPayable     = "2010"
	AccountVATPayable          = "2020"
	AccountSuppliersPayable    = "2030"
	AccountSubscriptionRevenue = "4010"
	AccountSalesRevenue        = "4020"
	AccountCOGS                = "5010"
	AccountSalaryExpense       = "5020"
)

// DefaultChart returns the seed chart of accounts. Seeding is idempotent:
// accounts already present by code are left untouched.
func DefaultChart() []Account {
	now := time.Now()
	chart := []struct {
		code string
		name string
		typ  AccountType
	}{
		{AccountCash, "Cash", AccountTypeAsset},
		{AccountReceivable, "Accounts Receivable", AccountTypeAsset},
		{AccountSalariesPayable, "Salaries Payable", AccountTypeLiability},
		{AccountVATPayable, "VAT Payable", AccountTypeLiability},
		{AccountSuppliersPayable, "Suppliers Payable", AccountTypeLiability},
		{AccountSubscriptionRevenue, "Subscription Revenue", AccountTypeRevenue},
		{AccountSalesRevenue, "Sales Revenue", AccountTypeRevenue},
		{AccountCOGS, "Cost of Goods Sold", AccountTypeExpense},
		{AccountSalaryExpense, "Salary Expense", AccountTypeExpense},
	}

	accounts := make([]Account, 0, len(chart))
	for _, c := range chart {
		accounts = append(accounts, Account{
			ID:        uuid.New(),
			Code:      c.code,
			Name:      c.name,
			Type:      c.typ,
			CreatedAt: now,
		})
	}
	return accounts
}
