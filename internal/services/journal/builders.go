package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/models"
)

// vatDivisor converts a VAT-inclusive amount to its net: net = gross / 1.15.
var vatDivisor = decimal.New(115, -2)

// EmployeePay is one employee's line in a payroll run, with the computed total
// salary supplied by the HR roster.
type EmployeePay struct {
	Name   string          `json:"name"`
	Salary decimal.Decimal `json:"salary"`
}

// CreatePayrollAccrualEntry posts one entry per payroll run: debit Salary
// Expense for the sum of all salaries, credit Salaries Payable by the same
// sum. The entry balances by construction.
func (s *Service) CreatePayrollAccrualEntry(employees []EmployeePay, approver string) (*models.JournalEntry, error) {
	if len(employees) == 0 {
		return nil, models.ValidationError{Field: "employees", Reason: "payroll run has no employees"}
	}

	total := decimal.Zero
	for i, emp := range employees {
		if emp.Name == "" {
			return nil, models.ValidationError{Field: fmt.Sprintf("employees[%d].name", i), Reason: "name is required"}
		}
		if !emp.Salary.IsPositive() {
			return nil, models.ValidationError{Field: fmt.Sprintf("employees[%d].salary", i), Reason: "salary must be positive"}
		}
		total = total.Add(emp.Salary)
	}

	return s.PostEntry(PostParams{
		Date:        time.Now(),
		Description: fmt.Sprintf("Payroll accrual for %d employees", len(employees)),
		Source:      models.JournalSourcePayroll,
		CreatedBy:   approver,
		Lines: []LineParams{
			{AccountCode: models.AccountSalaryExpense, Debit: total},
			{AccountCode: models.AccountSalariesPayable, Credit: total},
		},
	})
}

// MediationParams holds the two sides of a brokered transaction. Both amounts
// are VAT-inclusive.
type MediationParams struct {
	SaleAmount     decimal.Decimal
	BuyerName      string
	PurchaseAmount decimal.Decimal
	SupplierName   string
	Description    string
	ApprovedBy     string
	Date           time.Time
}

// MediationResult carries the two posted entries and the net profit.
type MediationResult struct {
	SalesEntry    *models.JournalEntry `json:"sales_entry"`
	PurchaseEntry *models.JournalEntry `json:"purchase_entry"`
	NetSale       decimal.Decimal      `json:"net_sale"`
	NetPurchase   decimal.Decimal      `json:"net_purchase"`
	Profit        decimal.Decimal      `json:"profit"`
}

// CreateMediationEntries posts the two linked entries of a brokered deal in a
// single transaction: a sales entry (receivable from the buyer, revenue and
// output VAT split out) and a purchase entry (cost and input VAT against the
// supplier payable). The VAT component is computed as gross minus net so each
// entry balances exactly.
func (s *Service) CreateMediationEntries(params MediationParams) (*MediationResult, error) {
	if !params.SaleAmount.IsPositive() {
		return nil, models.ValidationError{Field: "sale_amount", Reason: "must be positive"}
	}
	if !params.PurchaseAmount.IsPositive() {
		return nil, models.ValidationError{Field: "purchase_amount", Reason: "must be positive"}
	}
	if params.BuyerName == "" {
		return nil, models.ValidationError{Field: "buyer_name", Reason: "name is required"}
	}
	if params.SupplierName == "" {
		return nil, models.ValidationError{Field: "supplier_name", Reason: "name is required"}
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	netSale := params.SaleAmount.Div(vatDivisor).Round(2)
	saleVAT := params.SaleAmount.Sub(netSale)
	netPurchase := params.PurchaseAmount.Div(vatDivisor).Round(2)
	purchaseVAT := params.PurchaseAmount.Sub(netPurchase)

	result := &MediationResult{
		NetSale:     netSale,
		NetPurchase: netPurchase,
		Profit:      params.SaleAmount.Sub(params.PurchaseAmount).Div(vatDivisor).Round(2),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		result.SalesEntry, err = s.PostInTx(tx, PostParams{
			Date:        date,
			Description: fmt.Sprintf("Mediation sale to %s: %s", params.BuyerName, params.Description),
			Source:      models.JournalSourceMediation,
			CreatedBy:   params.ApprovedBy,
			Lines: []LineParams{
				{AccountCode: models.AccountReceivable, Debit: params.SaleAmount, EntityName: params.BuyerName},
				{AccountCode: models.AccountSalesRevenue, Credit: netSale},
				{AccountCode: models.AccountVATPayable, Credit: saleVAT},
			},
		})
		if err != nil {
			return err
		}

		result.PurchaseEntry, err = s.PostInTx(tx, PostParams{
			Date:        date,
			Description: fmt.Sprintf("Mediation purchase from %s: %s", params.SupplierName, params.Description),
			Source:      models.JournalSourceMediation,
			CreatedBy:   params.ApprovedBy,
			Lines: []LineParams{
				{AccountCode: models.AccountCOGS, Debit: netPurchase},
				{AccountCode: models.AccountVATPayable, Debit: purchaseVAT},
				{AccountCode: models.AccountSuppliersPayable, Credit: params.PurchaseAmount, EntityName: params.SupplierName},
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
