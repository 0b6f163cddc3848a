package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
)

// Service derives financial reports from the chart of accounts and the posted
// journal. All reports are pure reads: no state is mutated and repeated calls
// with no intervening postings return identical results.
type Service struct {
	accountRepo *repository.AccountRepository
	journalRepo *repository.JournalRepository
}

func NewService(
	accountRepo *repository.AccountRepository,
	journalRepo *repository.JournalRepository,
) *Service {
	return &Service{accountRepo: accountRepo, journalRepo: journalRepo}
}

// TrialBalanceRow is one account's column split in the trial balance.
type TrialBalanceRow struct {
	AccountCode string             `json:"account_code"`
	AccountName string             `json:"account_name"`
	Type        models.AccountType `json:"type"`
	Debit       decimal.Decimal    `json:"debit"`
	Credit      decimal.Decimal    `json:"credit"`
}

// TrialBalance is the point-in-time check that total debits equal total
// credits across all accounts.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
	IsBalanced  bool              `json:"is_balanced"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// GetTrialBalance splits each account balance into its normal column (a
// negative balance flips to the opposite column) and sums both sides. An
// imbalance is reported, never corrected.
func (s *Service) GetTrialBalance() (*TrialBalance, error) {
	accounts, err := s.accountRepo.All()
	if err != nil {
		return nil, err
	}

	tb := &TrialBalance{GeneratedAt: time.Now()}
	for _, account := range accounts {
		row := TrialBalanceRow{
			AccountCode: account.Code,
			AccountName: account.Name,
			Type:        account.Type,
		}
		switch {
		case account.Type.NormalDebit() && !account.Balance.IsNegative():
			row.Debit = account.Balance
		case account.Type.NormalDebit():
			row.Credit = account.Balance.Neg()
		case !account.Balance.IsNegative():
			row.Credit = account.Balance
		default:
			row.Debit = account.Balance.Neg()
		}
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}

	tb.IsBalanced = tb.TotalDebit.Equal(tb.TotalCredit)
	return tb, nil
}

// IncomeStatement aggregates posted journal activity over a closed date range.
type IncomeStatement struct {
	StartDate           time.Time       `json:"start_date"`
	EndDate             time.Time       `json:"end_date"`
	SubscriptionRevenue decimal.Decimal `json:"subscription_revenue"`
	SalesRevenue        decimal.Decimal `json:"sales_revenue"`
	CostOfGoodsSold     decimal.Decimal `json:"cost_of_goods_sold"`
	SalaryExpense       decimal.Decimal `json:"salary_expense"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalExpense        decimal.Decimal `json:"total_expense"`
	MediationProfit     decimal.Decimal `json:"mediation_profit"`
	SubscriptionProfit  decimal.Decimal `json:"subscription_profit"`
	NetProfit           decimal.Decimal `json:"net_profit"`
}

// GetIncomeStatement aggregates posted entries dated within [start, end] by
// account classification. Reversal entries net out naturally because their
// mirrored lines carry the opposite sign.
func (s *Service) GetIncomeStatement(start, end time.Time) (*IncomeStatement, error) {
	if end.Before(start) {
		return nil, models.ValidationError{Field: "end_date", Reason: "must not be before start date"}
	}

	entries, err := s.journalRepo.PostedBetween(start, end)
	if err != nil {
		return nil, err
	}

	stmt := &IncomeStatement{StartDate: start, EndDate: end}
	for _, entry := range entries {
		for _, line := range entry.Lines {
			switch line.AccountCode {
			case models.AccountSubscriptionRevenue:
				stmt.SubscriptionRevenue = stmt.SubscriptionRevenue.Add(line.Credit.Sub(line.Debit))
			case models.AccountSalesRevenue:
				stmt.SalesRevenue = stmt.SalesRevenue.Add(line.Credit.Sub(line.Debit))
			case models.AccountCOGS:
				stmt.CostOfGoodsSold = stmt.CostOfGoodsSold.Add(line.Debit.Sub(line.Credit))
			case models.AccountSalaryExpense:
				stmt.SalaryExpense = stmt.SalaryExpense.Add(line.Debit.Sub(line.Credit))
			}
		}
	}

	stmt.TotalRevenue = stmt.SubscriptionRevenue.Add(stmt.SalesRevenue)
	stmt.TotalExpense = stmt.CostOfGoodsSold.Add(stmt.SalaryExpense)
	stmt.MediationProfit = stmt.SalesRevenue.Sub(stmt.CostOfGoodsSold)
	stmt.SubscriptionProfit = stmt.SubscriptionRevenue
	stmt.NetProfit = stmt.TotalRevenue.Sub(stmt.TotalExpense)
	return stmt, nil
}
