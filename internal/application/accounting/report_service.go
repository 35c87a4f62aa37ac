package accounting

import (
	"context"
	"time"

	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportService derives ledger reports from posted entries. All reads are
// side-effect free; draft entries never contribute to any report.
type ReportService struct {
	queryRepo   accounting.LedgerQueryRepository
	accountRepo accounting.AccountRepository
}

// NewReportService creates a new ReportService
func NewReportService(queryRepo accounting.LedgerQueryRepository, accountRepo accounting.AccountRepository) *ReportService {
	return &ReportService{queryRepo: queryRepo, accountRepo: accountRepo}
}

// TrialBalance nets posted debits against credits per account over the
// range. Zero-net accounts are omitted; a negative net is presented in the
// credit column (sign-flip presentation, not a second ledger).
func (s *ReportService) TrialBalance(ctx context.Context, from, to time.Time) (*accounting.TrialBalance, error) {
	nets, err := s.queryRepo.AccountNetsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &accounting.TrialBalance{
		From:        from,
		To:          to,
		Rows:        make([]accounting.TrialBalanceRow, 0, len(nets)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, net := range nets {
		balance := net.Net()
		if balance.IsZero() {
			continue
		}
		row := accounting.TrialBalanceRow{
			AccountID:   net.AccountID,
			AccountCode: net.AccountCode,
			AccountName: net.AccountName,
			AccountType: net.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if balance.IsPositive() {
			row.Debit = balance
		} else {
			row.Credit = balance.Neg()
		}
		report.Rows = append(report.Rows, row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	return report, nil
}

// GeneralLedger returns the ordered movement history of one account with a
// running balance seeded at zero for the window start. Callers needing a
// from-inception balance must window from the account's first entry.
func (s *ReportService) GeneralLedger(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*accounting.GeneralLedger, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	lines, err := s.queryRepo.PostedLinesForAccount(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	for i := range lines {
		balance = balance.Add(lines[i].Debit).Sub(lines[i].Credit)
		lines[i].Balance = balance
	}
	return &accounting.GeneralLedger{
		AccountID:   account.ID,
		AccountCode: account.Code,
		AccountName: account.Name,
		From:        from,
		To:          to,
		Lines:       lines,
	}, nil
}

// BalanceSheet nets asset, liability and equity accounts up to the given
// date. Liability and equity amounts are sign-flipped for presentation.
// Totals are simple sums; the engine does not enforce assets equalling
// liabilities plus equity.
func (s *ReportService) BalanceSheet(ctx context.Context, asOf time.Time) (*accounting.BalanceSheet, error) {
	nets, err := s.queryRepo.AccountNetsAsOf(ctx, asOf)
	if err != nil {
		return nil, err
	}

	report := &accounting.BalanceSheet{
		AsOfDate:         asOf,
		Assets:           make([]accounting.BalanceSheetRow, 0),
		Liabilities:      make([]accounting.BalanceSheetRow, 0),
		Equity:           make([]accounting.BalanceSheetRow, 0),
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, net := range nets {
		balance := net.Net()
		if balance.IsZero() {
			continue
		}
		row := accounting.BalanceSheetRow{
			AccountID:   net.AccountID,
			AccountCode: net.AccountCode,
			AccountName: net.AccountName,
		}
		switch net.AccountType {
		case accounting.AccountTypeAsset:
			row.Amount = balance
			report.Assets = append(report.Assets, row)
			report.TotalAssets = report.TotalAssets.Add(row.Amount)
		case accounting.AccountTypeLiability:
			row.Amount = balance.Neg()
			report.Liabilities = append(report.Liabilities, row)
			report.TotalLiabilities = report.TotalLiabilities.Add(row.Amount)
		case accounting.AccountTypeEquity:
			row.Amount = balance.Neg()
			report.Equity = append(report.Equity, row)
			report.TotalEquity = report.TotalEquity.Add(row.Amount)
		}
	}
	return report, nil
}

// ProfitLoss nets revenue and expense accounts over the range; net income
// is total revenue minus total expenses
func (s *ReportService) ProfitLoss(ctx context.Context, from, to time.Time) (*accounting.ProfitLoss, error) {
	nets, err := s.queryRepo.AccountNetsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &accounting.ProfitLoss{
		From:          from,
		To:            to,
		Revenue:       make([]accounting.ProfitLossRow, 0),
		Expenses:      make([]accounting.ProfitLossRow, 0),
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, net := range nets {
		balance := net.Net()
		if balance.IsZero() {
			continue
		}
		row := accounting.ProfitLossRow{
			AccountID:   net.AccountID,
			AccountCode: net.AccountCode,
			AccountName: net.AccountName,
		}
		switch net.AccountType {
		case accounting.AccountTypeRevenue:
			row.Amount = balance.Neg()
			report.Revenue = append(report.Revenue, row)
			report.TotalRevenue = report.TotalRevenue.Add(row.Amount)
		case accounting.AccountTypeExpense:
			row.Amount = balance
			report.Expenses = append(report.Expenses, row)
			report.TotalExpenses = report.TotalExpenses.Add(row.Amount)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}
