package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountNet is the raw aggregation unit for ledger reports: the summed debit
// and credit of posted lines per account over some date window.
type AccountNet struct {
	AccountID   uuid.UUID
	AccountCode string
	AccountName string
	AccountType AccountType
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Net returns debit minus credit
func (n AccountNet) Net() decimal.Decimal {
	return n.TotalDebit.Sub(n.TotalCredit)
}

// TrialBalanceRow is one account row of a trial balance. Positive nets are
// presented in the debit column and negative nets sign-flipped into the
// credit column; zero-net accounts are omitted entirely.
type TrialBalanceRow struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType AccountType     `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the per-account net debit/credit summary over a date range
type TrialBalance struct {
	From        time.Time         `json:"from"`
	To          time.Time         `json:"to"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}

// GeneralLedgerLine is one posted line in an account's ledger with the
// running balance. The balance is windowed: it is seeded at zero for the
// start of the requested range, not from account inception.
type GeneralLedgerLine struct {
	EntryID     uuid.UUID       `json:"entry_id"`
	LineID      uuid.UUID       `json:"line_id"`
	EntryNumber string          `json:"entry_number"`
	EntryDate   time.Time       `json:"entry_date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// GeneralLedger is the ordered movement history of one account
type GeneralLedger struct {
	AccountID   uuid.UUID           `json:"account_id"`
	AccountCode string              `json:"account_code"`
	AccountName string              `json:"account_name"`
	From        time.Time           `json:"from"`
	To          time.Time           `json:"to"`
	Lines       []GeneralLedgerLine `json:"lines"`
}

// BalanceSheetRow is one account on the balance sheet. Liability and equity
// amounts are sign-flipped for presentation (credit-normal accounts).
type BalanceSheetRow struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheet reports asset, liability and equity positions as of a date.
// Totals are simple sums; assets = liabilities + equity is a property of
// correct upstream entries, not a runtime guard.
type BalanceSheet struct {
	AsOfDate         time.Time         `json:"as_of_date"`
	Assets           []BalanceSheetRow `json:"assets"`
	Liabilities      []BalanceSheetRow `json:"liabilities"`
	Equity           []BalanceSheetRow `json:"equity"`
	TotalAssets      decimal.Decimal   `json:"total_assets"`
	TotalLiabilities decimal.Decimal   `json:"total_liabilities"`
	TotalEquity      decimal.Decimal   `json:"total_equity"`
}

// ProfitLossRow is one revenue or expense account with its net amount
type ProfitLossRow struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitLoss reports net revenue and expenses over a date range
type ProfitLoss struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Revenue       []ProfitLossRow `json:"revenue"`
	Expenses      []ProfitLossRow `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}
