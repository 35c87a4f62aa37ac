package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Reference types stamped on generated entries
const (
	ReferenceTypeSavings     = "SAVINGS_TRANSACTION"
	ReferenceTypeLoan        = "LOAN"
	ReferenceTypeLoanPayment = "LOAN_PAYMENT"
	ReferenceTypeExpense     = "EXPENSE"
	ReferenceTypePosSale     = "POS_TRANSACTION"
)

// Payment method names the POS sale generator understands. They mirror the
// pos context's payment methods without importing it.
const (
	posMethodCash              = "CASH"
	posMethodSalaryDeduction   = "SALARY_DEDUCTION"
	posMethodSavingsWithdrawal = "SAVINGS_WITHDRAWAL"
)

// JournalGenerator maps domain events to balanced journal entries and posts
// them immediately through the ledger engine. Each generator is a pure
// mapping from event data plus resolved account codes to lines; all
// persistence goes through LedgerService.CreatePostedEntry.
type JournalGenerator struct {
	ledger   *LedgerService
	resolver *AccountResolver
}

// NewJournalGenerator creates a new JournalGenerator
func NewJournalGenerator(ledger *LedgerService, resolver *AccountResolver) *JournalGenerator {
	return &JournalGenerator{ledger: ledger, resolver: resolver}
}

// SavingsDeposit posts debit Cash, credit the savings liability account for
// the deposited type
func (g *JournalGenerator) SavingsDeposit(ctx context.Context, savingsType string, amount decimal.Decimal, referenceID string) (*accounting.JournalEntry, error) {
	cash, liability, err := g.savingsAccounts(savingsType)
	if err != nil {
		return nil, err
	}
	return g.post(ctx, fmt.Sprintf("Setoran simpanan %s", savingsType), ReferenceTypeSavings, referenceID,
		[]EntryLineRequest{
			{AccountID: cash.ID, Debit: amount},
			{AccountID: liability.ID, Credit: amount},
		})
}

// SavingsWithdrawal posts the reverse of a deposit: debit the savings
// liability, credit Cash
func (g *JournalGenerator) SavingsWithdrawal(ctx context.Context, savingsType string, amount decimal.Decimal, referenceID string) (*accounting.JournalEntry, error) {
	cash, liability, err := g.savingsAccounts(savingsType)
	if err != nil {
		return nil, err
	}
	return g.post(ctx, fmt.Sprintf("Penarikan simpanan %s", savingsType), ReferenceTypeSavings, referenceID,
		[]EntryLineRequest{
			{AccountID: liability.ID, Debit: amount},
			{AccountID: cash.ID, Credit: amount},
		})
}

func (g *JournalGenerator) savingsAccounts(savingsType string) (*accounting.Account, *accounting.Account, error) {
	code := accounting.SavingsLiabilityCode(savingsType)
	if code == "" {
		return nil, nil, shared.NewDomainError("ACCOUNT_NOT_CONFIGURED",
			fmt.Sprintf("No savings liability account for type %s", savingsType))
	}
	cash, err := g.resolver.ByCode(accounting.CodeCash)
	if err != nil {
		return nil, nil, err
	}
	liability, err := g.resolver.ByCode(code)
	if err != nil {
		return nil, nil, err
	}
	return cash, liability, nil
}

// LoanDisbursement posts debit Loan Receivable, credit Cash for the principal
func (g *JournalGenerator) LoanDisbursement(ctx context.Context, principal decimal.Decimal, referenceID string) (*accounting.JournalEntry, error) {
	receivable, err := g.resolver.ByCode(accounting.CodeLoanReceivable)
	if err != nil {
		return nil, err
	}
	cash, err := g.resolver.ByCode(accounting.CodeCash)
	if err != nil {
		return nil, err
	}
	return g.post(ctx, "Pencairan pinjaman", ReferenceTypeLoan, referenceID,
		[]EntryLineRequest{
			{AccountID: receivable.ID, Debit: principal},
			{AccountID: cash.ID, Credit: principal},
		})
}

// LoanPayment posts debit Cash for principal plus interest, credit Loan
// Receivable for principal, credit Interest Income for interest. The
// interest line is omitted when interest is zero, leaving a valid 2-line
// entry.
func (g *JournalGenerator) LoanPayment(ctx context.Context, principal, interest decimal.Decimal, referenceID string) (*accounting.JournalEntry, error) {
	cash, err := g.resolver.ByCode(accounting.CodeCash)
	if err != nil {
		return nil, err
	}
	receivable, err := g.resolver.ByCode(accounting.CodeLoanReceivable)
	if err != nil {
		return nil, err
	}

	lines := []EntryLineRequest{
		{AccountID: cash.ID, Debit: principal.Add(interest)},
		{AccountID: receivable.ID, Credit: principal},
	}
	if !interest.IsZero() {
		income, err := g.resolver.ByCode(accounting.CodeInterestIncome)
		if err != nil {
			return nil, err
		}
		lines = append(lines, EntryLineRequest{AccountID: income.ID, Credit: interest})
	}
	return g.post(ctx, "Pembayaran angsuran pinjaman", ReferenceTypeLoanPayment, referenceID, lines)
}

// CashExpense posts debit the expense category's linked account, credit Cash
func (g *JournalGenerator) CashExpense(ctx context.Context, linkedAccountCode string, amount decimal.Decimal, referenceID string) (*accounting.JournalEntry, error) {
	expense, err := g.resolver.ByCode(linkedAccountCode)
	if err != nil {
		return nil, err
	}
	cash, err := g.resolver.ByCode(accounting.CodeCash)
	if err != nil {
		return nil, err
	}
	return g.post(ctx, "Pengeluaran kas", ReferenceTypeExpense, referenceID,
		[]EntryLineRequest{
			{AccountID: expense.ID, Debit: amount},
			{AccountID: cash.ID, Credit: amount},
		})
}

// PosSale posts the method-specific debit (Cash, Member Receivable or the
// sukarela savings liability) against Sales Revenue
func (g *JournalGenerator) PosSale(ctx context.Context, paymentMethod string, total decimal.Decimal, referenceID string) (*accounting.JournalEntry, error) {
	var debitCode string
	switch paymentMethod {
	case posMethodCash:
		debitCode = accounting.CodeCash
	case posMethodSalaryDeduction:
		debitCode = accounting.CodeMemberReceivable
	case posMethodSavingsWithdrawal:
		debitCode = accounting.CodeSimpananSukarela
	default:
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Unknown payment method %s", paymentMethod))
	}

	debit, err := g.resolver.ByCode(debitCode)
	if err != nil {
		return nil, err
	}
	revenue, err := g.resolver.ByCode(accounting.CodeSalesRevenue)
	if err != nil {
		return nil, err
	}
	return g.post(ctx, "Penjualan toko", ReferenceTypePosSale, referenceID,
		[]EntryLineRequest{
			{AccountID: debit.ID, Debit: total},
			{AccountID: revenue.ID, Credit: total},
		})
}

func (g *JournalGenerator) post(ctx context.Context, description, referenceType, referenceID string, lines []EntryLineRequest) (*accounting.JournalEntry, error) {
	return g.ledger.CreatePostedEntry(ctx, CreateEntryRequest{
		EntryDate:     time.Now(),
		Description:   description,
		Lines:         lines,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
	})
}
