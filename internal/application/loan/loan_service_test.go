package loan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appaccounting "github.com/kopkar/backend/internal/application/accounting"
	apploan "github.com/kopkar/backend/internal/application/loan"
	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/kopkar/backend/internal/domain/loan"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/kopkar/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoanService(t *testing.T) (*apploan.LoanService, *persistence.Database) {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.NewSQLiteDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, persistence.AutoMigrate(db.DB))

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	require.NoError(t, appaccounting.SeedChartOfAccounts(ctx, accountRepo))
	resolver, err := appaccounting.NewAccountResolver(ctx, accountRepo)
	require.NoError(t, err)
	ledger := appaccounting.NewLedgerService(
		persistence.NewGormAccountingScope(db.DB),
		persistence.NewGormJournalEntryRepository(db.DB), nil, nil)

	service := apploan.NewLoanService(
		persistence.NewGormLoanRepository(db.DB),
		appaccounting.NewJournalGenerator(ledger, resolver),
		nil,
	)
	return service, db
}

func newApprovedLoan(t *testing.T, service *apploan.LoanService, principal int64, termMonths int) *loan.Loan {
	t.Helper()
	l, err := service.CreateLoan(context.Background(), apploan.CreateLoanRequest{
		MemberID:          uuid.New(),
		Principal:         decimal.NewFromInt(principal),
		AnnualRatePercent: decimal.NewFromInt(12),
		TermMonths:        termMonths,
		StartDate:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return l
}

func loanErrorCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	return domainErr.Code
}

func TestCreateLoan_FlatRateSchedule(t *testing.T) {
	service, _ := newLoanService(t)

	// 1.200.000 over 12 months at 12% flat: 100.000 principal plus
	// 12.000 interest per installment
	l := newApprovedLoan(t, service, 1200000, 12)

	assert.Regexp(t, `^LN-\d{4}-0001$`, l.LoanNumber)
	assert.Equal(t, loan.LoanStatusApproved, l.Status)
	assert.True(t, l.TotalInterest.Equal(decimal.NewFromInt(144000)))
	assert.True(t, l.TotalAmount.Equal(decimal.NewFromInt(1344000)))
	assert.True(t, l.MonthlyInstallment.Equal(decimal.NewFromInt(112000)))

	require.Len(t, l.Schedules, 12)
	first := l.Schedules[0]
	assert.Equal(t, 1, first.InstallmentNumber)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.True(t, first.PrincipalAmount.Equal(decimal.NewFromInt(100000)))
	assert.True(t, first.InterestAmount.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, loan.ScheduleStatusPending, first.Status)
	assert.Equal(t, loan.AmountSourceComputed, first.AmountSource)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), l.Schedules[11].DueDate)
}

func TestCreateLoan_AssignsSequentialNumbers(t *testing.T) {
	service, _ := newLoanService(t)

	first := newApprovedLoan(t, service, 500000, 6)
	second := newApprovedLoan(t, service, 750000, 6)

	assert.Equal(t, "LN-2025-0001", first.LoanNumber)
	assert.Equal(t, "LN-2025-0002", second.LoanNumber)
}

func TestCreateLoan_RejectsInvalidTerm(t *testing.T) {
	service, db := newLoanService(t)

	_, err := service.CreateLoan(context.Background(), apploan.CreateLoanRequest{
		MemberID:          uuid.New(),
		Principal:         decimal.NewFromInt(100000),
		AnnualRatePercent: decimal.NewFromInt(12),
		TermMonths:        0,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", loanErrorCode(t, err))

	var count int64
	require.NoError(t, db.DB.Model(&loan.Loan{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDisburse_PostsReceivableJournal(t *testing.T) {
	service, db := newLoanService(t)
	ctx := context.Background()

	l := newApprovedLoan(t, service, 1200000, 12)

	disbursed, err := service.Disburse(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.LoanStatusDisbursed, disbursed.Status)
	require.NotNil(t, disbursed.DisbursedAt)

	var entry accounting.JournalEntry
	require.NoError(t, db.DB.Preload("Lines").First(&entry).Error)
	assert.True(t, entry.IsPosted())
	assert.Equal(t, appaccounting.ReferenceTypeLoan, entry.ReferenceType)
	assert.Equal(t, l.ID.String(), entry.ReferenceID)
	assert.True(t, entry.TotalDebit().Equal(decimal.NewFromInt(1200000)))

	// disbursement is one-way
	_, err = service.Disburse(ctx, l.ID)
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", loanErrorCode(t, err))
}

func TestRecordPayment_DefaultsToNextPending(t *testing.T) {
	service, db := newLoanService(t)
	ctx := context.Background()

	l := newApprovedLoan(t, service, 1200000, 12)
	_, err := service.Disburse(ctx, l.ID)
	require.NoError(t, err)

	schedule, err := service.RecordPayment(ctx, l.ID, apploan.PaymentRequest{
		Amount: decimal.NewFromInt(112000),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, schedule.InstallmentNumber)
	assert.Equal(t, loan.ScheduleStatusPaid, schedule.Status)
	assert.True(t, schedule.PaidAmount.Equal(decimal.NewFromInt(112000)))

	var entry accounting.JournalEntry
	require.NoError(t, db.DB.Preload("Lines").
		Where("reference_type = ?", appaccounting.ReferenceTypeLoanPayment).
		First(&entry).Error)
	assert.True(t, entry.IsPosted())
	assert.Equal(t, schedule.ID.String(), entry.ReferenceID)
	assert.True(t, entry.TotalDebit().Equal(decimal.NewFromInt(112000)))

	// the next default payment lands on installment 2
	schedule, err = service.RecordPayment(ctx, l.ID, apploan.PaymentRequest{
		Amount: decimal.NewFromInt(112000),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, schedule.InstallmentNumber)

	reloaded, err := service.GetLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.LoanStatusDisbursed, reloaded.Status)
}

func TestRecordPayment_BeforeDisbursementRejected(t *testing.T) {
	service, _ := newLoanService(t)

	l := newApprovedLoan(t, service, 600000, 6)

	_, err := service.RecordPayment(context.Background(), l.ID, apploan.PaymentRequest{
		InstallmentNumber: 1,
		Amount:            decimal.NewFromInt(100000),
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", loanErrorCode(t, err))
}

func TestRecordPayment_FullRepaymentClosesLoan(t *testing.T) {
	service, _ := newLoanService(t)
	ctx := context.Background()

	l := newApprovedLoan(t, service, 200000, 2)
	_, err := service.Disburse(ctx, l.ID)
	require.NoError(t, err)

	installment := l.MonthlyInstallment
	for i := 1; i <= 2; i++ {
		_, err = service.RecordPayment(ctx, l.ID, apploan.PaymentRequest{
			InstallmentNumber: i,
			Amount:            installment,
		})
		require.NoError(t, err)
	}

	reloaded, err := service.GetLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.LoanStatusPaid, reloaded.Status)
	assert.Nil(t, reloaded.NextPendingSchedule())
}

func TestOverrideScheduleAmount_KeepsAuditTrail(t *testing.T) {
	service, _ := newLoanService(t)
	ctx := context.Background()

	l := newApprovedLoan(t, service, 1200000, 12)
	actor := uuid.New()

	schedule, err := service.OverrideScheduleAmount(ctx, l.ID, apploan.OverrideAmountRequest{
		InstallmentNumber: 3,
		Amount:            decimal.NewFromInt(50000),
		Reason:            "Keringanan angsuran Maret",
		Actor:             actor,
	})
	require.NoError(t, err)
	assert.True(t, schedule.IsOverridden())
	assert.True(t, schedule.InstallmentAmount.Equal(decimal.NewFromInt(50000)))
	assert.True(t, schedule.PrincipalAmount.Equal(decimal.NewFromInt(38000)), "principal absorbs the cut, interest stays flat")
	assert.Equal(t, "Keringanan angsuran Maret", schedule.OverrideReason)
	require.NotNil(t, schedule.OverrideActor)
	assert.Equal(t, actor, *schedule.OverrideActor)
	assert.NotNil(t, schedule.OverriddenAt)

	// the override survives a reload
	reloaded, err := service.GetLoan(ctx, l.ID)
	require.NoError(t, err)
	for _, s := range reloaded.Schedules {
		if s.InstallmentNumber == 3 {
			assert.Equal(t, loan.AmountSourceOverridden, s.AmountSource)
		}
	}
}

func TestOverrideScheduleAmount_RequiresReason(t *testing.T) {
	service, _ := newLoanService(t)

	l := newApprovedLoan(t, service, 600000, 6)

	_, err := service.OverrideScheduleAmount(context.Background(), l.ID, apploan.OverrideAmountRequest{
		InstallmentNumber: 1,
		Amount:            decimal.NewFromInt(50000),
		Actor:             uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", loanErrorCode(t, err))
}

func TestOverrideScheduleDueDate_MovesInstallment(t *testing.T) {
	service, _ := newLoanService(t)
	ctx := context.Background()

	l := newApprovedLoan(t, service, 600000, 6)
	newDue := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

	schedule, err := service.OverrideScheduleDueDate(ctx, l.ID, apploan.OverrideDueDateRequest{
		InstallmentNumber: 1,
		DueDate:           newDue,
		Reason:            "Gajian mundur",
		Actor:             uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, newDue, schedule.DueDate)
	assert.Equal(t, "Gajian mundur", schedule.OverrideReason)
}

func TestOverrideScheduleDueDate_UnknownInstallment(t *testing.T) {
	service, _ := newLoanService(t)

	l := newApprovedLoan(t, service, 600000, 6)

	_, err := service.OverrideScheduleDueDate(context.Background(), l.ID, apploan.OverrideDueDateRequest{
		InstallmentNumber: 99,
		DueDate:           time.Now(),
		Reason:            "typo",
		Actor:             uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", loanErrorCode(t, err))
}
