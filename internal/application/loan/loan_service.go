package loan

import (
	"context"
	"fmt"
	"time"

	appaccounting "github.com/kopkar/backend/internal/application/accounting"
	"github.com/kopkar/backend/internal/domain/loan"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateLoanRequest is a submitted loan application
type CreateLoanRequest struct {
	MemberID          uuid.UUID       `json:"member_id"`
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermMonths        int             `json:"term_months"`
	StartDate         time.Time       `json:"start_date"`
}

// PaymentRequest applies a payment to a loan installment. When
// InstallmentNumber is zero the lowest-numbered pending installment is used.
type PaymentRequest struct {
	InstallmentNumber int             `json:"installment_number,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
}

// OverrideAmountRequest replaces one installment amount with an audited
// operator decision
type OverrideAmountRequest struct {
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason"`
	Actor             uuid.UUID       `json:"-"`
}

// OverrideDueDateRequest moves one installment due date with an audited
// operator decision
type OverrideDueDateRequest struct {
	InstallmentNumber int       `json:"installment_number"`
	DueDate           time.Time `json:"due_date"`
	Reason            string    `json:"reason"`
	Actor             uuid.UUID `json:"-"`
}

// LoanService manages the loan lifecycle: application with a materialized
// flat-rate schedule, disbursement, installment payments, and audited
// schedule overrides. Disbursement and payment post their journals through
// the loan generators.
type LoanService struct {
	loanRepo  loan.LoanRepository
	generator *appaccounting.JournalGenerator
	logger    *zap.Logger
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo loan.LoanRepository, generator *appaccounting.JournalGenerator, logger *zap.Logger) *LoanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanService{loanRepo: loanRepo, generator: generator, logger: logger}
}

// CreateLoan validates the application, computes the flat-rate schedule and
// persists the approved loan with its installments
func (s *LoanService) CreateLoan(ctx context.Context, req CreateLoanRequest) (*loan.Loan, error) {
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}

	count, err := s.loanRepo.CountForYear(ctx, startDate.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to count loans: %w", err)
	}
	loanNumber := fmt.Sprintf("LN-%d-%04d", startDate.Year(), count+1)

	l, err := loan.NewLoan(loanNumber, req.MemberID, req.Principal, req.AnnualRatePercent, req.TermMonths)
	if err != nil {
		return nil, err
	}

	result, err := loan.CalculateFlatRate(loan.FlatRateParams{
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TermMonths:        req.TermMonths,
		StartDate:         startDate,
	})
	if err != nil {
		return nil, err
	}
	if err := l.Approve(result); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info("loan approved",
		zap.String("loan_number", l.LoanNumber),
		zap.String("principal", l.PrincipalAmount.StringFixed(2)),
		zap.Int("term_months", l.TermMonths))
	return l, nil
}

// GetLoan loads a loan with its schedule
func (s *LoanService) GetLoan(ctx context.Context, loanID uuid.UUID) (*loan.Loan, error) {
	return s.loanRepo.FindByID(ctx, loanID)
}

// Disburse pays the principal out to the member and posts debit Loan
// Receivable, credit Cash
func (s *LoanService) Disburse(ctx context.Context, loanID uuid.UUID) (*loan.Loan, error) {
	l, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := l.Disburse(); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Save(ctx, l); err != nil {
		return nil, err
	}

	if s.generator != nil {
		if _, err := s.generator.LoanDisbursement(ctx, l.PrincipalAmount, l.ID.String()); err != nil {
			return nil, err
		}
	}

	s.logger.Info("loan disbursed", zap.String("loan_number", l.LoanNumber))
	return l, nil
}

// RecordPayment applies a payment to an installment and posts the payment
// journal: debit Cash for principal plus interest, credit Loan Receivable
// for principal, credit Interest Income for interest.
func (s *LoanService) RecordPayment(ctx context.Context, loanID uuid.UUID, req PaymentRequest) (*loan.LoanSchedule, error) {
	l, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	number := req.InstallmentNumber
	if number == 0 {
		next := l.NextPendingSchedule()
		if next == nil {
			return nil, shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Loan %s has no pending installment", l.LoanNumber))
		}
		number = next.InstallmentNumber
	}

	schedule, err := l.RecordInstallmentPayment(number, req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.loanRepo.Save(ctx, l); err != nil {
		return nil, err
	}

	if s.generator != nil {
		if _, err := s.generator.LoanPayment(ctx, schedule.PrincipalAmount, schedule.InterestAmount, schedule.ID.String()); err != nil {
			return nil, err
		}
	}

	s.logger.Info("loan payment recorded",
		zap.String("loan_number", l.LoanNumber),
		zap.Int("installment", schedule.InstallmentNumber),
		zap.String("amount", req.Amount.StringFixed(2)))
	return schedule, nil
}

// OverrideScheduleAmount replaces one installment amount, keeping the
// audit reason and actor on the row
func (s *LoanService) OverrideScheduleAmount(ctx context.Context, loanID uuid.UUID, req OverrideAmountRequest) (*loan.LoanSchedule, error) {
	l, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	schedule := s.findSchedule(l, req.InstallmentNumber)
	if schedule == nil {
		return nil, shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("Installment %d not found on loan %s", req.InstallmentNumber, l.LoanNumber))
	}
	if err := schedule.OverrideAmount(req.Amount, req.Reason, req.Actor); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("installment amount overridden",
		zap.String("loan_number", l.LoanNumber),
		zap.Int("installment", schedule.InstallmentNumber),
		zap.String("reason", req.Reason))
	return schedule, nil
}

// OverrideScheduleDueDate moves one installment due date, keeping the
// audit reason and actor on the row
func (s *LoanService) OverrideScheduleDueDate(ctx context.Context, loanID uuid.UUID, req OverrideDueDateRequest) (*loan.LoanSchedule, error) {
	l, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	schedule := s.findSchedule(l, req.InstallmentNumber)
	if schedule == nil {
		return nil, shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("Installment %d not found on loan %s", req.InstallmentNumber, l.LoanNumber))
	}
	if err := schedule.OverrideDueDate(req.DueDate, req.Reason, req.Actor); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("installment due date overridden",
		zap.String("loan_number", l.LoanNumber),
		zap.Int("installment", schedule.InstallmentNumber),
		zap.String("reason", req.Reason))
	return schedule, nil
}

func (s *LoanService) findSchedule(l *loan.Loan, installmentNumber int) *loan.LoanSchedule {
	for i := range l.Schedules {
		if l.Schedules[i].InstallmentNumber == installmentNumber {
			return &l.Schedules[i]
		}
	}
	return nil
}
