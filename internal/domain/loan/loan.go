package loan

import (
	"fmt"
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanStatus represents the lifecycle stage of a loan
type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "PENDING"
	LoanStatusApproved  LoanStatus = "APPROVED"
	LoanStatusDisbursed LoanStatus = "DISBURSED"
	LoanStatusPaid      LoanStatus = "PAID"
)

// String returns the string representation
func (s LoanStatus) String() string {
	return string(s)
}

// ScheduleStatus represents the payment state of one installment
type ScheduleStatus string

const (
	ScheduleStatusPending ScheduleStatus = "PENDING"
	ScheduleStatusPaid    ScheduleStatus = "PAID"
)

// AmountSource tags how an installment amount was determined
type AmountSource string

const (
	// AmountSourceComputed means the flat-rate calculator produced the amount
	AmountSourceComputed AmountSource = "COMPUTED"
	// AmountSourceOverridden means an operator supplied the amount manually
	AmountSourceOverridden AmountSource = "OVERRIDDEN"
)

// Loan is a member loan with a flat-rate amortization schedule
type Loan struct {
	shared.BaseAggregateRoot
	LoanNumber         string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	MemberID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	PrincipalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AnnualRatePercent  decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	TermMonths         int             `gorm:"not null"`
	TotalInterest      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MonthlyInstallment decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status             LoanStatus      `gorm:"type:varchar(15);not null;index"`
	DisbursedAt        *time.Time      `gorm:""`
	Schedules          []LoanSchedule  `gorm:"foreignKey:LoanID;references:ID"`
}

// TableName returns the table name for GORM
func (Loan) TableName() string {
	return "loans"
}

// LoanSchedule is one installment row. Principal and interest allocation are
// immutable once generated unless explicitly overridden, and every override
// carries an audit reason and actor.
type LoanSchedule struct {
	shared.BaseEntity
	LoanID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_loan_schedule_number,priority:1"`
	InstallmentNumber int             `gorm:"not null;uniqueIndex:idx_loan_schedule_number,priority:2"`
	DueDate           time.Time       `gorm:"type:date;not null;index"`
	InstallmentAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PrincipalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	InterestAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status            ScheduleStatus  `gorm:"type:varchar(10);not null;index"`
	AmountSource      AmountSource    `gorm:"type:varchar(12);not null;default:'COMPUTED'"`
	OverrideReason    string          `gorm:"type:varchar(255)"`
	OverrideActor     *uuid.UUID      `gorm:"type:uuid"`
	OverriddenAt      *time.Time      `gorm:""`
}

// TableName returns the table name for GORM
func (LoanSchedule) TableName() string {
	return "loan_schedules"
}

// NewLoan creates a pending loan application
func NewLoan(loanNumber string, memberID uuid.UUID, principal, annualRatePercent decimal.Decimal, termMonths int) (*Loan, error) {
	if loanNumber == "" {
		return nil, shared.NewDomainError("INVALID_LOAN_NUMBER", "Loan number cannot be empty")
	}
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if err := validateParams(FlatRateParams{Principal: principal, AnnualRatePercent: annualRatePercent, TermMonths: termMonths}); err != nil {
		return nil, err
	}

	return &Loan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LoanNumber:        loanNumber,
		MemberID:          memberID,
		PrincipalAmount:   principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        termMonths,
		Status:            LoanStatusPending,
		Schedules:         make([]LoanSchedule, 0),
	}, nil
}

// Approve materializes the amortization schedule and moves the loan to
// approved. The schedule sums are checked against the calculated totals
// before the loan accepts them.
func (l *Loan) Approve(result *FlatRateResult) error {
	if l.Status != LoanStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Loan %s cannot be approved in status %s", l.LoanNumber, l.Status))
	}

	sumPrincipal := decimal.Zero
	sumInterest := decimal.Zero
	for _, plan := range result.Schedules {
		sumPrincipal = sumPrincipal.Add(plan.PrincipalAmount)
		sumInterest = sumInterest.Add(plan.InterestAmount)
	}
	tolerance := decimal.NewFromFloat(0.01)
	if sumPrincipal.Sub(l.PrincipalAmount).Abs().GreaterThan(tolerance) {
		return shared.NewDomainError("VALIDATION_ERROR", "Schedule principal does not sum to loan principal")
	}
	if sumInterest.Sub(result.TotalInterest).Abs().GreaterThan(tolerance) {
		return shared.NewDomainError("VALIDATION_ERROR", "Schedule interest does not sum to total interest")
	}

	l.TotalInterest = result.TotalInterest
	l.TotalAmount = result.TotalAmount
	l.MonthlyInstallment = result.MonthlyInstallment
	l.Schedules = make([]LoanSchedule, 0, len(result.Schedules))
	for _, plan := range result.Schedules {
		l.Schedules = append(l.Schedules, LoanSchedule{
			BaseEntity:        shared.NewBaseEntity(),
			LoanID:            l.ID,
			InstallmentNumber: plan.Number,
			DueDate:           plan.DueDate,
			InstallmentAmount: plan.InstallmentAmount,
			PrincipalAmount:   plan.PrincipalAmount,
			InterestAmount:    plan.InterestAmount,
			PaidAmount:        decimal.Zero,
			Status:            ScheduleStatusPending,
			AmountSource:      AmountSourceComputed,
		})
	}
	l.Status = LoanStatusApproved
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// Disburse marks the principal as paid out to the member
func (l *Loan) Disburse() error {
	if l.Status != LoanStatusApproved {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Loan %s cannot be disbursed in status %s", l.LoanNumber, l.Status))
	}
	now := time.Now()
	l.Status = LoanStatusDisbursed
	l.DisbursedAt = &now
	l.UpdatedAt = now
	l.IncrementVersion()
	return nil
}

// NextPendingSchedule returns the lowest-numbered unpaid installment
func (l *Loan) NextPendingSchedule() *LoanSchedule {
	var next *LoanSchedule
	for i := range l.Schedules {
		s := &l.Schedules[i]
		if s.Status != ScheduleStatusPending {
			continue
		}
		if next == nil || s.InstallmentNumber < next.InstallmentNumber {
			next = s
		}
	}
	return next
}

// RecordInstallmentPayment applies a payment to the given installment and
// marks the loan fully paid when no pending installment remains.
func (l *Loan) RecordInstallmentPayment(installmentNumber int, amount decimal.Decimal) (*LoanSchedule, error) {
	if l.Status != LoanStatusDisbursed {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Loan %s is not disbursed", l.LoanNumber))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}

	var schedule *LoanSchedule
	for i := range l.Schedules {
		if l.Schedules[i].InstallmentNumber == installmentNumber {
			schedule = &l.Schedules[i]
			break
		}
	}
	if schedule == nil {
		return nil, shared.ErrNotFound
	}
	if schedule.Status == ScheduleStatusPaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Installment is already paid")
	}

	now := time.Now()
	schedule.PaidAmount = schedule.PaidAmount.Add(amount)
	if schedule.PaidAmount.GreaterThanOrEqual(schedule.InstallmentAmount) {
		schedule.Status = ScheduleStatusPaid
	}
	schedule.UpdatedAt = now

	if l.NextPendingSchedule() == nil {
		l.Status = LoanStatusPaid
	}
	l.UpdatedAt = now
	l.IncrementVersion()
	return schedule, nil
}

// OverrideAmount replaces an installment amount with an operator-supplied
// value, tagging the row as overridden with the audit trail.
func (s *LoanSchedule) OverrideAmount(amount decimal.Decimal, reason string, actor uuid.UUID) error {
	if s.Status == ScheduleStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot override a paid installment")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("VALIDATION_ERROR", "Override amount must be positive")
	}
	if reason == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Override reason is required")
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Override actor is required")
	}

	now := time.Now()
	principal := amount.Sub(s.InterestAmount)
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	s.InstallmentAmount = amount
	s.PrincipalAmount = principal
	s.AmountSource = AmountSourceOverridden
	s.OverrideReason = reason
	s.OverrideActor = &actor
	s.OverriddenAt = &now
	s.UpdatedAt = now
	return nil
}

// OverrideDueDate moves an installment due date, tagging the audit trail
func (s *LoanSchedule) OverrideDueDate(dueDate time.Time, reason string, actor uuid.UUID) error {
	if s.Status == ScheduleStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot override a paid installment")
	}
	if dueDate.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Override due date is required")
	}
	if reason == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Override reason is required")
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Override actor is required")
	}

	now := time.Now()
	s.DueDate = dueDate
	s.OverrideReason = reason
	s.OverrideActor = &actor
	s.OverriddenAt = &now
	s.UpdatedAt = now
	return nil
}

// IsOverridden returns true if the installment amount was supplied manually
func (s *LoanSchedule) IsOverridden() bool {
	return s.AmountSource == AmountSourceOverridden
}
