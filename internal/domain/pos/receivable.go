package pos

import (
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus is the settlement state of a member receivable
type ReceivableStatus string

const (
	ReceivableStatusPending ReceivableStatus = "PENDING"
	ReceivableStatusPaid    ReceivableStatus = "PAID"
)

// MemberReceivable is the debt a salary-deduction checkout books against a
// member. It falls due on the first day of the month after the sale.
type MemberReceivable struct {
	shared.BaseEntity
	MemberID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	TransactionID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	PaidAmount    decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	DueMonth      int              `gorm:"not null;index:idx_receivable_due"`
	DueYear       int              `gorm:"not null;index:idx_receivable_due"`
	Status        ReceivableStatus `gorm:"type:varchar(10);not null;index"`
}

// TableName returns the table name for GORM
func (MemberReceivable) TableName() string {
	return "member_receivables"
}

// ReceivableDueDate is the first day of the month after the sale date
func ReceivableDueDate(saleDate time.Time) time.Time {
	return time.Date(saleDate.Year(), saleDate.Month()+1, 1, 0, 0, 0, 0, saleDate.Location())
}

// NewMemberReceivable books the debt for one salary-deduction checkout,
// due the month after the sale.
func NewMemberReceivable(memberID, transactionID uuid.UUID, amount decimal.Decimal, saleDate time.Time) (*MemberReceivable, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if transactionID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Transaction ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Receivable amount must be positive")
	}
	due := ReceivableDueDate(saleDate)
	return &MemberReceivable{
		BaseEntity:    shared.NewBaseEntity(),
		MemberID:      memberID,
		TransactionID: transactionID,
		Amount:        amount,
		PaidAmount:    decimal.Zero,
		DueMonth:      int(due.Month()),
		DueYear:       due.Year(),
		Status:        ReceivableStatusPending,
	}, nil
}

// Outstanding is the unpaid remainder
func (r *MemberReceivable) Outstanding() decimal.Decimal {
	return r.Amount.Sub(r.PaidAmount)
}

// ApplyPayment reduces the outstanding amount and settles the receivable
// when nothing remains
func (r *MemberReceivable) ApplyPayment(amount decimal.Decimal) error {
	if r.Status == ReceivableStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Receivable is already settled")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	if amount.GreaterThan(r.Outstanding()) {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment exceeds the outstanding amount")
	}
	r.PaidAmount = r.PaidAmount.Add(amount)
	if r.Outstanding().IsZero() {
		r.Status = ReceivableStatusPaid
	}
	r.UpdatedAt = time.Now()
	return nil
}
