package savings

import (
	"fmt"
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsType distinguishes the three cooperative savings products
type SavingsType string

const (
	// SavingsTypePokok is the one-time membership principal deposit
	SavingsTypePokok SavingsType = "POKOK"
	// SavingsTypeWajib is the mandatory monthly deposit
	SavingsTypeWajib SavingsType = "WAJIB"
	// SavingsTypeSukarela is the voluntary deposit, the only withdrawable type
	SavingsTypeSukarela SavingsType = "SUKARELA"
)

// String returns the string representation
func (t SavingsType) String() string {
	return string(t)
}

// IsValid returns true if the savings type is valid
func (t SavingsType) IsValid() bool {
	switch t {
	case SavingsTypePokok, SavingsTypeWajib, SavingsTypeSukarela:
		return true
	}
	return false
}

// IsWithdrawable reports whether members may withdraw from this type.
// Pokok and wajib balances are locked until membership ends.
func (t SavingsType) IsWithdrawable() bool {
	return t == SavingsTypeSukarela
}

// TransactionType is the direction of a savings mutation
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// SavingsAccount is one member's balance in one savings product
type SavingsAccount struct {
	shared.BaseAggregateRoot
	MemberID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_savings_member_type,priority:1"`
	Type     SavingsType     `gorm:"type:varchar(10);not null;uniqueIndex:idx_savings_member_type,priority:2"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (SavingsAccount) TableName() string {
	return "savings_accounts"
}

// SavingsTransaction is an append-only row recording one deposit or
// withdrawal together with the balance it produced.
type SavingsTransaction struct {
	shared.BaseEntity
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	MemberID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            TransactionType `gorm:"type:varchar(12);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TransactionDate time.Time       `gorm:"not null;index"`
	Description     string          `gorm:"type:varchar(255)"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SavingsTransaction) TableName() string {
	return "savings_transactions"
}

// NewSavingsAccount opens a zero-balance account for a member
func NewSavingsAccount(memberID uuid.UUID, savingsType SavingsType) (*SavingsAccount, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if !savingsType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid savings type")
	}
	return &SavingsAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberID:          memberID,
		Type:              savingsType,
		Balance:           decimal.Zero,
	}, nil
}

// Deposit increases the balance and returns the transaction row
func (a *SavingsAccount) Deposit(amount decimal.Decimal, description string) (*SavingsTransaction, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Deposit amount must be positive")
	}

	now := time.Now()
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = now
	a.IncrementVersion()

	return &SavingsTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		AccountID:       a.ID,
		MemberID:        a.MemberID,
		Type:            TransactionTypeDeposit,
		Amount:          amount,
		BalanceAfter:    a.Balance,
		TransactionDate: now,
		Description:     description,
	}, nil
}

// Withdraw decreases the balance. Only sukarela accounts allow withdrawal,
// and never below zero.
func (a *SavingsAccount) Withdraw(amount decimal.Decimal, description string) (*SavingsTransaction, error) {
	if !a.Type.IsWithdrawable() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Savings type %s does not allow withdrawal", a.Type))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Withdrawal amount must be positive")
	}
	if a.Balance.LessThan(amount) {
		return nil, shared.NewDomainError("INSUFFICIENT_BALANCE",
			fmt.Sprintf("Balance %s is less than withdrawal %s", a.Balance.StringFixed(2), amount.StringFixed(2)))
	}

	now := time.Now()
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = now
	a.IncrementVersion()

	return &SavingsTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		AccountID:       a.ID,
		MemberID:        a.MemberID,
		Type:            TransactionTypeWithdrawal,
		Amount:          amount,
		BalanceAfter:    a.Balance,
		TransactionDate: now,
		Description:     description,
	}, nil
}
