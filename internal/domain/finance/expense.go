package finance

import (
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory groups cash expenses. A category may be linked to a
// ledger account; only linked categories can be auto-journaled.
type ExpenseCategory struct {
	shared.BaseEntity
	Name              string `gorm:"type:varchar(100);not null;uniqueIndex"`
	LinkedAccountCode string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

// NewExpenseCategory creates an expense category. The linked account code
// may be empty; unlinked categories are never auto-journaled.
func NewExpenseCategory(name, linkedAccountCode string) (*ExpenseCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Category name cannot be empty")
	}
	return &ExpenseCategory{
		BaseEntity:        shared.NewBaseEntity(),
		Name:              name,
		LinkedAccountCode: linkedAccountCode,
	}, nil
}

// HasLinkedAccount reports whether the category can be auto-journaled
func (c *ExpenseCategory) HasLinkedAccount() bool {
	return c.LinkedAccountCode != ""
}

// Expense is one cash expense. The row always persists on its own; the
// journal entry is attached afterwards when auto-journaling succeeds.
type Expense struct {
	shared.BaseEntity
	ExpenseNumber  string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ExpenseDate    time.Time       `gorm:"type:date;not null;index"`
	Description    string          `gorm:"type:varchar(255)"`
	JournalEntryID *uuid.UUID      `gorm:"type:uuid"`
	CreatedBy      *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense records a cash expense
func NewExpense(expenseNumber string, categoryID uuid.UUID, amount decimal.Decimal, expenseDate time.Time, description string) (*Expense, error) {
	if expenseNumber == "" {
		return nil, shared.NewDomainError("INVALID_EXPENSE_NUMBER", "Expense number cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Category ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Expense amount must be positive")
	}
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}
	return &Expense{
		BaseEntity:    shared.NewBaseEntity(),
		ExpenseNumber: expenseNumber,
		CategoryID:    categoryID,
		Amount:        amount,
		ExpenseDate:   expenseDate,
		Description:   description,
	}, nil
}

// AttachJournal links the auto-generated journal entry to the expense
func (e *Expense) AttachJournal(entryID uuid.UUID) {
	e.JournalEntryID = &entryID
	e.UpdatedAt = time.Now()
}
