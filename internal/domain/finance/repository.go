package finance

import (
	"context"

	"github.com/google/uuid"
)

// ExpenseCategoryRepository provides access to expense categories
type ExpenseCategoryRepository interface {
	// FindByID finds a category
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseCategory, error)
	// FindByName finds a category by its unique name
	FindByName(ctx context.Context, name string) (*ExpenseCategory, error)
	// Create persists a new category
	Create(ctx context.Context, category *ExpenseCategory) error
}

// ExpenseRepository provides access to expenses
type ExpenseRepository interface {
	// FindByID finds an expense
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	// Create persists a new expense
	Create(ctx context.Context, expense *Expense) error
	// Save persists expense changes such as the attached journal
	Save(ctx context.Context, expense *Expense) error
	// CountForYear returns how many expenses exist for the given year
	CountForYear(ctx context.Context, year int) (int64, error)
}
