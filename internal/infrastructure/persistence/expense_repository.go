package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/finance"
	"github.com/kopkar/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExpenseCategoryRepository implements ExpenseCategoryRepository using GORM
type GormExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewGormExpenseCategoryRepository creates a new GormExpenseCategoryRepository
func NewGormExpenseCategoryRepository(db *gorm.DB) *GormExpenseCategoryRepository {
	return &GormExpenseCategoryRepository{db: db}
}

// FindByID finds a category
func (r *GormExpenseCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseCategory, error) {
	var category finance.ExpenseCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its unique name
func (r *GormExpenseCategoryRepository) FindByName(ctx context.Context, name string) (*finance.ExpenseCategory, error) {
	var category finance.ExpenseCategory
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create persists a new category
func (r *GormExpenseCategoryRepository) Create(ctx context.Context, category *finance.ExpenseCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

var _ finance.ExpenseCategoryRepository = (*GormExpenseCategoryRepository)(nil)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// Create persists a new expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// Save persists expense changes such as the attached journal
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// CountForYear returns how many expenses exist for the given year
func (r *GormExpenseRepository) CountForYear(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&finance.Expense{}).
		Where("expense_number LIKE ?", fmt.Sprintf("EXP-%d-%%", year)).
		Count(&count).Error
	return count, err
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
