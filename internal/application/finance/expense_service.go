package finance

import (
	"context"
	"fmt"
	"time"

	appaccounting "github.com/kopkar/backend/internal/application/accounting"
	"github.com/kopkar/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordExpenseRequest is one submitted cash expense
type RecordExpenseRequest struct {
	CategoryID  uuid.UUID       `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	Description string          `json:"description,omitempty"`
	AutoJournal bool            `json:"auto_journal"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// ExpenseResponse reports one recorded expense
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	ExpenseNumber string          `json:"expense_number"`
	Amount        decimal.Decimal `json:"amount"`
	EntryNumber   string          `json:"entry_number,omitempty"`
}

// ExpenseService records cash expenses. The expense row always persists on
// its own; the journal is created only when the caller asked for it and the
// category is linked to a ledger account, and its failure never undoes the
// expense.
type ExpenseService struct {
	expenseRepo  finance.ExpenseRepository
	categoryRepo finance.ExpenseCategoryRepository
	generator    *appaccounting.JournalGenerator
	logger       *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	categoryRepo finance.ExpenseCategoryRepository,
	generator *appaccounting.JournalGenerator,
	logger *zap.Logger,
) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		generator:    generator,
		logger:       logger,
	}
}

// CreateCategory creates an expense category, optionally linked to a
// ledger account code for automatic journaling
func (s *ExpenseService) CreateCategory(ctx context.Context, name, linkedAccountCode string) (*finance.ExpenseCategory, error) {
	category, err := finance.NewExpenseCategory(name, linkedAccountCode)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RecordExpense persists the expense and best-effort auto-journals it
func (s *ExpenseService) RecordExpense(ctx context.Context, req RecordExpenseRequest) (*ExpenseResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}
	count, err := s.expenseRepo.CountForYear(ctx, expenseDate.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to count expenses: %w", err)
	}
	expenseNumber := fmt.Sprintf("EXP-%d-%05d", expenseDate.Year(), count+1)

	expense, err := finance.NewExpense(expenseNumber, category.ID, req.Amount, expenseDate, req.Description)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		expense.CreatedBy = req.CreatedBy
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	response := &ExpenseResponse{
		ID:            expense.ID,
		ExpenseNumber: expense.ExpenseNumber,
		Amount:        expense.Amount,
	}

	if req.AutoJournal && category.HasLinkedAccount() && s.generator != nil {
		entry, err := s.generator.CashExpense(ctx, category.LinkedAccountCode, expense.Amount, expense.ID.String())
		if err != nil {
			s.logger.Error("expense journal failed, expense kept",
				zap.String("expense_number", expense.ExpenseNumber),
				zap.Error(err))
		} else {
			expense.AttachJournal(entry.ID)
			if err := s.expenseRepo.Save(ctx, expense); err != nil {
				s.logger.Error("failed to attach journal to expense", zap.Error(err))
			}
			response.EntryNumber = entry.EntryNumber
		}
	}

	s.logger.Info("expense recorded",
		zap.String("expense_number", expense.ExpenseNumber),
		zap.String("amount", expense.Amount.StringFixed(2)))
	return response, nil
}
