package persistence

import (
	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/kopkar/backend/internal/domain/finance"
	"github.com/kopkar/backend/internal/domain/loan"
	"github.com/kopkar/backend/internal/domain/member"
	"github.com/kopkar/backend/internal/domain/pos"
	"github.com/kopkar/backend/internal/domain/savings"
	"github.com/kopkar/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted entity.
// Ordered so referenced tables exist before their referrers.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accounting.Account{},
		&accounting.JournalEntry{},
		&accounting.JournalEntryLine{},
		&member.Member{},
		&savings.SavingsAccount{},
		&savings.SavingsTransaction{},
		&loan.Loan{},
		&loan.LoanSchedule{},
		&stock.WarehouseStock{},
		&stock.StockMovement{},
		&pos.PosSession{},
		&pos.PosTransaction{},
		&pos.PosTransactionItem{},
		&pos.PosPayment{},
		&pos.MemberReceivable{},
		&finance.ExpenseCategory{},
		&finance.Expense{},
		&AuditLog{},
	)
}
