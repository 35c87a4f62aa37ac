package persistence

import (
	"context"

	apppos "github.com/kopkar/backend/internal/application/pos"
	"github.com/kopkar/backend/internal/domain/pos"
	"github.com/kopkar/backend/internal/domain/savings"
	"github.com/kopkar/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormCheckoutScope implements CheckoutScope using GORM transactions. All
// rows written by one checkout commit or roll back together.
type GormCheckoutScope struct {
	db *gorm.DB
}

// NewGormCheckoutScope creates a new GormCheckoutScope
func NewGormCheckoutScope(db *gorm.DB) *GormCheckoutScope {
	return &GormCheckoutScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCheckoutScope) Execute(ctx context.Context, fn func(repos apppos.CheckoutRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
}

type gormCheckoutRepositories struct {
	tx *gorm.DB
}

// TransactionRepo returns the checkout log repository scoped to the current transaction
func (r *gormCheckoutRepositories) TransactionRepo() pos.PosTransactionRepository {
	return NewGormPosTransactionRepository(r.tx)
}

// ReceivableRepo returns the member receivable repository scoped to the current transaction
func (r *gormCheckoutRepositories) ReceivableRepo() pos.MemberReceivableRepository {
	return NewGormMemberReceivableRepository(r.tx)
}

// SessionRepo returns the cashier session repository scoped to the current transaction
func (r *gormCheckoutRepositories) SessionRepo() pos.PosSessionRepository {
	return NewGormPosSessionRepository(r.tx)
}

// SavingsAccountRepo returns the savings account repository scoped to the current transaction
func (r *gormCheckoutRepositories) SavingsAccountRepo() savings.SavingsAccountRepository {
	return NewGormSavingsAccountRepository(r.tx)
}

// SavingsTransactionRepo returns the savings mutation log repository scoped to the current transaction
func (r *gormCheckoutRepositories) SavingsTransactionRepo() savings.SavingsTransactionRepository {
	return NewGormSavingsTransactionRepository(r.tx)
}

// MovementRepo returns the stock movement log repository scoped to the current transaction
func (r *gormCheckoutRepositories) MovementRepo() stock.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// WarehouseStockRepo returns the warehouse quantity repository scoped to the current transaction
func (r *gormCheckoutRepositories) WarehouseStockRepo() stock.WarehouseStockRepository {
	return NewGormWarehouseStockRepository(r.tx)
}

var _ apppos.CheckoutScope = (*GormCheckoutScope)(nil)
var _ apppos.CheckoutRepositories = (*gormCheckoutRepositories)(nil)
