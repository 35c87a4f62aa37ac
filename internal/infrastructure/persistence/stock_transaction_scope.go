package persistence

import (
	"context"

	appstock "github.com/kopkar/backend/internal/application/stock"
	"github.com/kopkar/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormStockScope implements the stock TransactionScope using GORM transactions
type GormStockScope struct {
	db *gorm.DB
}

// NewGormStockScope creates a new GormStockScope
func NewGormStockScope(db *gorm.DB) *GormStockScope {
	return &GormStockScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormStockScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockRepositories{tx: tx})
	})
}

type gormStockRepositories struct {
	tx *gorm.DB
}

// MovementRepo returns the movement log repository scoped to the current transaction
func (r *gormStockRepositories) MovementRepo() stock.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// WarehouseStockRepo returns the quantity repository scoped to the current transaction
func (r *gormStockRepositories) WarehouseStockRepo() stock.WarehouseStockRepository {
	return NewGormWarehouseStockRepository(r.tx)
}

var _ appstock.TransactionScope = (*GormStockScope)(nil)
var _ appstock.TransactionalRepositories = (*gormStockRepositories)(nil)
