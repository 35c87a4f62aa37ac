package stock

import (
	"context"

	"github.com/kopkar/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the stock repositories.
// A movement insert and its stock upserts always run inside one scope so
// the ledger and the quantity rows can never diverge.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock repositories
// within one transaction
type TransactionalRepositories interface {
	// MovementRepo returns the movement log repository scoped to the
	// current transaction
	MovementRepo() stock.StockMovementRepository
	// WarehouseStockRepo returns the quantity repository scoped to the
	// current transaction
	WarehouseStockRepo() stock.WarehouseStockRepository
}

// NoOpTransactionScope runs functions without a real transaction
type NoOpTransactionScope struct {
	movementRepo       stock.StockMovementRepository
	warehouseStockRepo stock.WarehouseStockRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	movementRepo stock.StockMovementRepository,
	warehouseStockRepo stock.WarehouseStockRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{movementRepo: movementRepo, warehouseStockRepo: warehouseStockRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MovementRepo returns the movement log repository
func (s *NoOpTransactionScope) MovementRepo() stock.StockMovementRepository {
	return s.movementRepo
}

// WarehouseStockRepo returns the quantity repository
func (s *NoOpTransactionScope) WarehouseStockRepo() stock.WarehouseStockRepository {
	return s.warehouseStockRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
