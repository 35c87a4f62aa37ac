package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseStockRepository maintains the per-(warehouse, product) quantity
// rows. Quantities are only ever changed by increments, never overwritten.
type WarehouseStockRepository interface {
	// GetQuantity returns the current quantity, zero if no row exists
	GetQuantity(ctx context.Context, warehouseID, productID uuid.UUID) (decimal.Decimal, error)
	// UpsertIncrement creates the row at delta if absent, otherwise adds
	// delta to the stored quantity
	UpsertIncrement(ctx context.Context, warehouseID, productID uuid.UUID, delta decimal.Decimal) error
	// FindByWarehouse lists stock rows for a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]WarehouseStock, error)
}

// StockMovementRepository is the append-only movement log
type StockMovementRepository interface {
	// Create appends a movement row
	Create(ctx context.Context, movement *StockMovement) error
	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)
	// CountForYear returns how many movements exist for the given year,
	// used to derive the next movement number
	CountForYear(ctx context.Context, year int) (int64, error)
	// FindByProduct lists movements for one product at one warehouse,
	// newest first
	FindByProduct(ctx context.Context, warehouseID, productID uuid.UUID, limit int) ([]StockMovement, error)
}
