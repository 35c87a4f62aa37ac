package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/kopkar/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWarehouseStockRepository implements WarehouseStockRepository using GORM
type GormWarehouseStockRepository struct {
	db *gorm.DB
}

// NewGormWarehouseStockRepository creates a new GormWarehouseStockRepository
func NewGormWarehouseStockRepository(db *gorm.DB) *GormWarehouseStockRepository {
	return &GormWarehouseStockRepository{db: db}
}

// GetQuantity returns the current quantity, zero if no row exists
func (r *GormWarehouseStockRepository) GetQuantity(ctx context.Context, warehouseID, productID uuid.UUID) (decimal.Decimal, error) {
	var row stock.WarehouseStock
	err := r.db.WithContext(ctx).
		First(&row, "warehouse_id = ? AND product_id = ?", warehouseID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return row.Quantity, nil
}

// UpsertIncrement creates the row at delta if absent, otherwise adds delta
// to the stored quantity. The increment is applied in SQL so concurrent
// movements against the same row serialize at the database.
func (r *GormWarehouseStockRepository) UpsertIncrement(ctx context.Context, warehouseID, productID uuid.UUID, delta decimal.Decimal) error {
	row := stock.WarehouseStock{
		BaseEntity:  shared.NewBaseEntity(),
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    delta,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("warehouse_stocks.quantity + ?", delta),
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
}

// FindByWarehouse lists stock rows for a warehouse
func (r *GormWarehouseStockRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]stock.WarehouseStock, error) {
	var rows []stock.WarehouseStock
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("product_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var _ stock.WarehouseStockRepository = (*GormWarehouseStockRepository)(nil)
