package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/kopkar/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends a movement row
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *stock.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID finds a movement by its ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockMovement, error) {
	var movement stock.StockMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// CountForYear returns how many movements exist for the given year
func (r *GormStockMovementRepository) CountForYear(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&stock.StockMovement{}).
		Where("movement_number LIKE ?", fmt.Sprintf("SM-%d-%%", year)).
		Count(&count).Error
	return count, err
}

// FindByProduct lists movements for one product at one warehouse, newest first
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, warehouseID, productID uuid.UUID, limit int) ([]stock.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	var movements []stock.StockMovement
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		Order("movement_date DESC, created_at DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

var _ stock.StockMovementRepository = (*GormStockMovementRepository)(nil)
