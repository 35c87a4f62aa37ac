package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/kopkar/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordMovementRequest is one submitted stock mutation
type RecordMovementRequest struct {
	Type          stock.MovementType `json:"type"`
	WarehouseID   uuid.UUID          `json:"warehouse_id"`
	ProductID     uuid.UUID          `json:"product_id"`
	UnitID        uuid.UUID          `json:"unit_id"`
	Quantity      decimal.Decimal    `json:"quantity"`
	ToWarehouseID *uuid.UUID         `json:"to_warehouse_id,omitempty"`
	MovementDate  time.Time          `json:"movement_date"`
	ReferenceType string             `json:"reference_type,omitempty"`
	ReferenceID   string             `json:"reference_id,omitempty"`
	CreatedBy     *uuid.UUID         `json:"-"`
}

// StockLedgerService is the mechanical quantity accumulator. It inserts the
// movement row and applies its deltas to the per-warehouse quantities in one
// transaction. It never forbids negative resulting stock; sufficiency policy
// lives in the callers that pre-check before recording.
type StockLedgerService struct {
	scope              TransactionScope
	movementRepo       stock.StockMovementRepository
	warehouseStockRepo stock.WarehouseStockRepository
	logger             *zap.Logger
}

// NewStockLedgerService creates a new StockLedgerService
func NewStockLedgerService(scope TransactionScope, movementRepo stock.StockMovementRepository, warehouseStockRepo stock.WarehouseStockRepository, logger *zap.Logger) *StockLedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockLedgerService{scope: scope, movementRepo: movementRepo, warehouseStockRepo: warehouseStockRepo, logger: logger}
}

// RecordMovement validates and applies one stock mutation atomically:
// movement row, source quantity upsert, and for transfers the destination
// quantity upsert.
func (s *StockLedgerService) RecordMovement(ctx context.Context, req RecordMovementRequest) (*stock.StockMovement, error) {
	movementDate := req.MovementDate
	if movementDate.IsZero() {
		movementDate = time.Now()
	}

	var movement *stock.StockMovement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		count, err := repos.MovementRepo().CountForYear(ctx, movementDate.Year())
		if err != nil {
			return fmt.Errorf("failed to count movements: %w", err)
		}
		movementNumber := fmt.Sprintf("SM-%d-%06d", movementDate.Year(), count+1)

		movement, err = stock.NewStockMovement(movementNumber, req.Type,
			req.WarehouseID, req.ProductID, req.UnitID, req.Quantity,
			req.ToWarehouseID, movementDate)
		if err != nil {
			return err
		}
		if req.ReferenceType != "" {
			movement.WithReference(req.ReferenceType, req.ReferenceID)
		}
		if req.CreatedBy != nil {
			movement.WithCreatedBy(*req.CreatedBy)
		}

		if err := repos.MovementRepo().Create(ctx, movement); err != nil {
			return err
		}
		if err := repos.WarehouseStockRepo().UpsertIncrement(ctx, movement.WarehouseID, movement.ProductID, movement.SourceDelta()); err != nil {
			return err
		}
		if movement.IsTransfer() {
			if err := repos.WarehouseStockRepo().UpsertIncrement(ctx, *movement.ToWarehouseID, movement.ProductID, movement.DestinationDelta()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock movement recorded",
		zap.String("movement_number", movement.MovementNumber),
		zap.String("type", movement.Type.String()),
		zap.String("quantity", movement.Quantity.String()))
	return movement, nil
}

// GetQuantity returns the current quantity at a warehouse, zero when no
// row exists
func (s *StockLedgerService) GetQuantity(ctx context.Context, warehouseID, productID uuid.UUID) (decimal.Decimal, error) {
	return s.warehouseStockRepo.GetQuantity(ctx, warehouseID, productID)
}

// defaultHistoryLimit caps a movement history read when the caller gives
// no limit
const defaultHistoryLimit = 50

// MovementHistory lists a product's movements at one warehouse, newest
// first
func (s *StockLedgerService) MovementHistory(ctx context.Context, warehouseID, productID uuid.UUID, limit int) ([]stock.StockMovement, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.movementRepo.FindByProduct(ctx, warehouseID, productID, limit)
}
