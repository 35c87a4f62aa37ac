package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appstock "github.com/kopkar/backend/internal/application/stock"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/kopkar/backend/internal/domain/stock"
	"github.com/kopkar/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockService(t *testing.T) (*appstock.StockLedgerService, *persistence.Database) {
	t.Helper()
	db, err := persistence.NewSQLiteDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, persistence.AutoMigrate(db.DB))

	service := appstock.NewStockLedgerService(
		persistence.NewGormStockScope(db.DB),
		persistence.NewGormStockMovementRepository(db.DB),
		persistence.NewGormWarehouseStockRepository(db.DB),
		nil,
	)
	return service, db
}

func TestRecordMovement_InThenOut(t *testing.T) {
	service, _ := newStockService(t)
	ctx := context.Background()
	warehouseID, productID, unitID := uuid.New(), uuid.New(), uuid.New()

	in, err := service.RecordMovement(ctx, appstock.RecordMovementRequest{
		Type:        stock.MovementTypeIn,
		WarehouseID: warehouseID,
		ProductID:   productID,
		UnitID:      unitID,
		Quantity:    decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Regexp(t, `^SM-\d{4}-000001$`, in.MovementNumber)
	assert.True(t, in.Quantity.Equal(decimal.NewFromInt(20)), "receipts store the positive quantity")

	out, err := service.RecordMovement(ctx, appstock.RecordMovementRequest{
		Type:        stock.MovementTypeOut,
		WarehouseID: warehouseID,
		ProductID:   productID,
		UnitID:      unitID,
		Quantity:    decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	assert.Regexp(t, `^SM-\d{4}-000002$`, out.MovementNumber)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(-8)), "issues store the negated quantity")

	quantity, err := service.GetQuantity(ctx, warehouseID, productID)
	require.NoError(t, err)
	assert.True(t, quantity.Equal(decimal.NewFromInt(12)))
}

func TestRecordMovement_TransferMovesBetweenWarehouses(t *testing.T) {
	service, _ := newStockService(t)
	ctx := context.Background()
	source, destination, productID, unitID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	_, err := service.RecordMovement(ctx, appstock.RecordMovementRequest{
		Type:        stock.MovementTypeIn,
		WarehouseID: source,
		ProductID:   productID,
		UnitID:      unitID,
		Quantity:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	movement, err := service.RecordMovement(ctx, appstock.RecordMovementRequest{
		Type:          stock.MovementTypeTransfer,
		WarehouseID:   source,
		ProductID:     productID,
		UnitID:        unitID,
		Quantity:      decimal.NewFromInt(4),
		ToWarehouseID: &destination,
	})
	require.NoError(t, err)
	assert.True(t, movement.IsTransfer())

	sourceQty, err := service.GetQuantity(ctx, source, productID)
	require.NoError(t, err)
	assert.True(t, sourceQty.Equal(decimal.NewFromInt(6)))

	destQty, err := service.GetQuantity(ctx, destination, productID)
	require.NoError(t, err)
	assert.True(t, destQty.Equal(decimal.NewFromInt(4)))
}

func TestRecordMovement_NegativeStockAllowed(t *testing.T) {
	service, _ := newStockService(t)
	ctx := context.Background()
	warehouseID, productID, unitID := uuid.New(), uuid.New(), uuid.New()

	// issuing from an empty warehouse is the caller's policy decision;
	// the ledger only accumulates
	_, err := service.RecordMovement(ctx, appstock.RecordMovementRequest{
		Type:        stock.MovementTypeOut,
		WarehouseID: warehouseID,
		ProductID:   productID,
		UnitID:      unitID,
		Quantity:    decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	quantity, err := service.GetQuantity(ctx, warehouseID, productID)
	require.NoError(t, err)
	assert.True(t, quantity.Equal(decimal.NewFromInt(-5)))
}

func TestRecordMovement_SignedAdjustment(t *testing.T) {
	service, _ := newStockService(t)
	ctx := context.Background()
	warehouseID, productID, unitID := uuid.New(), uuid.New(), uuid.New()

	_, err := service.RecordMovement(ctx, appstock.RecordMovementRequest{
		Type:        stock.MovementTypeAdjustment,
		WarehouseID: warehouseID,
		ProductID:   productID,
		UnitID:      unitID,
		Quantity:    decimal.NewFromInt(-3),
	})
	require.NoError(t, err)

	quantity, err := service.GetQuantity(ctx, warehouseID, productID)
	require.NoError(t, err)
	assert.True(t, quantity.Equal(decimal.NewFromInt(-3)))
}

func TestMovementHistory_NewestFirstPerProduct(t *testing.T) {
	service, _ := newStockService(t)
	ctx := context.Background()
	warehouseID, productID, unitID := uuid.New(), uuid.New(), uuid.New()

	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.RecordMovement(ctx, appstock.RecordMovementRequest{
		Type:         stock.MovementTypeIn,
		WarehouseID:  warehouseID,
		ProductID:    productID,
		UnitID:       unitID,
		Quantity:     decimal.NewFromInt(20),
		MovementDate: march,
	})
	require.NoError(t, err)
	_, err = service.RecordMovement(ctx, appstock.RecordMovementRequest{
		Type:         stock.MovementTypeOut,
		WarehouseID:  warehouseID,
		ProductID:    productID,
		UnitID:       unitID,
		Quantity:     decimal.NewFromInt(5),
		MovementDate: march.AddDate(0, 0, 3),
	})
	require.NoError(t, err)

	// a different product never shows up in this product's history
	_, err = service.RecordMovement(ctx, appstock.RecordMovementRequest{
		Type:         stock.MovementTypeIn,
		WarehouseID:  warehouseID,
		ProductID:    uuid.New(),
		UnitID:       unitID,
		Quantity:     decimal.NewFromInt(99),
		MovementDate: march,
	})
	require.NoError(t, err)

	history, err := service.MovementHistory(ctx, warehouseID, productID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, stock.MovementTypeOut, history[0].Type)
	assert.Equal(t, stock.MovementTypeIn, history[1].Type)

	limited, err := service.MovementHistory(ctx, warehouseID, productID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, stock.MovementTypeOut, limited[0].Type)
}

func TestRecordMovement_TransferRequiresDestination(t *testing.T) {
	service, db := newStockService(t)

	_, err := service.RecordMovement(context.Background(), appstock.RecordMovementRequest{
		Type:        stock.MovementTypeTransfer,
		WarehouseID: uuid.New(),
		ProductID:   uuid.New(),
		UnitID:      uuid.New(),
		Quantity:    decimal.NewFromInt(1),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)

	var count int64
	require.NoError(t, db.DB.Model(&stock.StockMovement{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
