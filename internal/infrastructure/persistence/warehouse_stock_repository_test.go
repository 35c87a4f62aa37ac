package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormWarehouseStockRepository_UpsertIncrement(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormWarehouseStockRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	productID := uuid.New()

	t.Run("missing row reads as zero", func(t *testing.T) {
		qty, err := repo.GetQuantity(ctx, warehouseID, productID)
		require.NoError(t, err)
		assert.True(t, qty.IsZero())
	})

	t.Run("first increment creates the row", func(t *testing.T) {
		require.NoError(t, repo.UpsertIncrement(ctx, warehouseID, productID, decimal.NewFromInt(10)))

		qty, err := repo.GetQuantity(ctx, warehouseID, productID)
		require.NoError(t, err)
		assert.True(t, qty.Equal(decimal.NewFromInt(10)))
	})

	t.Run("subsequent increments accumulate", func(t *testing.T) {
		require.NoError(t, repo.UpsertIncrement(ctx, warehouseID, productID, decimal.NewFromInt(5)))
		require.NoError(t, repo.UpsertIncrement(ctx, warehouseID, productID, decimal.NewFromInt(-3)))

		qty, err := repo.GetQuantity(ctx, warehouseID, productID)
		require.NoError(t, err)
		assert.True(t, qty.Equal(decimal.NewFromInt(12)))
	})

	t.Run("quantity may go negative for adjustments", func(t *testing.T) {
		otherProduct := uuid.New()
		require.NoError(t, repo.UpsertIncrement(ctx, warehouseID, otherProduct, decimal.NewFromInt(-2)))

		qty, err := repo.GetQuantity(ctx, warehouseID, otherProduct)
		require.NoError(t, err)
		assert.True(t, qty.Equal(decimal.NewFromInt(-2)))
	})

	t.Run("rows are isolated per warehouse", func(t *testing.T) {
		otherWarehouse := uuid.New()
		require.NoError(t, repo.UpsertIncrement(ctx, otherWarehouse, productID, decimal.NewFromInt(7)))

		qty, err := repo.GetQuantity(ctx, warehouseID, productID)
		require.NoError(t, err)
		assert.True(t, qty.Equal(decimal.NewFromInt(12)))

		rows, err := repo.FindByWarehouse(ctx, otherWarehouse)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(7)))
	})
}
