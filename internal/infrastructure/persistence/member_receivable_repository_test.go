package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/pos"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormMemberReceivableRepository_OutstandingTotalForMember(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMemberReceivableRepository(db)
	ctx := context.Background()

	memberID := uuid.New()
	saleDate := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

	t.Run("no receivables sums to zero", func(t *testing.T) {
		total, err := repo.OutstandingTotalForMember(ctx, memberID)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("sums unpaid remainder of pending receivables", func(t *testing.T) {
		first, err := pos.NewMemberReceivable(memberID, uuid.New(), decimal.NewFromInt(100), saleDate)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, first))

		second, err := pos.NewMemberReceivable(memberID, uuid.New(), decimal.NewFromInt(50), saleDate)
		require.NoError(t, err)
		require.NoError(t, second.ApplyPayment(decimal.NewFromInt(20)))
		require.NoError(t, repo.Create(ctx, second))

		total, err := repo.OutstandingTotalForMember(ctx, memberID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(130)))
	})

	t.Run("settled receivables drop out of the total", func(t *testing.T) {
		paid, err := pos.NewMemberReceivable(memberID, uuid.New(), decimal.NewFromInt(40), saleDate)
		require.NoError(t, err)
		require.NoError(t, paid.ApplyPayment(decimal.NewFromInt(40)))
		require.NoError(t, repo.Create(ctx, paid))

		total, err := repo.OutstandingTotalForMember(ctx, memberID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(130)))
	})

	t.Run("other members are unaffected", func(t *testing.T) {
		total, err := repo.OutstandingTotalForMember(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestGormMemberReceivableRepository_FindOutstandingByMember(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMemberReceivableRepository(db)
	ctx := context.Background()

	memberID := uuid.New()

	later, err := pos.NewMemberReceivable(memberID, uuid.New(), decimal.NewFromInt(10),
		time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, later))

	earlier, err := pos.NewMemberReceivable(memberID, uuid.New(), decimal.NewFromInt(20),
		time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, earlier))

	receivables, err := repo.FindOutstandingByMember(ctx, memberID)

	require.NoError(t, err)
	require.Len(t, receivables, 2)
	// oldest due month first
	assert.Equal(t, 3, receivables[0].DueMonth)
	assert.Equal(t, 6, receivables[1].DueMonth)
}
