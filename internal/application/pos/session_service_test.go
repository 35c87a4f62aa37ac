package pos_test

import (
	"context"
	"testing"

	apppos "github.com/kopkar/backend/internal/application/pos"
	"github.com/kopkar/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) *apppos.SessionService {
	t.Helper()
	db, err := persistence.NewSQLiteDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, persistence.AutoMigrate(db.DB))
	return apppos.NewSessionService(persistence.NewGormPosSessionRepository(db.DB), nil)
}

func TestOpenSession_OnePerCashier(t *testing.T) {
	service := newSessionService(t)
	ctx := context.Background()
	cashierID := uuid.New()

	first, err := service.OpenSession(ctx, cashierID, decimal.NewFromInt(100000))
	require.NoError(t, err)

	_, err = service.OpenSession(ctx, cashierID, decimal.NewFromInt(50000))
	require.Error(t, err)
	assert.Equal(t, "ALREADY_EXISTS", checkoutErrorCode(t, err))

	// another cashier is unaffected
	_, err = service.OpenSession(ctx, uuid.New(), decimal.NewFromInt(50000))
	require.NoError(t, err)

	// closing frees the slot
	_, err = service.CloseSession(ctx, first.ID, decimal.NewFromInt(100000))
	require.NoError(t, err)
	reopened, err := service.OpenSession(ctx, cashierID, decimal.NewFromInt(75000))
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionNumber, reopened.SessionNumber)
}
