package pos

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []ItemSpec {
	return []ItemSpec{
		{
			ProductID:   uuid.New(),
			ProductName: "Beras 5kg",
			UnitID:      uuid.New(),
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(65000),
			Subtotal:    decimal.NewFromInt(130000),
		},
		{
			ProductID:   uuid.New(),
			ProductName: "Minyak Goreng 1L",
			UnitID:      uuid.New(),
			Quantity:    decimal.NewFromInt(3),
			UnitPrice:   decimal.NewFromInt(18000),
			Subtotal:    decimal.NewFromInt(54000),
		},
	}
}

func TestNewPosTransaction(t *testing.T) {
	sessionID := uuid.New()
	warehouseID := uuid.New()

	t.Run("cash checkout computes total, change and one payment row", func(t *testing.T) {
		tx, err := NewPosTransaction("POS-20260801-0001", sessionID, warehouseID,
			nil, PaymentMethodCash, testItems(), decimal.Zero, decimal.NewFromInt(200000))
		require.NoError(t, err)
		assert.Equal(t, TransactionStatusCompleted, tx.Status)
		assert.True(t, tx.Subtotal.Equal(decimal.NewFromInt(184000)))
		assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(184000)))
		require.Len(t, tx.Items, 2)
		for _, item := range tx.Items {
			assert.Equal(t, tx.ID, item.TransactionID)
		}

		require.Len(t, tx.Payments, 1)
		payment := tx.Payment()
		require.NotNil(t, payment)
		assert.Equal(t, tx.ID, payment.TransactionID)
		assert.Equal(t, PaymentMethodCash, payment.Method)
		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(184000)))
		assert.True(t, payment.PaidAmount.Equal(decimal.NewFromInt(200000)))
		assert.True(t, payment.ChangeAmount.Equal(decimal.NewFromInt(16000)))
	})

	t.Run("discount reduces the total", func(t *testing.T) {
		tx, err := NewPosTransaction("POS-20260801-0002", sessionID, warehouseID,
			nil, PaymentMethodCash, testItems(), decimal.NewFromInt(4000), decimal.NewFromInt(180000))
		require.NoError(t, err)
		assert.True(t, tx.Subtotal.Equal(decimal.NewFromInt(184000)))
		assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(180000)))
	})

	t.Run("discount above subtotal floors total at zero", func(t *testing.T) {
		tx, err := NewPosTransaction("POS-20260801-0003", sessionID, warehouseID,
			nil, PaymentMethodCash, testItems(), decimal.NewFromInt(500000), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, tx.TotalAmount.IsZero())
	})

	t.Run("cash underpayment is rejected", func(t *testing.T) {
		_, err := NewPosTransaction("POS-20260801-0004", sessionID, warehouseID,
			nil, PaymentMethodCash, testItems(), decimal.Zero, decimal.NewFromInt(100000))
		require.Error(t, err)
	})

	t.Run("salary deduction requires a member", func(t *testing.T) {
		_, err := NewPosTransaction("POS-20260801-0005", sessionID, warehouseID,
			nil, PaymentMethodSalaryDeduction, testItems(), decimal.Zero, decimal.Zero)
		require.Error(t, err)

		memberID := uuid.New()
		tx, err := NewPosTransaction("POS-20260801-0006", sessionID, warehouseID,
			&memberID, PaymentMethodSalaryDeduction, testItems(), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		payment := tx.Payment()
		require.NotNil(t, payment)
		assert.True(t, payment.PaidAmount.Equal(tx.TotalAmount))
		assert.True(t, payment.ChangeAmount.IsZero())
	})

	t.Run("savings withdrawal requires a member", func(t *testing.T) {
		_, err := NewPosTransaction("POS-20260801-0007", sessionID, warehouseID,
			nil, PaymentMethodSavingsWithdrawal, testItems(), decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("mismatched subtotal is rejected", func(t *testing.T) {
		items := testItems()
		items[0].Subtotal = decimal.NewFromInt(130100)
		_, err := NewPosTransaction("POS-20260801-0008", sessionID, warehouseID,
			nil, PaymentMethodCash, items, decimal.Zero, decimal.NewFromInt(200000))
		require.Error(t, err)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		_, err := NewPosTransaction("POS-20260801-0009", sessionID, warehouseID,
			nil, PaymentMethodCash, nil, decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		items := testItems()
		items[0].Quantity = decimal.Zero
		items[0].Subtotal = decimal.Zero
		_, err := NewPosTransaction("POS-20260801-0010", sessionID, warehouseID,
			nil, PaymentMethodCash, items, decimal.Zero, decimal.NewFromInt(200000))
		require.Error(t, err)
	})

	t.Run("negative discount is rejected", func(t *testing.T) {
		_, err := NewPosTransaction("POS-20260801-0011", sessionID, warehouseID,
			nil, PaymentMethodCash, testItems(), decimal.NewFromInt(-1), decimal.NewFromInt(200000))
		require.Error(t, err)
	})
}

func TestReceivableDueDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	t.Run("mid-month sale falls due on the first of next month", func(t *testing.T) {
		sale := time.Date(2026, 8, 15, 14, 30, 0, 0, jakarta)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, jakarta), ReceivableDueDate(sale))
	})

	t.Run("december rolls into january", func(t *testing.T) {
		sale := time.Date(2026, 12, 31, 23, 0, 0, 0, jakarta)
		assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, jakarta), ReceivableDueDate(sale))
	})

	t.Run("first-of-month sale still falls due next month", func(t *testing.T) {
		sale := time.Date(2026, 8, 1, 0, 0, 0, 0, jakarta)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, jakarta), ReceivableDueDate(sale))
	})
}

func TestMemberReceivable(t *testing.T) {
	memberID := uuid.New()
	txID := uuid.New()
	sale := time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)

	receivable, err := NewMemberReceivable(memberID, txID, decimal.NewFromInt(184000), sale)
	require.NoError(t, err)
	assert.Equal(t, ReceivableStatusPending, receivable.Status)
	assert.Equal(t, 1, receivable.DueMonth)
	assert.Equal(t, 2027, receivable.DueYear)
	assert.True(t, receivable.Outstanding().Equal(decimal.NewFromInt(184000)))

	t.Run("partial then full payment settles", func(t *testing.T) {
		require.NoError(t, receivable.ApplyPayment(decimal.NewFromInt(100000)))
		assert.Equal(t, ReceivableStatusPending, receivable.Status)
		assert.True(t, receivable.Outstanding().Equal(decimal.NewFromInt(84000)))

		require.NoError(t, receivable.ApplyPayment(decimal.NewFromInt(84000)))
		assert.Equal(t, ReceivableStatusPaid, receivable.Status)
		assert.True(t, receivable.Outstanding().IsZero())
	})

	t.Run("overpayment and double settlement are rejected", func(t *testing.T) {
		require.Error(t, receivable.ApplyPayment(decimal.NewFromInt(1)))

		fresh, err := NewMemberReceivable(memberID, uuid.New(), decimal.NewFromInt(1000), sale)
		require.NoError(t, err)
		require.Error(t, fresh.ApplyPayment(decimal.NewFromInt(2000)))
	})
}

func TestPosSession(t *testing.T) {
	session, err := NewPosSession("SES-20260801-01", uuid.New(), decimal.NewFromInt(500000))
	require.NoError(t, err)
	require.True(t, session.IsOpen())

	require.NoError(t, session.RecordSale(PaymentMethodCash, decimal.NewFromInt(184000)))
	require.NoError(t, session.RecordSale(PaymentMethodSalaryDeduction, decimal.NewFromInt(50000)))
	require.NoError(t, session.RecordSale(PaymentMethodSavingsWithdrawal, decimal.NewFromInt(25000)))

	assert.True(t, session.TotalSales.Equal(decimal.NewFromInt(259000)))
	assert.True(t, session.TotalCash.Equal(decimal.NewFromInt(184000)))
	assert.True(t, session.TotalCredit.Equal(decimal.NewFromInt(50000)))
	assert.True(t, session.TotalSavings.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, 3, session.TransactionCount)
	assert.True(t, session.ExpectedCash().Equal(decimal.NewFromInt(684000)))

	require.NoError(t, session.Close(decimal.NewFromInt(684000)))
	assert.False(t, session.IsOpen())
	require.Error(t, session.RecordSale(PaymentMethodCash, decimal.NewFromInt(1)))
	require.Error(t, session.Close(decimal.NewFromInt(1)))
}
