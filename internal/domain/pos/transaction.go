package pos

import (
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a checkout is settled
type PaymentMethod string

const (
	// PaymentMethodCash is settled at the drawer
	PaymentMethodCash PaymentMethod = "CASH"
	// PaymentMethodSalaryDeduction defers payment to the next payroll
	// cycle and books a member receivable
	PaymentMethodSalaryDeduction PaymentMethod = "SALARY_DEDUCTION"
	// PaymentMethodSavingsWithdrawal pays from the member's sukarela
	// savings balance
	PaymentMethodSavingsWithdrawal PaymentMethod = "SAVINGS_WITHDRAWAL"
)

// String returns the string representation
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid returns true if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodSalaryDeduction, PaymentMethodSavingsWithdrawal:
		return true
	}
	return false
}

// RequiresMember reports whether the method can only be used by a member
func (m PaymentMethod) RequiresMember() bool {
	return m == PaymentMethodSalaryDeduction || m == PaymentMethodSavingsWithdrawal
}

// TransactionStatus is the state of a checkout
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
)

// lineTolerance absorbs rounding drift between a submitted subtotal and
// quantity times unit price
var lineTolerance = decimal.NewFromFloat(0.01)

// PosTransaction is one completed checkout. It is written exactly once,
// inside the checkout's atomic block, and never mutated afterwards.
type PosTransaction struct {
	shared.BaseEntity
	TransactionNumber string               `gorm:"type:varchar(30);not null;uniqueIndex"`
	IdempotencyKey    *string              `gorm:"type:varchar(64);uniqueIndex"`
	SessionID         uuid.UUID            `gorm:"type:uuid;not null;index"`
	WarehouseID       uuid.UUID            `gorm:"type:uuid;not null"`
	MemberID          *uuid.UUID           `gorm:"type:uuid;index"`
	Status            TransactionStatus    `gorm:"type:varchar(12);not null"`
	Subtotal          decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Discount          decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount       decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TransactionDate   time.Time            `gorm:"not null;index"`
	Items             []PosTransactionItem `gorm:"foreignKey:TransactionID;references:ID"`
	Payments          []PosPayment         `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for GORM
func (PosTransaction) TableName() string {
	return "pos_transactions"
}

// PosTransactionItem is one line of a checkout
type PosTransactionItem struct {
	shared.BaseEntity
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName   string          `gorm:"type:varchar(100);not null"`
	UnitID        uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (PosTransactionItem) TableName() string {
	return "pos_transaction_items"
}

// PosPayment is one payment against a checkout. A checkout carries a
// single payment today; the table is one-to-many for extensibility.
type PosPayment struct {
	shared.BaseEntity
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Method        PaymentMethod   `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ChangeAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PosPayment) TableName() string {
	return "pos_payments"
}

// ItemSpec is one submitted checkout line before validation
type ItemSpec struct {
	ProductID   uuid.UUID
	ProductName string
	UnitID      uuid.UUID
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewPosTransaction validates the lines and totals and builds the checkout
// with its single payment row. Each subtotal must match quantity times unit
// price within tolerance; the total is the item sum minus discount, floored
// at zero. Cash checkouts require the tendered amount to cover the total;
// salary-deduction and savings-withdrawal require a member.
func NewPosTransaction(
	transactionNumber string,
	sessionID, warehouseID uuid.UUID,
	memberID *uuid.UUID,
	method PaymentMethod,
	items []ItemSpec,
	discount decimal.Decimal,
	paidAmount decimal.Decimal,
) (*PosTransaction, error) {
	if transactionNumber == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_NUMBER", "Transaction number cannot be empty")
	}
	if sessionID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Session ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Warehouse ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid payment method")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Checkout requires at least one item")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Discount cannot be negative")
	}
	if method.RequiresMember() && (memberID == nil || *memberID == uuid.Nil) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment method requires a member")
	}

	subtotal := decimal.Zero
	lines := make([]PosTransactionItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item product ID cannot be empty")
		}
		if !item.Quantity.IsPositive() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item unit price cannot be negative")
		}
		expected := item.Quantity.Mul(item.UnitPrice)
		if item.Subtotal.Sub(expected).Abs().GreaterThan(lineTolerance) {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item subtotal does not match quantity times unit price")
		}
		subtotal = subtotal.Add(item.Subtotal)
		lines = append(lines, PosTransactionItem{
			BaseEntity:  shared.NewBaseEntity(),
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitID:      item.UnitID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	change := decimal.Zero
	switch method {
	case PaymentMethodCash:
		if paidAmount.LessThan(total) {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Paid amount is less than the total")
		}
		change = paidAmount.Sub(total)
	default:
		paidAmount = total
	}

	tx := &PosTransaction{
		BaseEntity:        shared.NewBaseEntity(),
		TransactionNumber: transactionNumber,
		SessionID:         sessionID,
		WarehouseID:       warehouseID,
		MemberID:          memberID,
		Status:            TransactionStatusCompleted,
		Subtotal:          subtotal,
		Discount:          discount,
		TotalAmount:       total,
		TransactionDate:   time.Now(),
		Items:             lines,
	}
	for i := range tx.Items {
		tx.Items[i].TransactionID = tx.ID
	}
	tx.Payments = []PosPayment{{
		BaseEntity:    shared.NewBaseEntity(),
		TransactionID: tx.ID,
		Method:        method,
		Amount:        total,
		PaidAmount:    paidAmount,
		ChangeAmount:  change,
	}}
	return tx, nil
}

// Payment returns the checkout's single payment row
func (t *PosTransaction) Payment() *PosPayment {
	if len(t.Payments) == 0 {
		return nil
	}
	return &t.Payments[0]
}

// WithIdempotencyKey tags the checkout with the client-supplied key. The
// column is nullable so keyless checkouts do not collide on the unique index.
func (t *PosTransaction) WithIdempotencyKey(key string) *PosTransaction {
	t.IdempotencyKey = &key
	return t
}
