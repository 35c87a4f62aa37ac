package stock

import (
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the kind of stock movement
type MovementType string

const (
	// MovementTypeIn is a stock receipt (purchase, consignment intake)
	MovementTypeIn MovementType = "IN"
	// MovementTypeOut is a stock issue (sale, spoilage)
	MovementTypeOut MovementType = "OUT"
	// MovementTypeTransfer moves stock between warehouses
	MovementTypeTransfer MovementType = "TRANSFER"
	// MovementTypeAdjustment corrects stock after a count; may be signed
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// String returns the string representation
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}

// WarehouseStock holds the current quantity of one product at one warehouse.
// There is exactly one row per (warehouse, product) pair and it is mutated
// only through the stock ledger's upsert-increment primitive.
type WarehouseStock struct {
	shared.BaseEntity
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_pair,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_pair,priority:2"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (WarehouseStock) TableName() string {
	return "warehouse_stocks"
}

// StockMovement is an append-only audit row for one stock mutation. The
// stored quantity is signed: negative for issues and transfer sources.
// Movements are never mutated after creation.
type StockMovement struct {
	shared.BaseEntity
	MovementNumber string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Type           MovementType    `gorm:"type:varchar(15);not null;index"`
	WarehouseID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitID         uuid.UUID       `gorm:"type:uuid;not null"`
	ToWarehouseID  *uuid.UUID      `gorm:"type:uuid;index"`
	MovementDate   time.Time       `gorm:"type:date;not null;index"`
	ReferenceType  string          `gorm:"type:varchar(30);index:idx_stock_movement_reference"`
	ReferenceID    string          `gorm:"type:varchar(50);index:idx_stock_movement_reference"`
	CreatedBy      *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement with the sign normalized: OUT and
// TRANSFER store the negative of the given quantity, IN stores it as given,
// ADJUSTMENT stores the signed quantity as given. TRANSFER requires a
// destination warehouse.
func NewStockMovement(
	movementNumber string,
	movementType MovementType,
	warehouseID, productID, unitID uuid.UUID,
	quantity decimal.Decimal,
	toWarehouseID *uuid.UUID,
	movementDate time.Time,
) (*StockMovement, error) {
	if movementNumber == "" {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_NUMBER", "Movement number cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid movement type")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit ID cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity cannot be zero")
	}

	switch movementType {
	case MovementTypeTransfer:
		if toWarehouseID == nil || *toWarehouseID == uuid.Nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Transfer requires a destination warehouse")
		}
		if !quantity.IsPositive() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Transfer quantity must be positive")
		}
		quantity = quantity.Neg()
	case MovementTypeOut:
		if !quantity.IsPositive() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Issue quantity must be positive")
		}
		quantity = quantity.Neg()
	case MovementTypeIn:
		if !quantity.IsPositive() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Receipt quantity must be positive")
		}
	case MovementTypeAdjustment:
		// signed as given
	}

	if movementType != MovementTypeTransfer {
		toWarehouseID = nil
	}
	if movementDate.IsZero() {
		movementDate = time.Now()
	}

	return &StockMovement{
		BaseEntity:     shared.NewBaseEntity(),
		MovementNumber: movementNumber,
		Type:           movementType,
		WarehouseID:    warehouseID,
		ProductID:      productID,
		Quantity:       quantity,
		UnitID:         unitID,
		ToWarehouseID:  toWarehouseID,
		MovementDate:   movementDate,
	}, nil
}

// WithReference tags the movement with its source document
func (m *StockMovement) WithReference(referenceType, referenceID string) *StockMovement {
	m.ReferenceType = referenceType
	m.ReferenceID = referenceID
	return m
}

// WithCreatedBy records the actor that recorded the movement
func (m *StockMovement) WithCreatedBy(userID uuid.UUID) *StockMovement {
	m.CreatedBy = &userID
	return m
}

// SourceDelta is the signed quantity applied to the source warehouse stock
func (m *StockMovement) SourceDelta() decimal.Decimal {
	return m.Quantity
}

// DestinationDelta is the quantity applied to the destination warehouse
// stock for transfers: the same magnitude the source loses.
func (m *StockMovement) DestinationDelta() decimal.Decimal {
	return m.Quantity.Abs()
}

// IsTransfer returns true for warehouse-to-warehouse movements
func (m *StockMovement) IsTransfer() bool {
	return m.Type == MovementTypeTransfer
}
