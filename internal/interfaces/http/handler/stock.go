package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstock "github.com/kopkar/backend/internal/application/stock"
	"github.com/kopkar/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// StockHandler handles stock ledger API endpoints
type StockHandler struct {
	BaseHandler
	stockService *appstock.StockLedgerService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *appstock.StockLedgerService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// RecordMovementRequest is the request body for recording a stock movement
type RecordMovementRequest struct {
	Type          string          `json:"type" binding:"required,oneof=IN OUT TRANSFER ADJUSTMENT"`
	WarehouseID   string          `json:"warehouse_id" binding:"required,uuid"`
	ProductID     string          `json:"product_id" binding:"required,uuid"`
	UnitID        string          `json:"unit_id" binding:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	ToWarehouseID string          `json:"to_warehouse_id" binding:"omitempty,uuid"`
	MovementDate  string          `json:"movement_date"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
}

// RecordMovement handles POST /inventory/movements
func (h *StockHandler) RecordMovement(c *gin.Context) {
	var req RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	warehouseID, _ := uuid.Parse(req.WarehouseID)
	productID, _ := uuid.Parse(req.ProductID)
	unitID, _ := uuid.Parse(req.UnitID)

	var toWarehouseID *uuid.UUID
	if req.ToWarehouseID != "" {
		id, _ := uuid.Parse(req.ToWarehouseID)
		toWarehouseID = &id
	}

	var movementDate time.Time
	if req.MovementDate != "" {
		parsed, err := time.Parse("2006-01-02", req.MovementDate)
		if err != nil {
			h.BadRequest(c, "movement_date must be in YYYY-MM-DD format")
			return
		}
		movementDate = parsed
	}

	movement, err := h.stockService.RecordMovement(c.Request.Context(), appstock.RecordMovementRequest{
		Type:          stock.MovementType(req.Type),
		WarehouseID:   warehouseID,
		ProductID:     productID,
		UnitID:        unitID,
		Quantity:      req.Quantity,
		ToWarehouseID: toWarehouseID,
		MovementDate:  movementDate,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		CreatedBy:     getUserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// GetQuantity handles GET /inventory/stock
func (h *StockHandler) GetQuantity(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "warehouse_id must be a valid UUID")
		return
	}
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "product_id must be a valid UUID")
		return
	}

	quantity, err := h.stockService.GetQuantity(c.Request.Context(), warehouseID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"warehouse_id": warehouseID,
		"product_id":   productID,
		"quantity":     quantity,
	})
}

// ListMovements handles GET /inventory/movements
func (h *StockHandler) ListMovements(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "warehouse_id must be a valid UUID")
		return
	}
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "product_id must be a valid UUID")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	movements, err := h.stockService.MovementHistory(c.Request.Context(), warehouseID, productID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.POST("/movements", h.RecordMovement)
		inventory.GET("/movements", h.ListMovements)
		inventory.GET("/stock", h.GetQuantity)
	}
}
