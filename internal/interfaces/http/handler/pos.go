package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apppos "github.com/kopkar/backend/internal/application/pos"
	"github.com/kopkar/backend/internal/domain/pos"
	"github.com/shopspring/decimal"
)

// PosHandler handles point-of-sale API endpoints
type PosHandler struct {
	BaseHandler
	checkoutService *apppos.CheckoutService
	sessionService  *apppos.SessionService
}

// NewPosHandler creates a new PosHandler
func NewPosHandler(checkoutService *apppos.CheckoutService, sessionService *apppos.SessionService) *PosHandler {
	return &PosHandler{checkoutService: checkoutService, sessionService: sessionService}
}

// OpenSessionRequest is the request body for opening a cashier session
type OpenSessionRequest struct {
	CashierID   string          `json:"cashier_id" binding:"required,uuid"`
	OpeningCash decimal.Decimal `json:"opening_cash"`
}

// OpenSession handles POST /pos/sessions
func (h *PosHandler) OpenSession(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cashierID, _ := uuid.Parse(req.CashierID)
	session, err := h.sessionService.OpenSession(c.Request.Context(), cashierID, req.OpeningCash)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// CloseSessionRequest is the request body for closing a cashier session
type CloseSessionRequest struct {
	ClosingCash decimal.Decimal `json:"closing_cash"`
}

// CloseSession handles POST /pos/sessions/:id/close
func (h *PosHandler) CloseSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid session ID")
		return
	}

	var req CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	session, err := h.sessionService.CloseSession(c.Request.Context(), sessionID, req.ClosingCash)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// CheckoutItemRequest is one cart line in the checkout request
type CheckoutItemRequest struct {
	ProductID   string          `json:"product_id" binding:"required,uuid"`
	ProductName string          `json:"product_name" binding:"required"`
	UnitID      string          `json:"unit_id" binding:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CheckoutRequest is the request body for a checkout
type CheckoutRequest struct {
	SessionID     string                `json:"session_id" binding:"required,uuid"`
	MemberID      string                `json:"member_id" binding:"omitempty,uuid"`
	WarehouseID   string                `json:"warehouse_id" binding:"required,uuid"`
	Items         []CheckoutItemRequest `json:"items" binding:"required,dive"`
	Discount      decimal.Decimal       `json:"discount"`
	PaymentMethod string                `json:"payment_method" binding:"required,oneof=CASH SALARY_DEDUCTION SAVINGS_WITHDRAWAL"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	Pin           string                `json:"pin"`
}

// Checkout handles POST /pos/checkout. The X-Idempotency-Key header makes
// retries of the same checkout safe.
func (h *PosHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sessionID, _ := uuid.Parse(req.SessionID)
	warehouseID, _ := uuid.Parse(req.WarehouseID)

	var memberID *uuid.UUID
	if req.MemberID != "" {
		id, _ := uuid.Parse(req.MemberID)
		memberID = &id
	}

	items := make([]apppos.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, _ := uuid.Parse(item.ProductID)
		unitID, _ := uuid.Parse(item.UnitID)
		items = append(items, apppos.CheckoutItem{
			ProductID:   productID,
			ProductName: item.ProductName,
			UnitID:      unitID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), apppos.CheckoutRequest{
		SessionID:      sessionID,
		MemberID:       memberID,
		WarehouseID:    warehouseID,
		Items:          items,
		Discount:       req.Discount,
		PaymentMethod:  pos.PaymentMethod(req.PaymentMethod),
		PaidAmount:     req.PaidAmount,
		Pin:            req.Pin,
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
		CreatedBy:      getUserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.Replayed {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// OutstandingReceivables handles GET /pos/members/:id/receivables. Cashiers
// use it to check a member's unpaid salary-deduction purchases before
// extending more credit.
func (h *PosHandler) OutstandingReceivables(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid member ID")
		return
	}

	receivables, err := h.checkoutService.OutstandingReceivables(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receivables)
}

// RegisterRoutes registers point-of-sale routes
func (h *PosHandler) RegisterRoutes(rg *gin.RouterGroup) {
	posGroup := rg.Group("/pos")
	{
		posGroup.POST("/sessions", h.OpenSession)
		posGroup.POST("/sessions/:id/close", h.CloseSession)
		posGroup.POST("/checkout", h.Checkout)
		posGroup.GET("/members/:id/receivables", h.OutstandingReceivables)
	}
}
