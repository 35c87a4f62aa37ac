package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appsavings "github.com/kopkar/backend/internal/application/savings"
	"github.com/kopkar/backend/internal/domain/savings"
	"github.com/shopspring/decimal"
)

// SavingsHandler handles savings account API endpoints
type SavingsHandler struct {
	BaseHandler
	savingsService *appsavings.SavingsService
}

// NewSavingsHandler creates a new SavingsHandler
func NewSavingsHandler(savingsService *appsavings.SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService}
}

// MovementRequest is the request body for a deposit or withdrawal
type MovementRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// OpenAccountRequest is the request body for opening a savings account
type OpenAccountRequest struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
	Type     string `json:"type" binding:"required,oneof=POKOK WAJIB SUKARELA"`
}

// OpenAccount handles POST /savings/accounts
func (h *SavingsHandler) OpenAccount(c *gin.Context) {
	var req OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	memberID, _ := uuid.Parse(req.MemberID)
	account, err := h.savingsService.OpenAccount(c.Request.Context(), memberID, savings.SavingsType(req.Type))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// GetAccount handles GET /savings/accounts/:id
func (h *SavingsHandler) GetAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid account ID")
		return
	}

	account, err := h.savingsService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Deposit handles POST /savings/accounts/:id/deposit
func (h *SavingsHandler) Deposit(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid account ID")
		return
	}

	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.savingsService.Deposit(c.Request.Context(), appsavings.MovementRequest{
		AccountID:   accountID,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedBy:   getUserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Withdraw handles POST /savings/accounts/:id/withdraw
func (h *SavingsHandler) Withdraw(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid account ID")
		return
	}

	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.savingsService.Withdraw(c.Request.Context(), appsavings.MovementRequest{
		AccountID:   accountID,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedBy:   getUserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers savings routes
func (h *SavingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	savingsGroup := rg.Group("/savings/accounts")
	{
		savingsGroup.POST("", h.OpenAccount)
		savingsGroup.GET("/:id", h.GetAccount)
		savingsGroup.POST("/:id/deposit", h.Deposit)
		savingsGroup.POST("/:id/withdraw", h.Withdraw)
	}
}
