package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apploan "github.com/kopkar/backend/internal/application/loan"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan API endpoints
type LoanHandler struct {
	BaseHandler
	loanService *apploan.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *apploan.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest is the request body for a loan application
type CreateLoanRequest struct {
	MemberID          string          `json:"member_id" binding:"required,uuid"`
	Principal         decimal.Decimal `json:"principal" binding:"required"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermMonths        int             `json:"term_months" binding:"required,min=1"`
	StartDate         string          `json:"start_date" binding:"required"`
}

// CreateLoan handles POST /loans
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	memberID, _ := uuid.Parse(req.MemberID)
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.BadRequest(c, "start_date must be in YYYY-MM-DD format")
		return
	}

	l, err := h.loanService.CreateLoan(c.Request.Context(), apploan.CreateLoanRequest{
		MemberID:          memberID,
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TermMonths:        req.TermMonths,
		StartDate:         startDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, l)
}

// GetLoan handles GET /loans/:id
func (h *LoanHandler) GetLoan(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid loan ID")
		return
	}

	l, err := h.loanService.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, l)
}

// Disburse handles POST /loans/:id/disburse
func (h *LoanHandler) Disburse(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid loan ID")
		return
	}

	l, err := h.loanService.Disburse(c.Request.Context(), loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, l)
}

// PaymentRequest is the request body for an installment payment
type PaymentRequest struct {
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
}

// RecordPayment handles POST /loans/:id/payments
func (h *LoanHandler) RecordPayment(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid loan ID")
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	schedule, err := h.loanService.RecordPayment(c.Request.Context(), loanID, apploan.PaymentRequest{
		InstallmentNumber: req.InstallmentNumber,
		Amount:            req.Amount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedule)
}

// OverrideAmountRequest is the request body for an installment amount override
type OverrideAmountRequest struct {
	InstallmentNumber int             `json:"installment_number" binding:"required,min=1"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Reason            string          `json:"reason" binding:"required"`
}

// OverrideScheduleAmount handles PUT /loans/:id/schedules/amount
func (h *LoanHandler) OverrideScheduleAmount(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid loan ID")
		return
	}

	var req OverrideAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actor := getUserID(c)
	if actor == nil {
		h.BadRequest(c, "X-User-ID header is required for schedule overrides")
		return
	}

	schedule, err := h.loanService.OverrideScheduleAmount(c.Request.Context(), loanID, apploan.OverrideAmountRequest{
		InstallmentNumber: req.InstallmentNumber,
		Amount:            req.Amount,
		Reason:            req.Reason,
		Actor:             *actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedule)
}

// OverrideDueDateRequest is the request body for an installment due date override
type OverrideDueDateRequest struct {
	InstallmentNumber int    `json:"installment_number" binding:"required,min=1"`
	DueDate           string `json:"due_date" binding:"required"`
	Reason            string `json:"reason" binding:"required"`
}

// OverrideScheduleDueDate handles PUT /loans/:id/schedules/due-date
func (h *LoanHandler) OverrideScheduleDueDate(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid loan ID")
		return
	}

	var req OverrideDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		h.BadRequest(c, "due_date must be in YYYY-MM-DD format")
		return
	}

	actor := getUserID(c)
	if actor == nil {
		h.BadRequest(c, "X-User-ID header is required for schedule overrides")
		return
	}

	schedule, err := h.loanService.OverrideScheduleDueDate(c.Request.Context(), loanID, apploan.OverrideDueDateRequest{
		InstallmentNumber: req.InstallmentNumber,
		DueDate:           dueDate,
		Reason:            req.Reason,
		Actor:             *actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedule)
}

// RegisterRoutes registers loan routes
func (h *LoanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	loans := rg.Group("/loans")
	{
		loans.POST("", h.CreateLoan)
		loans.GET("/:id", h.GetLoan)
		loans.POST("/:id/disburse", h.Disburse)
		loans.POST("/:id/payments", h.RecordPayment)
		loans.PUT("/:id/schedules/amount", h.OverrideScheduleAmount)
		loans.PUT("/:id/schedules/due-date", h.OverrideScheduleDueDate)
	}
}
