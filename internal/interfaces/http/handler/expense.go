package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appfinance "github.com/kopkar/backend/internal/application/finance"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *appfinance.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *appfinance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// RecordExpenseRequest is the request body for recording a cash expense
type RecordExpenseRequest struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate string          `json:"expense_date" binding:"required"`
	Description string          `json:"description"`
	AutoJournal bool            `json:"auto_journal"`
}

// RecordExpense handles POST /expenses
func (h *ExpenseHandler) RecordExpense(c *gin.Context) {
	var req RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		h.BadRequest(c, "expense_date must be in YYYY-MM-DD format")
		return
	}

	result, err := h.expenseService.RecordExpense(c.Request.Context(), appfinance.RecordExpenseRequest{
		CategoryID:  categoryID,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		Description: req.Description,
		AutoJournal: req.AutoJournal,
		CreatedBy:   getUserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// CreateCategoryRequest is the request body for creating an expense category
type CreateCategoryRequest struct {
	Name              string `json:"name" binding:"required"`
	LinkedAccountCode string `json:"linked_account_code"`
}

// CreateCategory handles POST /expenses/categories
func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.expenseService.CreateCategory(c.Request.Context(), req.Name, req.LinkedAccountCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.RecordExpense)
		expenses.POST("/categories", h.CreateCategory)
	}
}
