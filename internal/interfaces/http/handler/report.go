package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appacct "github.com/kopkar/backend/internal/application/accounting"
)

// ReportHandler handles ledger report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *appacct.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *appacct.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DateRangeRequest is the query filter shared by period reports
type DateRangeRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var req DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// TrialBalance handles GET /accounting/reports/trial-balance
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		h.BadRequest(c, "from and to must be provided in YYYY-MM-DD format")
		return
	}

	report, err := h.reportService.TrialBalance(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// GeneralLedger handles GET /accounting/reports/general-ledger/:accountId
func (h *ReportHandler) GeneralLedger(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		h.BadRequest(c, "invalid account ID")
		return
	}

	from, to, ok := parseDateRange(c)
	if !ok {
		h.BadRequest(c, "from and to must be provided in YYYY-MM-DD format")
		return
	}

	report, err := h.reportService.GeneralLedger(c.Request.Context(), accountID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// BalanceSheet handles GET /accounting/reports/balance-sheet
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	asOfRaw := c.Query("as_of")
	if asOfRaw == "" {
		h.BadRequest(c, "as_of must be provided in YYYY-MM-DD format")
		return
	}
	asOf, err := time.Parse("2006-01-02", asOfRaw)
	if err != nil {
		h.BadRequest(c, "as_of must be in YYYY-MM-DD format")
		return
	}

	report, err := h.reportService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// ProfitLoss handles GET /accounting/reports/profit-loss
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		h.BadRequest(c, "from and to must be provided in YYYY-MM-DD format")
		return
	}

	report, err := h.reportService.ProfitLoss(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/accounting/reports")
	{
		reports.GET("/trial-balance", h.TrialBalance)
		reports.GET("/general-ledger/:accountId", h.GeneralLedger)
		reports.GET("/balance-sheet", h.BalanceSheet)
		reports.GET("/profit-loss", h.ProfitLoss)
	}
}
