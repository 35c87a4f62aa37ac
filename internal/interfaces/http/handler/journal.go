package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appacct "github.com/kopkar/backend/internal/application/accounting"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// JournalHandler handles journal entry API endpoints
type JournalHandler struct {
	BaseHandler
	ledgerService *appacct.LedgerService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(ledgerService *appacct.LedgerService) *JournalHandler {
	return &JournalHandler{ledgerService: ledgerService}
}

// CreateEntryRequest is the request body for creating a journal entry
type CreateEntryRequest struct {
	EntryDate   string             `json:"entry_date" binding:"required"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineRequest is one journal line in the request body
type EntryLineRequest struct {
	AccountID   string          `json:"account_id" binding:"required,uuid"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntry handles POST /accounting/journal
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		h.BadRequest(c, "entry_date must be in YYYY-MM-DD format")
		return
	}

	lines := make([]appacct.EntryLineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		accountID, err := uuid.Parse(line.AccountID)
		if err != nil {
			h.BadRequest(c, "invalid account_id: "+line.AccountID)
			return
		}
		lines = append(lines, appacct.EntryLineRequest{
			AccountID:   accountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		})
	}

	entry, err := h.ledgerService.CreateDraftEntry(c.Request.Context(), appacct.CreateEntryRequest{
		EntryDate:   entryDate,
		Description: req.Description,
		Lines:       lines,
		CreatedBy:   getUserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// PostEntry handles POST /accounting/journal/:id/post
func (h *JournalHandler) PostEntry(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid entry ID")
		return
	}

	entry, err := h.ledgerService.PostEntry(c.Request.Context(), entryID, getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// GetEntry handles GET /accounting/journal/:id
func (h *JournalHandler) GetEntry(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid entry ID")
		return
	}

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// ListEntries handles GET /accounting/journal
func (h *JournalHandler) ListEntries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Filters:  map[string]interface{}{},
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// RegisterRoutes registers journal routes
func (h *JournalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	journal := rg.Group("/accounting/journal")
	{
		journal.POST("", h.CreateEntry)
		journal.GET("", h.ListEntries)
		journal.GET("/:id", h.GetEntry)
		journal.POST("/:id/post", h.PostEntry)
	}
}
