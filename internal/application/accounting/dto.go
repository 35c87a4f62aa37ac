package accounting

import (
	"time"

	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one submitted journal line
type EntryLineRequest struct {
	AccountID   uuid.UUID       `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// CreateEntryRequest is a submitted journal voucher
type CreateEntryRequest struct {
	EntryDate     time.Time          `json:"entry_date"`
	Description   string             `json:"description,omitempty"`
	Lines         []EntryLineRequest `json:"lines"`
	ReferenceType string             `json:"reference_type,omitempty"`
	ReferenceID   string             `json:"reference_id,omitempty"`
	CreatedBy     *uuid.UUID         `json:"-"`
}

// EntryLineResponse is one journal line in a response
type EntryLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse is a journal entry in a response
type EntryResponse struct {
	ID          uuid.UUID           `json:"id"`
	EntryNumber string              `json:"entry_number"`
	EntryDate   time.Time           `json:"entry_date"`
	Description string              `json:"description,omitempty"`
	Status      string              `json:"status"`
	PostedAt    *time.Time          `json:"posted_at,omitempty"`
	TotalDebit  decimal.Decimal     `json:"total_debit"`
	TotalCredit decimal.Decimal     `json:"total_credit"`
	Lines       []EntryLineResponse `json:"lines"`
}

// EntryListResponse is a page of journal entries
type EntryListResponse struct {
	Entries  []*EntryResponse `json:"entries"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ToEntryResponse maps a journal entry to its response shape
func ToEntryResponse(entry *accounting.JournalEntry) *EntryResponse {
	lines := make([]EntryLineResponse, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		lines = append(lines, EntryLineResponse{
			ID:          line.ID,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		})
	}
	return &EntryResponse{
		ID:          entry.ID,
		EntryNumber: entry.EntryNumber,
		EntryDate:   entry.EntryDate,
		Description: entry.Description,
		Status:      entry.Status.String(),
		PostedAt:    entry.PostedAt,
		TotalDebit:  entry.TotalDebit(),
		TotalCredit: entry.TotalCredit(),
		Lines:       lines,
	}
}
