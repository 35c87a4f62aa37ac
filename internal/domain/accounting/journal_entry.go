package accounting

import (
	"fmt"
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle stage of a journal entry
type EntryStatus string

const (
	// EntryStatusDraft allows line mutation; draft entries never affect reports
	EntryStatusDraft EntryStatus = "DRAFT"
	// EntryStatusPosted is terminal; posted entries are immutable
	EntryStatusPosted EntryStatus = "POSTED"
)

// String returns the string representation
func (s EntryStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s EntryStatus) IsValid() bool {
	return s == EntryStatusDraft || s == EntryStatusPosted
}

// BalanceTolerance is the allowed absolute difference between total debits
// and total credits of an entry, covering floating accumulation upstream.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// LineSpec describes one journal line when creating an entry
type LineSpec struct {
	AccountID   uuid.UUID
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// JournalEntryLine is one debit or credit leg of a journal entry. Lines are
// owned exclusively by their entry and are never reassigned.
type JournalEntryLine struct {
	shared.BaseEntity
	EntryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Debit       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Credit      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Description string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (JournalEntryLine) TableName() string {
	return "journal_entry_lines"
}

// JournalEntry is the double-entry bookkeeping aggregate. An entry is created
// balanced (total debits equal total credits within BalanceTolerance) with at
// least two lines, and transitions one-way from draft to posted.
type JournalEntry struct {
	shared.BaseEntity
	EntryNumber   string             `gorm:"type:varchar(30);not null;uniqueIndex"`
	EntryDate     time.Time          `gorm:"type:date;not null;index"`
	Description   string             `gorm:"type:varchar(255)"`
	ReferenceType string             `gorm:"type:varchar(30);index:idx_journal_reference"`
	ReferenceID   string             `gorm:"type:varchar(50);index:idx_journal_reference"`
	Status        EntryStatus        `gorm:"type:varchar(10);not null;index"`
	PostedAt      *time.Time         `gorm:""`
	CreatedBy     *uuid.UUID         `gorm:"type:uuid"`
	Lines         []JournalEntryLine `gorm:"foreignKey:EntryID;references:ID"`
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// NewJournalEntry creates a journal entry in draft status. It validates the
// balance invariant and the minimum line count before anything is persisted;
// a violation rejects the whole entry.
func NewJournalEntry(entryNumber string, entryDate time.Time, description string, lines []LineSpec) (*JournalEntry, error) {
	if entryNumber == "" {
		return nil, shared.NewDomainError("INVALID_ENTRY_NUMBER", "Entry number cannot be empty")
	}
	if entryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_ENTRY_DATE", "Entry date cannot be empty")
	}
	if len(lines) < 2 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A journal entry requires at least two lines")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		if line.AccountID == uuid.Nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Journal line requires an account")
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Journal line amounts cannot be negative")
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(BalanceTolerance) {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Journal entry is not balanced: debit %s, credit %s", totalDebit.String(), totalCredit.String()))
	}

	entry := &JournalEntry{
		BaseEntity:  shared.NewBaseEntity(),
		EntryNumber: entryNumber,
		EntryDate:   entryDate,
		Description: description,
		Status:      EntryStatusDraft,
		Lines:       make([]JournalEntryLine, 0, len(lines)),
	}

	for _, spec := range lines {
		entry.Lines = append(entry.Lines, JournalEntryLine{
			BaseEntity:  shared.NewBaseEntity(),
			EntryID:     entry.ID,
			AccountID:   spec.AccountID,
			Debit:       spec.Debit,
			Credit:      spec.Credit,
			Description: spec.Description,
		})
	}

	return entry, nil
}

// WithReference tags the entry with its source document
func (e *JournalEntry) WithReference(referenceType, referenceID string) *JournalEntry {
	e.ReferenceType = referenceType
	e.ReferenceID = referenceID
	return e
}

// WithCreatedBy records the actor that created the entry
func (e *JournalEntry) WithCreatedBy(userID uuid.UUID) *JournalEntry {
	e.CreatedBy = &userID
	return e
}

// TotalDebit returns the sum of all debit legs
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit returns the sum of all credit legs
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// IsBalanced returns true if debits equal credits within BalanceTolerance
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Sub(e.TotalCredit()).Abs().LessThanOrEqual(BalanceTolerance)
}

// IsPosted returns true once the entry has been posted
func (e *JournalEntry) IsPosted() bool {
	return e.Status == EntryStatusPosted
}

// Post transitions the entry from draft to posted. The transition is one-way;
// posting an already-posted entry fails with INVALID_STATE.
func (e *JournalEntry) Post() error {
	if e.Status != EntryStatusDraft {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Journal entry %s is already posted", e.EntryNumber))
	}
	now := time.Now()
	e.Status = EntryStatusPosted
	e.PostedAt = &now
	e.UpdatedAt = now
	return nil
}

// MarkPostedAtCreation stamps a system-generated entry as posted immediately.
// Automatic postings have no draft window; only manually entered journal
// vouchers pass through draft.
func (e *JournalEntry) MarkPostedAtCreation() {
	now := time.Now()
	e.Status = EntryStatusPosted
	e.PostedAt = &now
}
