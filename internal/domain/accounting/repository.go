package accounting

import (
	"context"
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRepository provides access to the chart of accounts
type AccountRepository interface {
	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// FindByCode finds an account by its unique code
	FindByCode(ctx context.Context, code string) (*Account, error)
	// FindAll returns the full chart of accounts ordered by code
	FindAll(ctx context.Context) ([]Account, error)
	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error
}

// JournalEntryRepository provides access to journal entries and their lines
type JournalEntryRepository interface {
	// FindByID finds an entry with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)
	// Create persists the entry header and all lines atomically
	Create(ctx context.Context, entry *JournalEntry) error
	// UpdateStatus persists a status transition on the entry header
	UpdateStatus(ctx context.Context, entry *JournalEntry) error
	// CountForYear returns how many entries exist for the given year,
	// used to derive the next sequential entry number
	CountForYear(ctx context.Context, year int) (int64, error)
	// List returns a page of entries with their lines, newest entry date
	// first, plus the total row count. Supported filters: "status";
	// Search matches the entry number and description.
	List(ctx context.Context, filter shared.Filter) ([]JournalEntry, int64, error)
}

// LedgerQueryRepository answers read-only aggregation queries over posted
// entries. Draft entries never affect any of these results.
type LedgerQueryRepository interface {
	// AccountNetsBetween sums posted debits and credits per account for
	// entries with entry_date in [from, to]
	AccountNetsBetween(ctx context.Context, from, to time.Time) ([]AccountNet, error)
	// AccountNetsAsOf sums posted debits and credits per account for
	// entries with entry_date <= asOf
	AccountNetsAsOf(ctx context.Context, asOf time.Time) ([]AccountNet, error)
	// PostedLinesForAccount returns posted lines of one account in
	// [from, to], ordered by entry_date, entry id, line id
	PostedLinesForAccount(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]GeneralLedgerLine, error)
}
