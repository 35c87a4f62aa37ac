package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerService is the double-entry posting engine. Entries are validated
// before any write, numbered sequentially per year inside the creating
// transaction, and immutable once posted.
type LedgerService struct {
	scope     TransactionScope
	entryRepo accounting.JournalEntryRepository
	audit     shared.AuditSink
	logger    *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	scope TransactionScope,
	entryRepo accounting.JournalEntryRepository,
	audit shared.AuditSink,
	logger *zap.Logger,
) *LedgerService {
	if audit == nil {
		audit = shared.NoOpAuditSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		scope:     scope,
		entryRepo: entryRepo,
		audit:     audit,
		logger:    logger,
	}
}

// CreateDraftEntry validates and persists a manual journal voucher in
// draft status
func (s *LedgerService) CreateDraftEntry(ctx context.Context, req CreateEntryRequest) (*EntryResponse, error) {
	entry, err := s.createEntry(ctx, req, false)
	if err != nil {
		return nil, err
	}
	return ToEntryResponse(entry), nil
}

// CreatePostedEntry validates and persists a system-generated entry
// directly in posted status. There is no draft window for automatic
// postings; only manual vouchers pass through draft.
func (s *LedgerService) CreatePostedEntry(ctx context.Context, req CreateEntryRequest) (*accounting.JournalEntry, error) {
	return s.createEntry(ctx, req, true)
}

func (s *LedgerService) createEntry(ctx context.Context, req CreateEntryRequest, posted bool) (*accounting.JournalEntry, error) {
	entryDate := req.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	lines := make([]accounting.LineSpec, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, accounting.LineSpec{
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		})
	}

	var entry *accounting.JournalEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		count, err := repos.EntryRepo().CountForYear(ctx, entryDate.Year())
		if err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}
		entryNumber := fmt.Sprintf("JE-%d-%05d", entryDate.Year(), count+1)

		entry, err = accounting.NewJournalEntry(entryNumber, entryDate, req.Description, lines)
		if err != nil {
			return err
		}
		if req.ReferenceType != "" {
			entry.WithReference(req.ReferenceType, req.ReferenceID)
		}
		if req.CreatedBy != nil {
			entry.WithCreatedBy(*req.CreatedBy)
		}
		if posted {
			entry.MarkPostedAtCreation()
		}
		return repos.EntryRepo().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("journal entry created",
		zap.String("entry_number", entry.EntryNumber),
		zap.String("status", entry.Status.String()),
		zap.String("total_debit", entry.TotalDebit().StringFixed(2)))
	return entry, nil
}

// PostEntry transitions a draft entry to posted. The transition is one-way;
// posting an already posted entry fails with INVALID_STATE.
func (s *LedgerService) PostEntry(ctx context.Context, entryID uuid.UUID, actor *uuid.UUID) (*EntryResponse, error) {
	var entry *accounting.JournalEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entry, err = repos.EntryRepo().FindByID(ctx, entryID)
		if err != nil {
			return err
		}
		if err := entry.Post(); err != nil {
			return err
		}
		return repos.EntryRepo().UpdateStatus(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditRecord{
		UserID:     actor,
		Action:     "journal.post",
		EntityType: "journal_entry",
		EntityID:   entry.ID.String(),
	})
	s.logger.Info("journal entry posted", zap.String("entry_number", entry.EntryNumber))
	return ToEntryResponse(entry), nil
}

// GetEntry loads an entry with its lines
func (s *LedgerService) GetEntry(ctx context.Context, entryID uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return ToEntryResponse(entry), nil
}

// ListEntries returns a page of entries, newest entry date first
func (s *LedgerService) ListEntries(ctx context.Context, filter shared.Filter) (*EntryListResponse, error) {
	entries, total, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]*EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToEntryResponse(&entries[i]))
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	return &EntryListResponse{
		Entries:  responses,
		Total:    total,
		Page:     page,
		PageSize: filter.Limit(),
	}, nil
}
