package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/kopkar/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormJournalEntryRepository implements JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// FindByID finds an entry with its lines
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.JournalEntry, error) {
	var entry accounting.JournalEntry
	if err := r.db.WithContext(ctx).Preload("Lines").First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Create persists the entry header and all lines atomically. GORM cascades
// the Lines association in the same statement batch.
func (r *GormJournalEntryRepository) Create(ctx context.Context, entry *accounting.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// UpdateStatus persists a status transition on the entry header. Lines are
// deliberately excluded: posting never rewrites them.
func (r *GormJournalEntryRepository) UpdateStatus(ctx context.Context, entry *accounting.JournalEntry) error {
	return r.db.WithContext(ctx).Model(&accounting.JournalEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"status":     entry.Status,
			"posted_at":  entry.PostedAt,
			"updated_at": entry.UpdatedAt,
		}).Error
}

// List returns a page of entries with their lines, newest entry date first
func (r *GormJournalEntryRepository) List(ctx context.Context, filter shared.Filter) ([]accounting.JournalEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&accounting.JournalEntry{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("entry_number LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []accounting.JournalEntry
	err := query.Preload("Lines").
		Order("entry_date DESC, entry_number DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// CountForYear returns how many entries exist for the given year. Counting
// by number prefix keeps the query portable and index-backed.
func (r *GormJournalEntryRepository) CountForYear(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&accounting.JournalEntry{}).
		Where("entry_number LIKE ?", fmt.Sprintf("JE-%d-%%", year)).
		Count(&count).Error
	return count, err
}

var _ accounting.JournalEntryRepository = (*GormJournalEntryRepository)(nil)
