package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/accounting"
	"gorm.io/gorm"
)

// GormLedgerQueryRepository implements LedgerQueryRepository using GORM.
// All queries filter on posted entries only; drafts never reach a report.
type GormLedgerQueryRepository struct {
	db *gorm.DB
}

// NewGormLedgerQueryRepository creates a new GormLedgerQueryRepository
func NewGormLedgerQueryRepository(db *gorm.DB) *GormLedgerQueryRepository {
	return &GormLedgerQueryRepository{db: db}
}

// AccountNetsBetween sums posted debits and credits per account for entries
// with entry_date in [from, to]
func (r *GormLedgerQueryRepository) AccountNetsBetween(ctx context.Context, from, to time.Time) ([]accounting.AccountNet, error) {
	var nets []accounting.AccountNet
	err := r.db.WithContext(ctx).
		Table("journal_entry_lines").
		Select(`accounts.id AS account_id,
			accounts.code AS account_code,
			accounts.name AS account_name,
			accounts.type AS account_type,
			COALESCE(SUM(journal_entry_lines.debit), 0) AS total_debit,
			COALESCE(SUM(journal_entry_lines.credit), 0) AS total_credit`).
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.entry_id").
		Joins("JOIN accounts ON accounts.id = journal_entry_lines.account_id").
		Where("journal_entries.status = ?", accounting.EntryStatusPosted).
		Where("journal_entries.entry_date >= ? AND journal_entries.entry_date <= ?", from, to).
		Group("accounts.id, accounts.code, accounts.name, accounts.type").
		Order("accounts.code ASC").
		Scan(&nets).Error
	if err != nil {
		return nil, err
	}
	return nets, nil
}

// AccountNetsAsOf sums posted debits and credits per account for entries
// with entry_date <= asOf
func (r *GormLedgerQueryRepository) AccountNetsAsOf(ctx context.Context, asOf time.Time) ([]accounting.AccountNet, error) {
	var nets []accounting.AccountNet
	err := r.db.WithContext(ctx).
		Table("journal_entry_lines").
		Select(`accounts.id AS account_id,
			accounts.code AS account_code,
			accounts.name AS account_name,
			accounts.type AS account_type,
			COALESCE(SUM(journal_entry_lines.debit), 0) AS total_debit,
			COALESCE(SUM(journal_entry_lines.credit), 0) AS total_credit`).
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.entry_id").
		Joins("JOIN accounts ON accounts.id = journal_entry_lines.account_id").
		Where("journal_entries.status = ?", accounting.EntryStatusPosted).
		Where("journal_entries.entry_date <= ?", asOf).
		Group("accounts.id, accounts.code, accounts.name, accounts.type").
		Order("accounts.code ASC").
		Scan(&nets).Error
	if err != nil {
		return nil, err
	}
	return nets, nil
}

// PostedLinesForAccount returns posted lines of one account in [from, to],
// ordered by entry date, then entry id, then line id for a stable ledger.
// The running balance column is left zero; the report layer computes it.
func (r *GormLedgerQueryRepository) PostedLinesForAccount(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]accounting.GeneralLedgerLine, error) {
	var lines []accounting.GeneralLedgerLine
	err := r.db.WithContext(ctx).
		Table("journal_entry_lines").
		Select(`journal_entries.id AS entry_id,
			journal_entry_lines.id AS line_id,
			journal_entries.entry_number AS entry_number,
			journal_entries.entry_date AS entry_date,
			journal_entry_lines.description AS description,
			journal_entry_lines.debit AS debit,
			journal_entry_lines.credit AS credit`).
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.entry_id").
		Where("journal_entry_lines.account_id = ?", accountID).
		Where("journal_entries.status = ?", accounting.EntryStatusPosted).
		Where("journal_entries.entry_date >= ? AND journal_entries.entry_date <= ?", from, to).
		Order("journal_entries.entry_date ASC, journal_entries.id ASC, journal_entry_lines.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

var _ accounting.LedgerQueryRepository = (*GormLedgerQueryRepository)(nil)
