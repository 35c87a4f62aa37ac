package persistence

import (
	"context"

	appacct "github.com/kopkar/backend/internal/application/accounting"
	"github.com/kopkar/backend/internal/domain/accounting"
	"gorm.io/gorm"
)

// GormAccountingScope implements the accounting TransactionScope using GORM
// transactions
type GormAccountingScope struct {
	db *gorm.DB
}

// NewGormAccountingScope creates a new GormAccountingScope
func NewGormAccountingScope(db *gorm.DB) *GormAccountingScope {
	return &GormAccountingScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormAccountingScope) Execute(ctx context.Context, fn func(repos appacct.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormAccountingRepositories{tx: tx})
	})
}

type gormAccountingRepositories struct {
	tx *gorm.DB
}

// AccountRepo returns the chart of accounts repository scoped to the current transaction
func (r *gormAccountingRepositories) AccountRepo() accounting.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// EntryRepo returns the journal entry repository scoped to the current transaction
func (r *gormAccountingRepositories) EntryRepo() accounting.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

var _ appacct.TransactionScope = (*GormAccountingScope)(nil)
var _ appacct.TransactionalRepositories = (*gormAccountingRepositories)(nil)
