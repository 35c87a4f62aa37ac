package accounting

import (
	"context"

	"github.com/kopkar/backend/internal/domain/accounting"
)

// TransactionScope provides transactional access to accounting repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the accounting repositories
// within one transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// AccountRepo returns the chart of accounts repository scoped to the
	// current transaction
	AccountRepo() accounting.AccountRepository
	// EntryRepo returns the journal entry repository scoped to the
	// current transaction
	EntryRepo() accounting.JournalEntryRepository
}

// NoOpTransactionScope runs functions without a real transaction. Useful
// in tests where the repositories already share one connection.
type NoOpTransactionScope struct {
	accountRepo accounting.AccountRepository
	entryRepo   accounting.JournalEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	accountRepo accounting.AccountRepository,
	entryRepo accounting.JournalEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{accountRepo: accountRepo, entryRepo: entryRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AccountRepo returns the chart of accounts repository
func (s *NoOpTransactionScope) AccountRepo() accounting.AccountRepository {
	return s.accountRepo
}

// EntryRepo returns the journal entry repository
func (s *NoOpTransactionScope) EntryRepo() accounting.JournalEntryRepository {
	return s.entryRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
