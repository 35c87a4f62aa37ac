package savings

import (
	"context"

	"github.com/kopkar/backend/internal/domain/savings"
)

// TransactionScope provides transactional access to the savings
// repositories so a balance change and its audit row commit together
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the savings repositories
// within one transaction
type TransactionalRepositories interface {
	// AccountRepo returns the savings account repository scoped to the
	// current transaction
	AccountRepo() savings.SavingsAccountRepository
	// TransactionRepo returns the savings mutation log repository scoped
	// to the current transaction
	TransactionRepo() savings.SavingsTransactionRepository
}

// NoOpTransactionScope runs functions without a real transaction
type NoOpTransactionScope struct {
	accountRepo     savings.SavingsAccountRepository
	transactionRepo savings.SavingsTransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	accountRepo savings.SavingsAccountRepository,
	transactionRepo savings.SavingsTransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{accountRepo: accountRepo, transactionRepo: transactionRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AccountRepo returns the savings account repository
func (s *NoOpTransactionScope) AccountRepo() savings.SavingsAccountRepository {
	return s.accountRepo
}

// TransactionRepo returns the savings mutation log repository
func (s *NoOpTransactionScope) TransactionRepo() savings.SavingsTransactionRepository {
	return s.transactionRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
