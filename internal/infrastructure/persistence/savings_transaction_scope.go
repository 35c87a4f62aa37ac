package persistence

import (
	"context"

	appsavings "github.com/kopkar/backend/internal/application/savings"
	"github.com/kopkar/backend/internal/domain/savings"
	"gorm.io/gorm"
)

// GormSavingsScope implements the savings TransactionScope using GORM transactions
type GormSavingsScope struct {
	db *gorm.DB
}

// NewGormSavingsScope creates a new GormSavingsScope
func NewGormSavingsScope(db *gorm.DB) *GormSavingsScope {
	return &GormSavingsScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormSavingsScope) Execute(ctx context.Context, fn func(repos appsavings.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSavingsRepositories{tx: tx})
	})
}

type gormSavingsRepositories struct {
	tx *gorm.DB
}

// AccountRepo returns the savings account repository scoped to the current transaction
func (r *gormSavingsRepositories) AccountRepo() savings.SavingsAccountRepository {
	return NewGormSavingsAccountRepository(r.tx)
}

// TransactionRepo returns the savings mutation log repository scoped to the current transaction
func (r *gormSavingsRepositories) TransactionRepo() savings.SavingsTransactionRepository {
	return NewGormSavingsTransactionRepository(r.tx)
}

var _ appsavings.TransactionScope = (*GormSavingsScope)(nil)
var _ appsavings.TransactionalRepositories = (*gormSavingsRepositories)(nil)
