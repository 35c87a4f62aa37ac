package savings

import (
	"context"

	"github.com/google/uuid"
)

// SavingsAccountRepository provides access to member savings accounts
type SavingsAccountRepository interface {
	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SavingsAccount, error)
	// FindByMemberAndType finds a member's account for one savings type
	FindByMemberAndType(ctx context.Context, memberID uuid.UUID, savingsType SavingsType) (*SavingsAccount, error)
	// FindByMember lists all accounts of a member
	FindByMember(ctx context.Context, memberID uuid.UUID) ([]SavingsAccount, error)
	// Create persists a new account
	Create(ctx context.Context, account *SavingsAccount) error
	// Save persists balance changes
	Save(ctx context.Context, account *SavingsAccount) error
}

// SavingsTransactionRepository is the append-only savings mutation log
type SavingsTransactionRepository interface {
	// Create appends a transaction row
	Create(ctx context.Context, transaction *SavingsTransaction) error
	// FindByAccount lists transactions for an account, newest first
	FindByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]SavingsTransaction, error)
}
