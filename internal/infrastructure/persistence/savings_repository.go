package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/savings"
	"github.com/kopkar/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSavingsAccountRepository implements SavingsAccountRepository using GORM
type GormSavingsAccountRepository struct {
	db *gorm.DB
}

// NewGormSavingsAccountRepository creates a new GormSavingsAccountRepository
func NewGormSavingsAccountRepository(db *gorm.DB) *GormSavingsAccountRepository {
	return &GormSavingsAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormSavingsAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*savings.SavingsAccount, error) {
	var account savings.SavingsAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByMemberAndType finds a member's account for one savings type
func (r *GormSavingsAccountRepository) FindByMemberAndType(ctx context.Context, memberID uuid.UUID, savingsType savings.SavingsType) (*savings.SavingsAccount, error) {
	var account savings.SavingsAccount
	err := r.db.WithContext(ctx).
		First(&account, "member_id = ? AND type = ?", memberID, savingsType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByMember lists all accounts of a member
func (r *GormSavingsAccountRepository) FindByMember(ctx context.Context, memberID uuid.UUID) ([]savings.SavingsAccount, error) {
	var accounts []savings.SavingsAccount
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("type ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create persists a new account
func (r *GormSavingsAccountRepository) Create(ctx context.Context, account *savings.SavingsAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Save persists balance changes
func (r *GormSavingsAccountRepository) Save(ctx context.Context, account *savings.SavingsAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

var _ savings.SavingsAccountRepository = (*GormSavingsAccountRepository)(nil)

// GormSavingsTransactionRepository implements SavingsTransactionRepository using GORM
type GormSavingsTransactionRepository struct {
	db *gorm.DB
}

// NewGormSavingsTransactionRepository creates a new GormSavingsTransactionRepository
func NewGormSavingsTransactionRepository(db *gorm.DB) *GormSavingsTransactionRepository {
	return &GormSavingsTransactionRepository{db: db}
}

// Create appends a transaction row
func (r *GormSavingsTransactionRepository) Create(ctx context.Context, transaction *savings.SavingsTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByAccount lists transactions for an account, newest first
func (r *GormSavingsTransactionRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]savings.SavingsTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var transactions []savings.SavingsTransaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

var _ savings.SavingsTransactionRepository = (*GormSavingsTransactionRepository)(nil)
