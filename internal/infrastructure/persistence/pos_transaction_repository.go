package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/pos"
	"github.com/kopkar/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPosTransactionRepository implements PosTransactionRepository using GORM
type GormPosTransactionRepository struct {
	db *gorm.DB
}

// NewGormPosTransactionRepository creates a new GormPosTransactionRepository
func NewGormPosTransactionRepository(db *gorm.DB) *GormPosTransactionRepository {
	return &GormPosTransactionRepository{db: db}
}

// Create appends a checkout with its items and payments
func (r *GormPosTransactionRepository) Create(ctx context.Context, transaction *pos.PosTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByID finds a checkout with its items and payments
func (r *GormPosTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*pos.PosTransaction, error) {
	var transaction pos.PosTransaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindByIdempotencyKey finds a previously completed checkout for the given key
func (r *GormPosTransactionRepository) FindByIdempotencyKey(ctx context.Context, key string) (*pos.PosTransaction, error) {
	var transaction pos.PosTransaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&transaction, "idempotency_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// CountForDate returns how many checkouts happened on the given day
func (r *GormPosTransactionRepository) CountForDate(ctx context.Context, year, month, day int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&pos.PosTransaction{}).
		Where("transaction_number LIKE ?", fmt.Sprintf("POS-%04d%02d%02d-%%", year, month, day)).
		Count(&count).Error
	return count, err
}

var _ pos.PosTransactionRepository = (*GormPosTransactionRepository)(nil)
