package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/pos"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMemberReceivableRepository implements MemberReceivableRepository using GORM
type GormMemberReceivableRepository struct {
	db *gorm.DB
}

// NewGormMemberReceivableRepository creates a new GormMemberReceivableRepository
func NewGormMemberReceivableRepository(db *gorm.DB) *GormMemberReceivableRepository {
	return &GormMemberReceivableRepository{db: db}
}

// Create books a new receivable
func (r *GormMemberReceivableRepository) Create(ctx context.Context, receivable *pos.MemberReceivable) error {
	return r.db.WithContext(ctx).Create(receivable).Error
}

// FindByID finds a receivable
func (r *GormMemberReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*pos.MemberReceivable, error) {
	var receivable pos.MemberReceivable
	if err := r.db.WithContext(ctx).First(&receivable, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receivable, nil
}

// FindOutstandingByMember lists unsettled receivables, oldest due first
func (r *GormMemberReceivableRepository) FindOutstandingByMember(ctx context.Context, memberID uuid.UUID) ([]pos.MemberReceivable, error) {
	var receivables []pos.MemberReceivable
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, pos.ReceivableStatusPending).
		Order("due_year ASC, due_month ASC, created_at ASC").
		Find(&receivables).Error
	if err != nil {
		return nil, err
	}
	return receivables, nil
}

// OutstandingTotalForMember sums the unpaid remainder across the member's
// receivables
func (r *GormMemberReceivableRepository) OutstandingTotalForMember(ctx context.Context, memberID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&pos.MemberReceivable{}).
		Select("COALESCE(SUM(amount - paid_amount), 0) AS total").
		Where("member_id = ? AND status = ?", memberID, pos.ReceivableStatusPending).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save persists settlement changes
func (r *GormMemberReceivableRepository) Save(ctx context.Context, receivable *pos.MemberReceivable) error {
	return r.db.WithContext(ctx).Save(receivable).Error
}

var _ pos.MemberReceivableRepository = (*GormMemberReceivableRepository)(nil)
