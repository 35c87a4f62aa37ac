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

// GormPosSessionRepository implements PosSessionRepository using GORM
type GormPosSessionRepository struct {
	db *gorm.DB
}

// NewGormPosSessionRepository creates a new GormPosSessionRepository
func NewGormPosSessionRepository(db *gorm.DB) *GormPosSessionRepository {
	return &GormPosSessionRepository{db: db}
}

// FindByID finds a session by its ID
func (r *GormPosSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*pos.PosSession, error) {
	var session pos.PosSession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindOpenByCashier finds the cashier's currently open session
func (r *GormPosSessionRepository) FindOpenByCashier(ctx context.Context, cashierID uuid.UUID) (*pos.PosSession, error) {
	var session pos.PosSession
	err := r.db.WithContext(ctx).
		First(&session, "cashier_id = ? AND status = ?", cashierID, pos.SessionStatusOpen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Create persists a new session
func (r *GormPosSessionRepository) Create(ctx context.Context, session *pos.PosSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// Save persists session total changes
func (r *GormPosSessionRepository) Save(ctx context.Context, session *pos.PosSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// CountForDate returns how many sessions were opened on the given day
func (r *GormPosSessionRepository) CountForDate(ctx context.Context, year, month, day int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&pos.PosSession{}).
		Where("session_number LIKE ?", fmt.Sprintf("SES-%04d%02d%02d-%%", year, month, day)).
		Count(&count).Error
	return count, err
}

var _ pos.PosSessionRepository = (*GormPosSessionRepository)(nil)
