package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/member"
	"github.com/kopkar/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMemberRepository implements MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindByID finds a member by their ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	var m member.Member
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByMemberNumber finds a member by their member number
func (r *GormMemberRepository) FindByMemberNumber(ctx context.Context, memberNumber string) (*member.Member, error) {
	var m member.Member
	if err := r.db.WithContext(ctx).First(&m, "member_number = ?", memberNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create persists a new member
func (r *GormMemberRepository) Create(ctx context.Context, m *member.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Save persists member changes including PIN counters
func (r *GormMemberRepository) Save(ctx context.Context, m *member.Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

var _ member.MemberRepository = (*GormMemberRepository)(nil)
