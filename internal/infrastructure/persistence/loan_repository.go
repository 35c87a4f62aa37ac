package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/loan"
	"github.com/kopkar/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLoanRepository implements LoanRepository using GORM
type GormLoanRepository struct {
	db *gorm.DB
}

// NewGormLoanRepository creates a new GormLoanRepository
func NewGormLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// FindByID finds a loan with its schedule rows ordered by installment number
func (r *GormLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	var l loan.Loan
	err := r.db.WithContext(ctx).
		Preload("Schedules", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Create persists a new loan with its schedule
func (r *GormLoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Save persists loan header changes and any schedule changes
func (r *GormLoanRepository) Save(ctx context.Context, l *loan.Loan) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(l).Error
}

// CountForYear returns how many loans exist for the given year
func (r *GormLoanRepository) CountForYear(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Where("loan_number LIKE ?", fmt.Sprintf("LN-%d-%%", year)).
		Count(&count).Error
	return count, err
}

var _ loan.LoanRepository = (*GormLoanRepository)(nil)
