package loan

import (
	"context"

	"github.com/google/uuid"
)

// LoanRepository provides access to loans and their schedules
type LoanRepository interface {
	// FindByID finds a loan with its schedule rows
	FindByID(ctx context.Context, id uuid.UUID) (*Loan, error)
	// Create persists a new loan
	Create(ctx context.Context, loan *Loan) error
	// Save persists loan header changes and any schedule changes
	Save(ctx context.Context, loan *Loan) error
	// CountForYear returns how many loans exist for the given year,
	// used to derive the next loan number
	CountForYear(ctx context.Context, year int) (int64, error)
}
