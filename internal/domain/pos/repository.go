package pos

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PosSessionRepository provides access to cashier sessions
type PosSessionRepository interface {
	// FindByID finds a session by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PosSession, error)
	// FindOpenByCashier finds the cashier's currently open session
	FindOpenByCashier(ctx context.Context, cashierID uuid.UUID) (*PosSession, error)
	// Create persists a new session
	Create(ctx context.Context, session *PosSession) error
	// Save persists session total changes
	Save(ctx context.Context, session *PosSession) error
	// CountForDate returns how many sessions were opened on the given day,
	// used to derive the next session number
	CountForDate(ctx context.Context, year, month, day int) (int64, error)
}

// PosTransactionRepository is the append-only checkout log
type PosTransactionRepository interface {
	// Create appends a checkout with its items
	Create(ctx context.Context, transaction *PosTransaction) error
	// FindByID finds a checkout with its items
	FindByID(ctx context.Context, id uuid.UUID) (*PosTransaction, error)
	// FindByIdempotencyKey finds a previously completed checkout for the
	// given key, nil result mapped to shared.ErrNotFound
	FindByIdempotencyKey(ctx context.Context, key string) (*PosTransaction, error)
	// CountForDate returns how many checkouts happened on the given day,
	// used to derive the next transaction number
	CountForDate(ctx context.Context, year, month, day int) (int64, error)
}

// MemberReceivableRepository provides access to member credit debts
type MemberReceivableRepository interface {
	// Create books a new receivable
	Create(ctx context.Context, receivable *MemberReceivable) error
	// FindByID finds a receivable
	FindByID(ctx context.Context, id uuid.UUID) (*MemberReceivable, error)
	// FindOutstandingByMember lists unsettled receivables, oldest due first
	FindOutstandingByMember(ctx context.Context, memberID uuid.UUID) ([]MemberReceivable, error)
	// OutstandingTotalForMember sums the unpaid remainder across the
	// member's receivables
	OutstandingTotalForMember(ctx context.Context, memberID uuid.UUID) (decimal.Decimal, error)
	// Save persists settlement changes
	Save(ctx context.Context, receivable *MemberReceivable) error
}
