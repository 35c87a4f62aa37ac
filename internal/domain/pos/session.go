package pos

import (
	"fmt"
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionStatus represents the lifecycle state of a cashier session
type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "OPEN"
	SessionStatusClosed SessionStatus = "CLOSED"
)

// String returns the string representation
func (s SessionStatus) String() string {
	return string(s)
}

// PosSession is one cashier shift. Every checkout belongs to an open
// session and rolls its totals forward.
type PosSession struct {
	shared.BaseAggregateRoot
	SessionNumber    string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CashierID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status           SessionStatus   `gorm:"type:varchar(10);not null;index"`
	OpeningCash      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ClosingCash      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalSales       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalCash        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalCredit      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalSavings     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TransactionCount int             `gorm:"not null;default:0"`
	OpenedAt         time.Time       `gorm:"not null"`
	ClosedAt         *time.Time      `gorm:""`
}

// TableName returns the table name for GORM
func (PosSession) TableName() string {
	return "pos_sessions"
}

// NewPosSession opens a session with the counted opening cash
func NewPosSession(sessionNumber string, cashierID uuid.UUID, openingCash decimal.Decimal) (*PosSession, error) {
	if sessionNumber == "" {
		return nil, shared.NewDomainError("INVALID_SESSION_NUMBER", "Session number cannot be empty")
	}
	if cashierID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Cashier ID cannot be empty")
	}
	if openingCash.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Opening cash cannot be negative")
	}
	return &PosSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SessionNumber:     sessionNumber,
		CashierID:         cashierID,
		Status:            SessionStatusOpen,
		OpeningCash:       openingCash,
		TotalSales:        decimal.Zero,
		TotalCash:         decimal.Zero,
		TotalCredit:       decimal.Zero,
		TotalSavings:      decimal.Zero,
		OpenedAt:          time.Now(),
	}, nil
}

// IsOpen returns true if the session accepts checkouts
func (s *PosSession) IsOpen() bool {
	return s.Status == SessionStatusOpen
}

// RecordSale rolls a completed checkout into the session totals
func (s *PosSession) RecordSale(method PaymentMethod, amount decimal.Decimal) error {
	if !s.IsOpen() {
		return shared.ErrSessionClosed
	}
	s.TotalSales = s.TotalSales.Add(amount)
	switch method {
	case PaymentMethodCash:
		s.TotalCash = s.TotalCash.Add(amount)
	case PaymentMethodSalaryDeduction:
		s.TotalCredit = s.TotalCredit.Add(amount)
	case PaymentMethodSavingsWithdrawal:
		s.TotalSavings = s.TotalSavings.Add(amount)
	default:
		return shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Unknown payment method %s", method))
	}
	s.TransactionCount++
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Close ends the session with the counted closing cash
func (s *PosSession) Close(closingCash decimal.Decimal) error {
	if !s.IsOpen() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Session %s is already closed", s.SessionNumber))
	}
	if closingCash.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Closing cash cannot be negative")
	}
	now := time.Now()
	s.Status = SessionStatusClosed
	s.ClosingCash = closingCash
	s.ClosedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}

// ExpectedCash is the cash the drawer should hold at close
func (s *PosSession) ExpectedCash() decimal.Decimal {
	return s.OpeningCash.Add(s.TotalCash)
}
