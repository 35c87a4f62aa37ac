package member

import (
	"fmt"
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// MemberStatus represents the membership lifecycle state
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

// String returns the string representation
func (s MemberStatus) String() string {
	return string(s)
}

const (
	// maxPinAttempts is the consecutive failure count that locks the PIN
	maxPinAttempts = 5
	// pinLockDuration is how long a locked PIN stays unusable
	pinLockDuration = 30 * time.Minute
)

// Member is a cooperative member. The PIN hash authorizes credit purchases
// at the point of sale; five consecutive failures lock it for thirty minutes.
type Member struct {
	shared.BaseAggregateRoot
	MemberNumber      string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Phone             string          `gorm:"type:varchar(20)"`
	Status            MemberStatus    `gorm:"type:varchar(10);not null;index"`
	CreditLimit       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PinHash           string          `gorm:"type:varchar(100)"`
	PinFailedAttempts int             `gorm:"not null;default:0"`
	PinLockedUntil    *time.Time      `gorm:""`
	JoinedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Member) TableName() string {
	return "members"
}

// NewMember registers an active member
func NewMember(memberNumber, name string, creditLimit decimal.Decimal) (*Member, error) {
	if memberNumber == "" {
		return nil, shared.NewDomainError("INVALID_MEMBER_NUMBER", "Member number cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_MEMBER_NAME", "Member name cannot be empty")
	}
	if creditLimit.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Credit limit cannot be negative")
	}
	return &Member{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberNumber:      memberNumber,
		Name:              name,
		Status:            MemberStatusActive,
		CreditLimit:       creditLimit,
		JoinedAt:          time.Now(),
	}, nil
}

// IsActive returns true if the member may transact
func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// Deactivate ends the membership
func (m *Member) Deactivate() {
	m.Status = MemberStatusInactive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SetPin stores a bcrypt hash of the PIN and clears any lockout
func (m *Member) SetPin(pin string) error {
	if len(pin) < 4 {
		return shared.NewDomainError("VALIDATION_ERROR", "PIN must be at least 4 digits")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}
	m.PinHash = string(hash)
	m.PinFailedAttempts = 0
	m.PinLockedUntil = nil
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// IsPinLocked reports whether the PIN is locked at the given instant
func (m *Member) IsPinLocked(now time.Time) bool {
	return m.PinLockedUntil != nil && now.Before(*m.PinLockedUntil)
}

// VerifyPin checks the PIN. A wrong PIN increments the failure counter and
// the fifth consecutive failure locks the PIN for thirty minutes. A correct
// PIN resets the counter. The caller must persist the member afterwards in
// both outcomes so the counter survives.
func (m *Member) VerifyPin(pin string, now time.Time) error {
	if m.IsPinLocked(now) {
		return shared.NewDomainError("PIN_LOCKED",
			fmt.Sprintf("PIN is locked until %s", m.PinLockedUntil.Format(time.RFC3339)))
	}
	if m.PinHash == "" {
		return shared.NewDomainError("PIN_INVALID", "No PIN has been set")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PinHash), []byte(pin)); err != nil {
		m.PinFailedAttempts++
		if m.PinFailedAttempts >= maxPinAttempts {
			lockedUntil := now.Add(pinLockDuration)
			m.PinLockedUntil = &lockedUntil
			m.PinFailedAttempts = 0
			m.UpdatedAt = now
			m.IncrementVersion()
			return shared.NewDomainError("PIN_LOCKED",
				fmt.Sprintf("PIN is locked until %s", lockedUntil.Format(time.RFC3339)))
		}
		m.UpdatedAt = now
		m.IncrementVersion()
		return shared.NewDomainError("PIN_INVALID", "PIN does not match")
	}

	m.PinFailedAttempts = 0
	m.PinLockedUntil = nil
	m.UpdatedAt = now
	m.IncrementVersion()
	return nil
}
