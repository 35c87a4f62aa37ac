package member

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/member"
	"github.com/kopkar/backend/internal/domain/savings"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RegisterMemberRequest enrolls a new cooperative member
type RegisterMemberRequest struct {
	MemberNumber string          `json:"member_number"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	Pin          string          `json:"pin,omitempty"`
}

// MemberService manages member enrollment and PIN administration. Each new
// member gets the three standard savings accounts opened at zero balance.
type MemberService struct {
	memberRepo  member.MemberRepository
	accountRepo savings.SavingsAccountRepository
	logger      *zap.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(
	memberRepo member.MemberRepository,
	accountRepo savings.SavingsAccountRepository,
	logger *zap.Logger,
) *MemberService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberService{memberRepo: memberRepo, accountRepo: accountRepo, logger: logger}
}

// RegisterMember creates the member and opens their savings accounts
func (s *MemberService) RegisterMember(ctx context.Context, req RegisterMemberRequest) (*member.Member, error) {
	m, err := member.NewMember(req.MemberNumber, req.Name, req.CreditLimit)
	if err != nil {
		return nil, err
	}
	m.Phone = req.Phone

	if req.Pin != "" {
		if err := m.SetPin(req.Pin); err != nil {
			return nil, err
		}
	}

	if err := s.memberRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	for _, savingsType := range []savings.SavingsType{
		savings.SavingsTypePokok,
		savings.SavingsTypeWajib,
		savings.SavingsTypeSukarela,
	} {
		account, err := savings.NewSavingsAccount(m.ID, savingsType)
		if err != nil {
			return nil, err
		}
		if err := s.accountRepo.Create(ctx, account); err != nil {
			return nil, fmt.Errorf("failed to open %s savings account: %w", savingsType, err)
		}
	}

	s.logger.Info("member registered",
		zap.String("member_id", m.ID.String()),
		zap.String("member_number", m.MemberNumber),
	)
	return m, nil
}

// GetMember returns one member
func (s *MemberService) GetMember(ctx context.Context, memberID uuid.UUID) (*member.Member, error) {
	return s.memberRepo.FindByID(ctx, memberID)
}

// SetPin replaces the member's PIN and clears any lockout
func (s *MemberService) SetPin(ctx context.Context, memberID uuid.UUID, pin string) error {
	m, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	if err := m.SetPin(pin); err != nil {
		return err
	}
	return s.memberRepo.Save(ctx, m)
}
