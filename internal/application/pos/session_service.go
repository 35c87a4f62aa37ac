package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kopkar/backend/internal/domain/pos"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SessionService opens and closes cashier sessions
type SessionService struct {
	sessionRepo pos.PosSessionRepository
	logger      *zap.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionRepo pos.PosSessionRepository, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{sessionRepo: sessionRepo, logger: logger}
}

// OpenSession opens a session for a cashier with the counted opening cash.
// A cashier can hold at most one open session at a time.
func (s *SessionService) OpenSession(ctx context.Context, cashierID uuid.UUID, openingCash decimal.Decimal) (*pos.PosSession, error) {
	existing, err := s.sessionRepo.FindOpenByCashier(ctx, cashierID)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Cashier already has open session %s", existing.SessionNumber))
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	count, err := s.sessionRepo.CountForDate(ctx, now.Year(), int(now.Month()), now.Day())
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	sessionNumber := fmt.Sprintf("SES-%s-%02d", now.Format("20060102"), count+1)

	session, err := pos.NewPosSession(sessionNumber, cashierID, openingCash)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("pos session opened",
		zap.String("session_number", session.SessionNumber),
		zap.String("cashier_id", cashierID.String()))
	return session, nil
}

// CloseSession ends a session with the counted closing cash
func (s *SessionService) CloseSession(ctx context.Context, sessionID uuid.UUID, closingCash decimal.Decimal) (*pos.PosSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Close(closingCash); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("pos session closed",
		zap.String("session_number", session.SessionNumber),
		zap.String("expected_cash", session.ExpectedCash().StringFixed(2)),
		zap.String("closing_cash", session.ClosingCash.StringFixed(2)))
	return session, nil
}
