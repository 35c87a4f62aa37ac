package savings

import (
	"context"

	appaccounting "github.com/kopkar/backend/internal/application/accounting"
	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/kopkar/backend/internal/domain/savings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MovementRequest is a submitted deposit or withdrawal
type MovementRequest struct {
	AccountID   uuid.UUID       `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// MovementResponse reports the result of a deposit or withdrawal
type MovementResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	EntryNumber   string          `json:"entry_number,omitempty"`
}

// SavingsService mutates member savings balances. Each movement writes the
// balance change and its audit row in one transaction, then posts the
// matching journal entry through the savings generator.
type SavingsService struct {
	scope       TransactionScope
	accountRepo savings.SavingsAccountRepository
	generator   *appaccounting.JournalGenerator
	logger      *zap.Logger
}

// NewSavingsService creates a new SavingsService
func NewSavingsService(
	scope TransactionScope,
	accountRepo savings.SavingsAccountRepository,
	generator *appaccounting.JournalGenerator,
	logger *zap.Logger,
) *SavingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavingsService{scope: scope, accountRepo: accountRepo, generator: generator, logger: logger}
}

// OpenAccount opens a zero-balance savings account for a member
func (s *SavingsService) OpenAccount(ctx context.Context, memberID uuid.UUID, savingsType savings.SavingsType) (*savings.SavingsAccount, error) {
	account, err := savings.NewSavingsAccount(memberID, savingsType)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount loads one savings account
func (s *SavingsService) GetAccount(ctx context.Context, accountID uuid.UUID) (*savings.SavingsAccount, error) {
	return s.accountRepo.FindByID(ctx, accountID)
}

// Deposit adds to the balance, records the audit row, and posts debit Cash
// against the savings liability account
func (s *SavingsService) Deposit(ctx context.Context, req MovementRequest) (*MovementResponse, error) {
	return s.move(ctx, req, func(account *savings.SavingsAccount) (*savings.SavingsTransaction, error) {
		return account.Deposit(req.Amount, req.Description)
	})
}

// Withdraw removes from the balance. Only sukarela accounts allow
// withdrawal and never below zero; the journal is the deposit reversed.
func (s *SavingsService) Withdraw(ctx context.Context, req MovementRequest) (*MovementResponse, error) {
	return s.move(ctx, req, func(account *savings.SavingsAccount) (*savings.SavingsTransaction, error) {
		return account.Withdraw(req.Amount, req.Description)
	})
}

func (s *SavingsService) move(
	ctx context.Context,
	req MovementRequest,
	mutate func(*savings.SavingsAccount) (*savings.SavingsTransaction, error),
) (*MovementResponse, error) {
	var account *savings.SavingsAccount
	var transaction *savings.SavingsTransaction

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		account, err = repos.AccountRepo().FindByID(ctx, req.AccountID)
		if err != nil {
			return err
		}
		transaction, err = mutate(account)
		if err != nil {
			return err
		}
		if req.CreatedBy != nil {
			transaction.CreatedBy = req.CreatedBy
		}
		if err := repos.AccountRepo().Save(ctx, account); err != nil {
			return err
		}
		return repos.TransactionRepo().Create(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	var entry *accounting.JournalEntry
	if s.generator != nil {
		switch transaction.Type {
		case savings.TransactionTypeDeposit:
			entry, err = s.generator.SavingsDeposit(ctx, account.Type.String(), transaction.Amount, transaction.ID.String())
		case savings.TransactionTypeWithdrawal:
			entry, err = s.generator.SavingsWithdrawal(ctx, account.Type.String(), transaction.Amount, transaction.ID.String())
		}
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("savings movement recorded",
		zap.String("account_id", account.ID.String()),
		zap.String("type", string(transaction.Type)),
		zap.String("balance_after", transaction.BalanceAfter.StringFixed(2)))

	response := &MovementResponse{
		TransactionID: transaction.ID,
		AccountID:     account.ID,
		Type:          string(transaction.Type),
		Amount:        transaction.Amount,
		BalanceAfter:  transaction.BalanceAfter,
	}
	if entry != nil {
		response.EntryNumber = entry.EntryNumber
	}
	return response, nil
}
