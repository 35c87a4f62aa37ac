package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	appaccounting "github.com/kopkar/backend/internal/application/accounting"
	"github.com/kopkar/backend/internal/domain/member"
	"github.com/kopkar/backend/internal/domain/pos"
	"github.com/kopkar/backend/internal/domain/savings"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/kopkar/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutItem is one submitted cart line
type CheckoutItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitID      uuid.UUID       `json:"unit_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CheckoutRequest is one submitted checkout attempt
type CheckoutRequest struct {
	SessionID      uuid.UUID         `json:"session_id"`
	MemberID       *uuid.UUID        `json:"member_id,omitempty"`
	WarehouseID    uuid.UUID         `json:"warehouse_id"`
	Items          []CheckoutItem    `json:"items"`
	Discount       decimal.Decimal   `json:"discount"`
	PaymentMethod  pos.PaymentMethod `json:"payment_method"`
	PaidAmount     decimal.Decimal   `json:"paid_amount"`
	Pin            string            `json:"pin,omitempty"`
	IdempotencyKey string            `json:"-"`
	CreatedBy      *uuid.UUID        `json:"-"`
}

// CheckoutResponse reports one completed checkout
type CheckoutResponse struct {
	TransactionID     uuid.UUID       `json:"transaction_id,omitempty"`
	TransactionNumber string          `json:"transaction_number"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ChangeAmount      decimal.Decimal `json:"change_amount"`
	EntryNumber       string          `json:"entry_number,omitempty"`
	Replayed          bool            `json:"replayed,omitempty"`
}

// CheckoutService orchestrates the point-of-sale checkout: a sequence of
// advisory gates, one atomic block, and a best-effort post-commit journal.
// The gates abort with no side effects before the block; the stock
// pre-check and the decrement are deliberately not one compare-and-swap, so
// concurrent checkouts can drive stock transiently negative.
type CheckoutService struct {
	scope              CheckoutScope
	memberRepo         member.MemberRepository
	sessionRepo        pos.PosSessionRepository
	transactionRepo    pos.PosTransactionRepository
	receivableRepo     pos.MemberReceivableRepository
	savingsAccountRepo savings.SavingsAccountRepository
	warehouseStockRepo stock.WarehouseStockRepository
	generator          *appaccounting.JournalGenerator
	idempotency        IdempotencyStore
	logger             *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	scope CheckoutScope,
	memberRepo member.MemberRepository,
	sessionRepo pos.PosSessionRepository,
	transactionRepo pos.PosTransactionRepository,
	receivableRepo pos.MemberReceivableRepository,
	savingsAccountRepo savings.SavingsAccountRepository,
	warehouseStockRepo stock.WarehouseStockRepository,
	generator *appaccounting.JournalGenerator,
	idempotency IdempotencyStore,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		scope:              scope,
		memberRepo:         memberRepo,
		sessionRepo:        sessionRepo,
		transactionRepo:    transactionRepo,
		receivableRepo:     receivableRepo,
		savingsAccountRepo: savingsAccountRepo,
		warehouseStockRepo: warehouseStockRepo,
		generator:          generator,
		idempotency:        idempotency,
		logger:             logger,
	}
}

// Checkout runs one checkout attempt end to end
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	if req.IdempotencyKey != "" {
		if s.idempotency != nil {
			number, found, err := s.idempotency.Get(ctx, req.IdempotencyKey)
			if err != nil {
				s.logger.Warn("idempotency lookup failed, proceeding", zap.Error(err))
			} else if found {
				return &CheckoutResponse{TransactionNumber: number, Replayed: true}, nil
			}
		}
		// the checkout log is the backstop when the store has no record,
		// e.g. after an in-memory store restart
		if existing, err := s.transactionRepo.FindByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
			return s.replayResponse(ctx, req.IdempotencyKey, existing), nil
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	// Gate 1: cart must not be empty
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Checkout requires at least one item")
	}
	if !req.PaymentMethod.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Unknown payment method %s", req.PaymentMethod))
	}

	// Gate 2: the member, when given, must exist and be active
	var buyer *member.Member
	if req.MemberID != nil && *req.MemberID != uuid.Nil {
		var err error
		buyer, err = s.memberRepo.FindByID(ctx, *req.MemberID)
		if err != nil {
			return nil, err
		}
		if !buyer.IsActive() {
			return nil, shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("Member %s is not active", buyer.MemberNumber))
		}
	}
	if req.PaymentMethod.RequiresMember() && buyer == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment method requires a member")
	}

	// Gate 3: totals
	if req.Discount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Discount cannot be negative")
	}
	subtotal := decimal.Zero
	for _, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item quantity must be positive")
		}
		subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice))
	}
	total := subtotal.Sub(req.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	// Gate 4: salary deduction needs headroom under the credit limit and a
	// verified PIN; the failure counter persists in both outcomes
	if req.PaymentMethod == pos.PaymentMethodSalaryDeduction {
		pending, err := s.receivableRepo.OutstandingTotalForMember(ctx, buyer.ID)
		if err != nil {
			return nil, err
		}
		if pending.Add(total).GreaterThan(buyer.CreditLimit) {
			return nil, shared.NewDomainError("LIMIT_EXCEEDED",
				fmt.Sprintf("Purchase of %s exceeds remaining credit of %s",
					total.StringFixed(2), buyer.CreditLimit.Sub(pending).StringFixed(2)))
		}
		if req.Pin == "" {
			return nil, shared.NewDomainError("PIN_INVALID", "PIN is required for salary deduction")
		}
		pinErr := buyer.VerifyPin(req.Pin, time.Now())
		if saveErr := s.memberRepo.Save(ctx, buyer); saveErr != nil {
			s.logger.Error("failed to persist PIN counters", zap.Error(saveErr))
		}
		if pinErr != nil {
			return nil, pinErr
		}
	}

	// Gate 5: savings withdrawal needs a sukarela account covering the total
	if req.PaymentMethod == pos.PaymentMethodSavingsWithdrawal {
		account, err := s.savingsAccountRepo.FindByMemberAndType(ctx, buyer.ID, savings.SavingsTypeSukarela)
		if err != nil {
			return nil, err
		}
		if account.Balance.LessThan(total) {
			return nil, shared.NewDomainError("INSUFFICIENT_BALANCE",
				fmt.Sprintf("Sukarela balance %s is less than the total %s",
					account.Balance.StringFixed(2), total.StringFixed(2)))
		}
	}

	// Gate 6: advisory per-line stock pre-check
	for _, item := range req.Items {
		quantity, err := s.warehouseStockRepo.GetQuantity(ctx, req.WarehouseID, item.ProductID)
		if err != nil {
			return nil, err
		}
		if quantity.LessThan(item.Quantity) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for %s: have %s, need %s",
					item.ProductName, quantity.String(), item.Quantity.String()))
		}
	}

	// Gate 7: the session must be open
	session, err := s.sessionRepo.FindByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, shared.ErrSessionClosed
	}

	transaction, err := s.executeAtomicBlock(ctx, req, session, total)
	if err != nil {
		return nil, err
	}

	response := &CheckoutResponse{
		TransactionID:     transaction.ID,
		TransactionNumber: transaction.TransactionNumber,
		TotalAmount:       transaction.TotalAmount,
	}
	if payment := transaction.Payment(); payment != nil {
		response.ChangeAmount = payment.ChangeAmount
	}

	// Post-commit, best-effort: the sale stands even when the journal
	// cannot be created
	if s.generator != nil {
		entry, err := s.generator.PosSale(ctx, req.PaymentMethod.String(), transaction.TotalAmount, transaction.ID.String())
		if err != nil {
			s.logger.Error("sale journal failed, sale kept",
				zap.String("transaction_number", transaction.TransactionNumber),
				zap.Error(err))
		} else {
			response.EntryNumber = entry.EntryNumber
		}
	}

	if req.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Set(ctx, req.IdempotencyKey, transaction.TransactionNumber); err != nil {
			s.logger.Warn("failed to store idempotency key", zap.Error(err))
		}
	}

	s.logger.Info("checkout completed",
		zap.String("transaction_number", transaction.TransactionNumber),
		zap.String("method", req.PaymentMethod.String()),
		zap.String("total", transaction.TotalAmount.StringFixed(2)))
	return response, nil
}

// OutstandingReceivables lists the member's unsettled salary-deduction
// debts, oldest due first
func (s *CheckoutService) OutstandingReceivables(ctx context.Context, memberID uuid.UUID) ([]pos.MemberReceivable, error) {
	if _, err := s.memberRepo.FindByID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.receivableRepo.FindOutstandingByMember(ctx, memberID)
}

// replayResponse rebuilds the original response from the stored checkout
// and re-warms the idempotency store
func (s *CheckoutService) replayResponse(ctx context.Context, key string, transaction *pos.PosTransaction) *CheckoutResponse {
	response := &CheckoutResponse{
		TransactionID:     transaction.ID,
		TransactionNumber: transaction.TransactionNumber,
		TotalAmount:       transaction.TotalAmount,
		Replayed:          true,
	}
	if payment := transaction.Payment(); payment != nil {
		response.ChangeAmount = payment.ChangeAmount
	}
	if s.idempotency != nil {
		if err := s.idempotency.Set(ctx, key, transaction.TransactionNumber); err != nil {
			s.logger.Warn("failed to re-warm idempotency key", zap.Error(err))
		}
	}
	return response
}

// executeAtomicBlock writes every row of the checkout in one transaction:
// the transaction with items and payment, the receivable or savings
// decrement depending on method, one stock out movement per line, and the
// session totals.
func (s *CheckoutService) executeAtomicBlock(ctx context.Context, req CheckoutRequest, session *pos.PosSession, total decimal.Decimal) (*pos.PosTransaction, error) {
	var transaction *pos.PosTransaction
	now := time.Now()

	err := s.scope.Execute(ctx, func(repos CheckoutRepositories) error {
		count, err := repos.TransactionRepo().CountForDate(ctx, now.Year(), int(now.Month()), now.Day())
		if err != nil {
			return fmt.Errorf("failed to count transactions: %w", err)
		}
		transactionNumber := fmt.Sprintf("POS-%s-%04d", now.Format("20060102"), count+1)

		items := make([]pos.ItemSpec, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, pos.ItemSpec{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitID:      item.UnitID,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Subtotal:    item.Quantity.Mul(item.UnitPrice),
			})
		}

		transaction, err = pos.NewPosTransaction(transactionNumber, req.SessionID,
			req.WarehouseID, req.MemberID, req.PaymentMethod, items, req.Discount, req.PaidAmount)
		if err != nil {
			return err
		}
		if req.IdempotencyKey != "" {
			transaction.WithIdempotencyKey(req.IdempotencyKey)
		}
		if err := repos.TransactionRepo().Create(ctx, transaction); err != nil {
			return err
		}

		switch req.PaymentMethod {
		case pos.PaymentMethodSalaryDeduction:
			receivable, err := pos.NewMemberReceivable(*req.MemberID, transaction.ID, total, now)
			if err != nil {
				return err
			}
			if err := repos.ReceivableRepo().Create(ctx, receivable); err != nil {
				return err
			}
		case pos.PaymentMethodSavingsWithdrawal:
			account, err := repos.SavingsAccountRepo().FindByMemberAndType(ctx, *req.MemberID, savings.SavingsTypeSukarela)
			if err != nil {
				return err
			}
			savingsTx, err := account.Withdraw(total, fmt.Sprintf("Pembelian %s", transactionNumber))
			if err != nil {
				return err
			}
			if err := repos.SavingsAccountRepo().Save(ctx, account); err != nil {
				return err
			}
			if err := repos.SavingsTransactionRepo().Create(ctx, savingsTx); err != nil {
				return err
			}
		}

		movementCount, err := repos.MovementRepo().CountForYear(ctx, now.Year())
		if err != nil {
			return fmt.Errorf("failed to count movements: %w", err)
		}
		for i, item := range req.Items {
			movementNumber := fmt.Sprintf("SM-%d-%06d", now.Year(), movementCount+int64(i)+1)
			movement, err := stock.NewStockMovement(movementNumber, stock.MovementTypeOut,
				req.WarehouseID, item.ProductID, item.UnitID, item.Quantity, nil, now)
			if err != nil {
				return err
			}
			movement.WithReference(appaccounting.ReferenceTypePosSale, transaction.ID.String())
			if req.CreatedBy != nil {
				movement.WithCreatedBy(*req.CreatedBy)
			}
			if err := repos.MovementRepo().Create(ctx, movement); err != nil {
				return err
			}
			if err := repos.WarehouseStockRepo().UpsertIncrement(ctx, movement.WarehouseID, movement.ProductID, movement.SourceDelta()); err != nil {
				return err
			}
		}

		if err := session.RecordSale(req.PaymentMethod, total); err != nil {
			return err
		}
		return repos.SessionRepo().Save(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}
