package pos

import (
	"context"

	"github.com/kopkar/backend/internal/domain/pos"
	"github.com/kopkar/backend/internal/domain/savings"
	"github.com/kopkar/backend/internal/domain/stock"
)

// CheckoutScope wraps the checkout's atomic block: the transaction, its
// items and payment, the receivable or savings decrement, the stock
// movements and the session totals all commit or roll back together.
type CheckoutScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos CheckoutRepositories) error) error
}

// CheckoutRepositories provides access to every repository the checkout
// atomic block touches, all scoped to the same transaction
type CheckoutRepositories interface {
	// TransactionRepo returns the checkout log repository
	TransactionRepo() pos.PosTransactionRepository
	// ReceivableRepo returns the member receivable repository
	ReceivableRepo() pos.MemberReceivableRepository
	// SessionRepo returns the cashier session repository
	SessionRepo() pos.PosSessionRepository
	// SavingsAccountRepo returns the savings account repository
	SavingsAccountRepo() savings.SavingsAccountRepository
	// SavingsTransactionRepo returns the savings mutation log repository
	SavingsTransactionRepo() savings.SavingsTransactionRepository
	// MovementRepo returns the stock movement log repository
	MovementRepo() stock.StockMovementRepository
	// WarehouseStockRepo returns the warehouse quantity repository
	WarehouseStockRepo() stock.WarehouseStockRepository
}

// NoOpCheckoutScope runs the block without a real transaction, for tests
// whose repositories already share one connection
type NoOpCheckoutScope struct {
	Transactions        pos.PosTransactionRepository
	Receivables         pos.MemberReceivableRepository
	Sessions            pos.PosSessionRepository
	SavingsAccounts     savings.SavingsAccountRepository
	SavingsTransactions savings.SavingsTransactionRepository
	Movements           stock.StockMovementRepository
	WarehouseStocks     stock.WarehouseStockRepository
}

// Execute runs the function without a real transaction
func (s *NoOpCheckoutScope) Execute(_ context.Context, fn func(repos CheckoutRepositories) error) error {
	return fn(s)
}

// TransactionRepo returns the checkout log repository
func (s *NoOpCheckoutScope) TransactionRepo() pos.PosTransactionRepository { return s.Transactions }

// ReceivableRepo returns the member receivable repository
func (s *NoOpCheckoutScope) ReceivableRepo() pos.MemberReceivableRepository { return s.Receivables }

// SessionRepo returns the cashier session repository
func (s *NoOpCheckoutScope) SessionRepo() pos.PosSessionRepository { return s.Sessions }

// SavingsAccountRepo returns the savings account repository
func (s *NoOpCheckoutScope) SavingsAccountRepo() savings.SavingsAccountRepository {
	return s.SavingsAccounts
}

// SavingsTransactionRepo returns the savings mutation log repository
func (s *NoOpCheckoutScope) SavingsTransactionRepo() savings.SavingsTransactionRepository {
	return s.SavingsTransactions
}

// MovementRepo returns the stock movement log repository
func (s *NoOpCheckoutScope) MovementRepo() stock.StockMovementRepository { return s.Movements }

// WarehouseStockRepo returns the warehouse quantity repository
func (s *NoOpCheckoutScope) WarehouseStockRepo() stock.WarehouseStockRepository {
	return s.WarehouseStocks
}

var _ CheckoutScope = (*NoOpCheckoutScope)(nil)
var _ CheckoutRepositories = (*NoOpCheckoutScope)(nil)
