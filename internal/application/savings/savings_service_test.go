package savings_test

import (
	"context"
	"errors"
	"testing"

	appaccounting "github.com/kopkar/backend/internal/application/accounting"
	appsavings "github.com/kopkar/backend/internal/application/savings"
	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/kopkar/backend/internal/domain/savings"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/kopkar/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavingsService(t *testing.T) (*appsavings.SavingsService, *persistence.Database) {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.NewSQLiteDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, persistence.AutoMigrate(db.DB))

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	require.NoError(t, appaccounting.SeedChartOfAccounts(ctx, accountRepo))
	resolver, err := appaccounting.NewAccountResolver(ctx, accountRepo)
	require.NoError(t, err)
	ledger := appaccounting.NewLedgerService(
		persistence.NewGormAccountingScope(db.DB),
		persistence.NewGormJournalEntryRepository(db.DB), nil, nil)

	service := appsavings.NewSavingsService(
		persistence.NewGormSavingsScope(db.DB),
		persistence.NewGormSavingsAccountRepository(db.DB),
		appaccounting.NewJournalGenerator(ledger, resolver),
		nil,
	)
	return service, db
}

func TestDeposit_UpdatesBalanceAndJournals(t *testing.T) {
	service, db := newSavingsService(t)
	ctx := context.Background()

	account, err := service.OpenAccount(ctx, uuid.New(), savings.SavingsTypeWajib)
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())

	resp, err := service.Deposit(ctx, appsavings.MovementRequest{
		AccountID:   account.ID,
		Amount:      decimal.NewFromInt(25000),
		Description: "Simpanan wajib Maret",
	})
	require.NoError(t, err)

	assert.Equal(t, "DEPOSIT", resp.Type)
	assert.True(t, resp.BalanceAfter.Equal(decimal.NewFromInt(25000)))
	assert.NotEmpty(t, resp.EntryNumber)

	// the generated entry is posted and references the savings mutation
	var entry accounting.JournalEntry
	require.NoError(t, db.DB.Preload("Lines").First(&entry).Error)
	assert.True(t, entry.IsPosted())
	assert.Equal(t, appaccounting.ReferenceTypeSavings, entry.ReferenceType)
	assert.Equal(t, resp.TransactionID.String(), entry.ReferenceID)
	assert.True(t, entry.TotalDebit().Equal(decimal.NewFromInt(25000)))

	// debit cash, credit the wajib liability account
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	cash, err := accountRepo.FindByCode(ctx, accounting.CodeCash)
	require.NoError(t, err)
	wajib, err := accountRepo.FindByCode(ctx, accounting.CodeSimpananWajib)
	require.NoError(t, err)
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, cash.ID, entry.Lines[0].AccountID)
	assert.True(t, entry.Lines[0].Debit.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, wajib.ID, entry.Lines[1].AccountID)
	assert.True(t, entry.Lines[1].Credit.Equal(decimal.NewFromInt(25000)))

	// a second deposit accumulates
	resp, err = service.Deposit(ctx, appsavings.MovementRequest{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	assert.True(t, resp.BalanceAfter.Equal(decimal.NewFromInt(30000)))
}

func TestWithdraw_OnlySukarela(t *testing.T) {
	service, _ := newSavingsService(t)
	ctx := context.Background()

	pokok, err := service.OpenAccount(ctx, uuid.New(), savings.SavingsTypePokok)
	require.NoError(t, err)
	_, err = service.Deposit(ctx, appsavings.MovementRequest{AccountID: pokok.ID, Amount: decimal.NewFromInt(100000)})
	require.NoError(t, err)

	_, err = service.Withdraw(ctx, appsavings.MovementRequest{AccountID: pokok.ID, Amount: decimal.NewFromInt(1000)})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	// balance untouched
	reloaded, err := service.GetAccount(ctx, pokok.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.NewFromInt(100000)))
}

func TestWithdraw_InsufficientBalanceLeavesNoRows(t *testing.T) {
	service, db := newSavingsService(t)
	ctx := context.Background()

	account, err := service.OpenAccount(ctx, uuid.New(), savings.SavingsTypeSukarela)
	require.NoError(t, err)
	_, err = service.Deposit(ctx, appsavings.MovementRequest{AccountID: account.ID, Amount: decimal.NewFromInt(10000)})
	require.NoError(t, err)

	_, err = service.Withdraw(ctx, appsavings.MovementRequest{AccountID: account.ID, Amount: decimal.NewFromInt(10001)})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)

	var txCount int64
	require.NoError(t, db.DB.Model(&savings.SavingsTransaction{}).Count(&txCount).Error)
	assert.EqualValues(t, 1, txCount, "only the funding deposit is recorded")
}

func TestWithdraw_SukarelaJournalsReversal(t *testing.T) {
	service, db := newSavingsService(t)
	ctx := context.Background()

	account, err := service.OpenAccount(ctx, uuid.New(), savings.SavingsTypeSukarela)
	require.NoError(t, err)
	_, err = service.Deposit(ctx, appsavings.MovementRequest{AccountID: account.ID, Amount: decimal.NewFromInt(40000)})
	require.NoError(t, err)

	resp, err := service.Withdraw(ctx, appsavings.MovementRequest{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(15000),
	})
	require.NoError(t, err)
	assert.Equal(t, "WITHDRAWAL", resp.Type)
	assert.True(t, resp.BalanceAfter.Equal(decimal.NewFromInt(25000)))
	assert.NotEmpty(t, resp.EntryNumber)

	var entryCount int64
	require.NoError(t, db.DB.Model(&accounting.JournalEntry{}).Count(&entryCount).Error)
	assert.EqualValues(t, 2, entryCount, "deposit and withdrawal each journal once")
}
