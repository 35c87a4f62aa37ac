package savings

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavingsAccountDeposit(t *testing.T) {
	account, err := NewSavingsAccount(uuid.New(), SavingsTypeWajib)
	require.NoError(t, err)

	tx, err := account.Deposit(decimal.NewFromInt(50000), "monthly deposit")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, TransactionTypeDeposit, tx.Type)
	assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, account.ID, tx.AccountID)
	assert.Equal(t, account.MemberID, tx.MemberID)

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := account.Deposit(decimal.Zero, "")
		require.Error(t, err)
		_, err = account.Deposit(decimal.NewFromInt(-100), "")
		require.Error(t, err)
	})
}

func TestSavingsAccountWithdraw(t *testing.T) {
	t.Run("sukarela allows withdrawal up to balance", func(t *testing.T) {
		account, err := NewSavingsAccount(uuid.New(), SavingsTypeSukarela)
		require.NoError(t, err)
		_, err = account.Deposit(decimal.NewFromInt(100000), "")
		require.NoError(t, err)

		tx, err := account.Withdraw(decimal.NewFromInt(30000), "withdrawal")
		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(70000)))
		assert.Equal(t, TransactionTypeWithdrawal, tx.Type)
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(70000)))
	})

	t.Run("withdrawal above balance is rejected", func(t *testing.T) {
		account, err := NewSavingsAccount(uuid.New(), SavingsTypeSukarela)
		require.NoError(t, err)
		_, err = account.Deposit(decimal.NewFromInt(10000), "")
		require.NoError(t, err)

		_, err = account.Withdraw(decimal.NewFromInt(10001), "")
		require.Error(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("pokok and wajib never allow withdrawal", func(t *testing.T) {
		for _, savingsType := range []SavingsType{SavingsTypePokok, SavingsTypeWajib} {
			account, err := NewSavingsAccount(uuid.New(), savingsType)
			require.NoError(t, err)
			_, err = account.Deposit(decimal.NewFromInt(100000), "")
			require.NoError(t, err)

			_, err = account.Withdraw(decimal.NewFromInt(1000), "")
			require.Error(t, err, "type %s", savingsType)
		}
	})
}

func TestSavingsTypeIsWithdrawable(t *testing.T) {
	assert.False(t, SavingsTypePokok.IsWithdrawable())
	assert.False(t, SavingsTypeWajib.IsWithdrawable())
	assert.True(t, SavingsTypeSukarela.IsWithdrawable())
}

func TestNewSavingsAccountValidation(t *testing.T) {
	_, err := NewSavingsAccount(uuid.Nil, SavingsTypePokok)
	require.Error(t, err)

	_, err = NewSavingsAccount(uuid.New(), SavingsType("DEPOSITO"))
	require.Error(t, err)
}
