package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balancedLines(amount int64) []LineSpec {
	return []LineSpec{
		{AccountID: uuid.New(), Debit: decimal.NewFromInt(amount), Credit: decimal.Zero},
		{AccountID: uuid.New(), Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)},
	}
}

func TestNewJournalEntry(t *testing.T) {
	entryDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates balanced draft entry", func(t *testing.T) {
		entry, err := NewJournalEntry("JE-2026-00001", entryDate, "Member deposit", balancedLines(500000))
		require.NoError(t, err)
		assert.Equal(t, EntryStatusDraft, entry.Status)
		assert.Nil(t, entry.PostedAt)
		assert.Len(t, entry.Lines, 2)
		assert.True(t, entry.IsBalanced())
		for _, line := range entry.Lines {
			assert.Equal(t, entry.ID, line.EntryID)
		}
	})

	t.Run("rejects unbalanced lines", func(t *testing.T) {
		lines := []LineSpec{
			{AccountID: uuid.New(), Debit: decimal.NewFromInt(100000)},
			{AccountID: uuid.New(), Credit: decimal.NewFromInt(99000)},
		}
		_, err := NewJournalEntry("JE-2026-00002", entryDate, "", lines)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not balanced")
	})

	t.Run("accepts imbalance within tolerance", func(t *testing.T) {
		lines := []LineSpec{
			{AccountID: uuid.New(), Debit: decimal.NewFromFloat(100000.004)},
			{AccountID: uuid.New(), Credit: decimal.NewFromInt(100000)},
		}
		entry, err := NewJournalEntry("JE-2026-00003", entryDate, "", lines)
		require.NoError(t, err)
		assert.True(t, entry.IsBalanced())
	})

	t.Run("rejects single line", func(t *testing.T) {
		lines := []LineSpec{{AccountID: uuid.New(), Debit: decimal.NewFromInt(100)}}
		_, err := NewJournalEntry("JE-2026-00004", entryDate, "", lines)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least two lines")
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		lines := []LineSpec{
			{AccountID: uuid.New(), Debit: decimal.NewFromInt(-100)},
			{AccountID: uuid.New(), Credit: decimal.NewFromInt(-100)},
		}
		_, err := NewJournalEntry("JE-2026-00005", entryDate, "", lines)
		require.Error(t, err)
	})

	t.Run("rejects line without account", func(t *testing.T) {
		lines := []LineSpec{
			{AccountID: uuid.Nil, Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.New(), Credit: decimal.NewFromInt(100)},
		}
		_, err := NewJournalEntry("JE-2026-00006", entryDate, "", lines)
		require.Error(t, err)
	})

	t.Run("rejects empty entry number", func(t *testing.T) {
		_, err := NewJournalEntry("", entryDate, "", balancedLines(100))
		require.Error(t, err)
	})
}

func TestJournalEntryPost(t *testing.T) {
	entry, err := NewJournalEntry("JE-2026-00010", time.Now(), "", balancedLines(250000))
	require.NoError(t, err)

	t.Run("posting is one-way", func(t *testing.T) {
		require.NoError(t, entry.Post())
		assert.Equal(t, EntryStatusPosted, entry.Status)
		require.NotNil(t, entry.PostedAt)

		err := entry.Post()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already posted")
		assert.Equal(t, EntryStatusPosted, entry.Status)
	})
}

func TestJournalEntryTotals(t *testing.T) {
	lines := []LineSpec{
		{AccountID: uuid.New(), Debit: decimal.NewFromInt(1120000)},
		{AccountID: uuid.New(), Credit: decimal.NewFromInt(1000000)},
		{AccountID: uuid.New(), Credit: decimal.NewFromInt(120000)},
	}
	entry, err := NewJournalEntry("JE-2026-00011", time.Now(), "Loan payment", lines)
	require.NoError(t, err)

	assert.True(t, entry.TotalDebit().Equal(decimal.NewFromInt(1120000)))
	assert.True(t, entry.TotalCredit().Equal(decimal.NewFromInt(1120000)))
}

func TestMarkPostedAtCreation(t *testing.T) {
	entry, err := NewJournalEntry("JE-2026-00012", time.Now(), "", balancedLines(150000))
	require.NoError(t, err)

	entry.MarkPostedAtCreation()
	assert.True(t, entry.IsPosted())
	require.NotNil(t, entry.PostedAt)

	require.Error(t, entry.Post())
}

func TestAccountType(t *testing.T) {
	assert.True(t, AccountTypeAsset.IsDebitNormal())
	assert.True(t, AccountTypeExpense.IsDebitNormal())
	assert.False(t, AccountTypeLiability.IsDebitNormal())
	assert.False(t, AccountType("BOGUS").IsValid())
}

func TestSavingsLiabilityCode(t *testing.T) {
	assert.Equal(t, CodeSimpananWajib, SavingsLiabilityCode("WAJIB"))
	assert.Equal(t, CodeSimpananSukarela, SavingsLiabilityCode("sukarela"))
	assert.Equal(t, "", SavingsLiabilityCode("UNKNOWN"))
}
