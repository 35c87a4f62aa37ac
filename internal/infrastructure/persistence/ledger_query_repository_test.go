package persistence

import (
	"context"
	"testing"
	"time"

	appaccounting "github.com/kopkar/backend/internal/application/accounting"
	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAccount(t *testing.T, db *gorm.DB, code, name string, accountType accounting.AccountType) *accounting.Account {
	t.Helper()
	account, err := accounting.NewAccount(code, name, accountType, nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(account).Error)
	return account
}

func seedEntry(t *testing.T, db *gorm.DB, number string, date time.Time, posted bool, lines []accounting.LineSpec) *accounting.JournalEntry {
	t.Helper()
	entry, err := accounting.NewJournalEntry(number, date, "seed", lines)
	require.NoError(t, err)
	if posted {
		entry.MarkPostedAtCreation()
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func TestGormLedgerQueryRepository_AccountNetsBetween(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLedgerQueryRepository(db)
	ctx := context.Background()

	cash := seedAccount(t, db, "1010", "Kas", accounting.AccountTypeAsset)
	revenue := seedAccount(t, db, "4010", "Pendapatan Penjualan", accounting.AccountTypeRevenue)

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	seedEntry(t, db, "JE-2026-00001", jan, true, []accounting.LineSpec{
		{AccountID: cash.ID, Debit: decimal.NewFromInt(500)},
		{AccountID: revenue.ID, Credit: decimal.NewFromInt(500)},
	})

	t.Run("aggregates posted lines per account", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

		nets, err := repo.AccountNetsBetween(ctx, from, to)

		require.NoError(t, err)
		require.Len(t, nets, 2)
		assert.Equal(t, "1010", nets[0].AccountCode)
		assert.True(t, nets[0].TotalDebit.Equal(decimal.NewFromInt(500)))
		assert.True(t, nets[0].TotalCredit.IsZero())
		assert.Equal(t, "4010", nets[1].AccountCode)
		assert.True(t, nets[1].TotalCredit.Equal(decimal.NewFromInt(500)))
	})

	t.Run("draft entries never contribute", func(t *testing.T) {
		seedEntry(t, db, "JE-2026-00002", jan, false, []accounting.LineSpec{
			{AccountID: cash.ID, Debit: decimal.NewFromInt(999)},
			{AccountID: revenue.ID, Credit: decimal.NewFromInt(999)},
		})

		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

		nets, err := repo.AccountNetsBetween(ctx, from, to)

		require.NoError(t, err)
		require.Len(t, nets, 2)
		assert.True(t, nets[0].TotalDebit.Equal(decimal.NewFromInt(500)))
	})

	t.Run("entries outside the window are excluded", func(t *testing.T) {
		feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
		seedEntry(t, db, "JE-2026-00003", feb, true, []accounting.LineSpec{
			{AccountID: cash.ID, Debit: decimal.NewFromInt(100)},
			{AccountID: revenue.ID, Credit: decimal.NewFromInt(100)},
		})

		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

		nets, err := repo.AccountNetsBetween(ctx, from, to)

		require.NoError(t, err)
		assert.True(t, nets[0].TotalDebit.Equal(decimal.NewFromInt(500)))

		asOf, err := repo.AccountNetsAsOf(ctx, feb)
		require.NoError(t, err)
		assert.True(t, asOf[0].TotalDebit.Equal(decimal.NewFromInt(600)))
	})
}

func TestGormLedgerQueryRepository_PostedLinesForAccount(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLedgerQueryRepository(db)
	ctx := context.Background()

	cash := seedAccount(t, db, "1010", "Kas", accounting.AccountTypeAsset)
	revenue := seedAccount(t, db, "4010", "Pendapatan Penjualan", accounting.AccountTypeRevenue)

	d1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	seedEntry(t, db, "JE-2026-00010", d2, true, []accounting.LineSpec{
		{AccountID: cash.ID, Debit: decimal.NewFromInt(200)},
		{AccountID: revenue.ID, Credit: decimal.NewFromInt(200)},
	})
	seedEntry(t, db, "JE-2026-00011", d1, true, []accounting.LineSpec{
		{AccountID: cash.ID, Debit: decimal.NewFromInt(300)},
		{AccountID: revenue.ID, Credit: decimal.NewFromInt(300)},
	})

	lines, err := repo.PostedLinesForAccount(ctx, cash.ID,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, lines, 2)
	// ordered by entry date, not insertion order
	assert.Equal(t, "JE-2026-00011", lines[0].EntryNumber)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "JE-2026-00010", lines[1].EntryNumber)
}

func TestTrialBalance_RepeatedReadsIdentical(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cash := seedAccount(t, db, "1010", "Kas", accounting.AccountTypeAsset)
	revenue := seedAccount(t, db, "4010", "Pendapatan Penjualan", accounting.AccountTypeRevenue)

	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	seedEntry(t, db, "JE-2026-00001", date, true, []accounting.LineSpec{
		{AccountID: cash.ID, Debit: decimal.NewFromInt(250000)},
		{AccountID: revenue.ID, Credit: decimal.NewFromInt(250000)},
	})
	seedEntry(t, db, "JE-2026-00002", date.AddDate(0, 0, 5), true, []accounting.LineSpec{
		{AccountID: cash.ID, Debit: decimal.NewFromInt(75000)},
		{AccountID: revenue.ID, Credit: decimal.NewFromInt(75000)},
	})

	service := appaccounting.NewReportService(
		NewGormLedgerQueryRepository(db), NewGormAccountRepository(db))
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	first, err := service.TrialBalance(ctx, from, to)
	require.NoError(t, err)
	second, err := service.TrialBalance(ctx, from, to)
	require.NoError(t, err)

	// reading is pure: the same committed data and range always yields
	// the same report
	assert.Equal(t, first, second)
	assert.True(t, first.TotalDebit.Equal(decimal.NewFromInt(325000)))
	assert.True(t, first.TotalDebit.Equal(first.TotalCredit))
}

func TestGormJournalEntryRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormJournalEntryRepository(db)
	ctx := context.Background()

	cash := seedAccount(t, db, "1010", "Kas", accounting.AccountTypeAsset)
	revenue := seedAccount(t, db, "4010", "Pendapatan Penjualan", accounting.AccountTypeRevenue)

	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	lines := func(amount int64) []accounting.LineSpec {
		return []accounting.LineSpec{
			{AccountID: cash.ID, Debit: decimal.NewFromInt(amount)},
			{AccountID: revenue.ID, Credit: decimal.NewFromInt(amount)},
		}
	}
	seedEntry(t, db, "JE-2026-00001", base, true, lines(100))
	seedEntry(t, db, "JE-2026-00002", base.AddDate(0, 0, 1), false, lines(200))
	seedEntry(t, db, "JE-2026-00003", base.AddDate(0, 0, 2), true, lines(300))

	t.Run("pages newest first with lines", func(t *testing.T) {
		entries, total, err := repo.List(ctx, shared.Filter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, entries, 2)
		assert.Equal(t, "JE-2026-00003", entries[0].EntryNumber)
		assert.Len(t, entries[0].Lines, 2)

		rest, _, err := repo.List(ctx, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "JE-2026-00001", rest[0].EntryNumber)
	})

	t.Run("filters by status", func(t *testing.T) {
		entries, total, err := repo.List(ctx, shared.Filter{
			Filters: map[string]interface{}{"status": "DRAFT"},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, entries, 1)
		assert.Equal(t, "JE-2026-00002", entries[0].EntryNumber)
	})

	t.Run("searches the entry number", func(t *testing.T) {
		entries, total, err := repo.List(ctx, shared.Filter{Search: "00003"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, entries, 1)
	})
}

func TestGormJournalEntryRepository_CountForYear(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormJournalEntryRepository(db)
	ctx := context.Background()

	cash := seedAccount(t, db, "1010", "Kas", accounting.AccountTypeAsset)
	revenue := seedAccount(t, db, "4010", "Pendapatan Penjualan", accounting.AccountTypeRevenue)

	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seedEntry(t, db, "JE-2026-00001", date, true, []accounting.LineSpec{
		{AccountID: cash.ID, Debit: decimal.NewFromInt(10)},
		{AccountID: revenue.ID, Credit: decimal.NewFromInt(10)},
	})
	seedEntry(t, db, "JE-2025-00001", date.AddDate(-1, 0, 0), true, []accounting.LineSpec{
		{AccountID: cash.ID, Debit: decimal.NewFromInt(10)},
		{AccountID: revenue.ID, Credit: decimal.NewFromInt(10)},
	})

	count, err := repo.CountForYear(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
