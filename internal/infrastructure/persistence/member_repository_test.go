package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockMemberRepository creates a GormMemberRepository with a mocked SQL connection
func newMockMemberRepository(t *testing.T) (*GormMemberRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormMemberRepository(gormDB), mock, mockDB
}

func TestGormMemberRepository_FindByID(t *testing.T) {
	t.Run("finds existing member", func(t *testing.T) {
		repo, mock, mockDB := newMockMemberRepository(t)
		defer mockDB.Close()

		memberID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "member_number", "name", "status", "credit_limit", "pin_failed_attempts", "version",
		}).AddRow(
			memberID, "M-0001", "Budi Santoso", "ACTIVE", decimal.NewFromInt(2000000), 0, 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1`).
			WithArgs(memberID, 1).
			WillReturnRows(rows)

		m, err := repo.FindByID(context.Background(), memberID)

		assert.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, memberID, m.ID)
		assert.Equal(t, "M-0001", m.MemberNumber)
		assert.True(t, m.IsActive())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns shared.ErrNotFound for missing member", func(t *testing.T) {
		repo, mock, mockDB := newMockMemberRepository(t)
		defer mockDB.Close()

		memberID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1`).
			WithArgs(memberID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		m, err := repo.FindByID(context.Background(), memberID)

		assert.Error(t, err)
		assert.Nil(t, m)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMemberRepository_FindByMemberNumber(t *testing.T) {
	t.Run("finds member by number", func(t *testing.T) {
		repo, mock, mockDB := newMockMemberRepository(t)
		defer mockDB.Close()

		memberID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "member_number", "name", "status", "credit_limit", "pin_failed_attempts", "version",
		}).AddRow(
			memberID, "M-0042", "Siti Rahayu", "ACTIVE", decimal.NewFromInt(1500000), 0, 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "members" WHERE member_number = \$1`).
			WithArgs("M-0042", 1).
			WillReturnRows(rows)

		m, err := repo.FindByMemberNumber(context.Background(), "M-0042")

		assert.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "M-0042", m.MemberNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
