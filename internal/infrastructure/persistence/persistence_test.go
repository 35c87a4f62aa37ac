package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory SQLite database with the full schema,
// shared by the repository integration tests in this package.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db.DB))

	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}
