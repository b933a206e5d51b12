package testkit

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/pkg/database"
	"github.com/shashiranjanraj/flowershop/pkg/migration"
)

// DB opens a fresh SQLite file under t.TempDir and runs every registered
// migration on it. The test must blank-import the migrations package.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "flowershop.db"))
	require.NoError(t, err, "testkit: open sqlite")
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run(), "testkit: migrate")
	return db
}
