package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/iliyamo/movie-tracker/internal/database"
)

// bcryptCost is deliberately low: tests only need the hashes to verify,
// not to resist offline attack.
const bcryptCost = 4

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "movies.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}
