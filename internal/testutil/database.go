package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
)

// SetupTestDB creates a migrated SQLite database in a temporary directory.
// The seed migration loads the nine default holdings.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created and seeded
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		t.Fatalf("Failed to set pragma: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// ClearHoldings removes every seeded holding.
func ClearHoldings(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec("DELETE FROM holding"); err != nil {
		t.Fatalf("Failed to clear holdings: %v", err)
	}
}
