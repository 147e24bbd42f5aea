// Package testing provides testing utilities and helpers for the export advisor.
package testing

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/aristath/exportadvisor/internal/database"
)

// NewTestDB creates a file-backed SQLite database in a per-test temporary directory
// and applies the embedded schema registered for name.
//
// Supported schema names:
//   - "market" - applies market_schema.sql
//   - "documents" - applies documents_schema.sql
//   - "farmers" - applies farmers_schema.sql
//   - Unknown names - creates empty database (no schema applied)
//
// The database is closed automatically when the test finishes; the returned cleanup
// function may also be called early and is safe to call twice.
func NewTestDB(t *testing.T, name string) (*database.DB, func()) {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), fmt.Sprintf("test_%s.db", name)),
		Profile: database.ProfileStandard,
		Name:    name,
	})
	if err != nil {
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to migrate test database %s: %v", name, err)
	}

	closed := false
	cleanup := func() {
		if closed {
			return
		}
		closed = true
		if err := db.Close(); err != nil {
			t.Logf("Warning: Failed to close test database %s: %v", name, err)
		}
	}
	t.Cleanup(cleanup)

	return db, cleanup
}
