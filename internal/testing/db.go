// Package testing provides testing utilities and helpers for the analytics service.
package testing

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/domufi/analytics/internal/database"
)

// NewTestDB creates a file-backed SQLite database in a per-test temp directory
// and applies the schema registered for name. The database is closed when the
// test finishes.
//
// Supported schema names:
//   - "ledger" - applies ledger_schema.sql
//   - "config" - applies config_schema.sql
//   - "history" - applies history_schema.sql
//   - Unknown names - creates empty database (no schema applied)
func NewTestDB(t *testing.T, name string) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), fmt.Sprintf("test_%s.db", name)),
		Profile: database.ProfileStandard,
		Name:    name,
	})
	if err != nil {
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: Failed to close test database %s: %v", name, err)
		}
	})

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database %s: %v", name, err)
	}

	return db
}
