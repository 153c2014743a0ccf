package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, name string, profile DatabaseProfile) *DB {
	t.Helper()
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "data", name+".db"),
		Profile: profile,
		Name:    name,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *DB, table string) bool {
	t.Helper()
	var name string
	err := db.Conn().QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestBuildConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		profile  DatabaseProfile
		contains []string
	}{
		{
			name:     "ledger",
			path:     "/data/ledger.db",
			profile:  ProfileLedger,
			contains: []string{"/data/ledger.db?_pragma=journal_mode(WAL)", "synchronous(FULL)", "auto_vacuum(NONE)"},
		},
		{
			name:     "standard",
			path:     "/data/config.db",
			profile:  ProfileStandard,
			contains: []string{"synchronous(NORMAL)", "auto_vacuum(INCREMENTAL)", "temp_store(MEMORY)"},
		},
		{
			name:     "uri with query",
			path:     "file:test?mode=memory",
			profile:  ProfileStandard,
			contains: []string{"file:test?mode=memory&_pragma=journal_mode(WAL)", "synchronous(NORMAL)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connStr := buildConnectionString(tt.path, tt.profile)
			for _, s := range tt.contains {
				assert.Contains(t, connStr, s)
			}
			assert.Contains(t, connStr, "foreign_keys(1)")
		})
	}
}

func TestNew_CreatesDirectoryAndDefaultsProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "x.db")

	db, err := New(Config{Path: path, Name: "x"})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, ProfileStandard, db.Profile())
	assert.Equal(t, "x", db.Name())
	assert.Equal(t, path, db.Path())
	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestMigrate(t *testing.T) {
	tests := []struct {
		name   string
		tables []string
	}{
		{NameLedger, []string{"investments", "transactions", "ledger_version"}},
		{NameConfig, []string{"goal_targets"}},
		{NameHistory, []string{"portfolio_snapshots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t, tt.name, ProfileStandard)

			require.NoError(t, db.Migrate())
			require.NoError(t, db.Migrate(), "migrations are idempotent")

			for _, table := range tt.tables {
				assert.True(t, tableExists(t, db, table), table)
			}
		})
	}
}

func TestMigrate_UnknownNameIsNoop(t *testing.T) {
	db := newTestDB(t, "scratch", ProfileStandard)

	require.NoError(t, db.Migrate())
	assert.False(t, tableExists(t, db, "investments"))
}

func TestMigrate_LedgerVersionSeeded(t *testing.T) {
	db := newTestDB(t, NameLedger, ProfileLedger)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())

	var count, version int
	require.NoError(t, db.Conn().QueryRow("SELECT COUNT(*), MAX(version) FROM ledger_version").Scan(&count, &version))
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, version)
}

func TestWithTransaction(t *testing.T) {
	db := newTestDB(t, NameConfig, ProfileStandard)
	require.NoError(t, db.Migrate())

	insert := func(tx *sql.Tx, id string) error {
		_, err := tx.Exec("INSERT INTO goal_targets (goal_id, target, updated_at) VALUES (?, 1, 0)", id)
		return err
	}
	count := func() int {
		var n int
		require.NoError(t, db.Conn().QueryRow("SELECT COUNT(*) FROM goal_targets").Scan(&n))
		return n
	}

	t.Run("commit", func(t *testing.T) {
		err := WithTransaction(db.Conn(), func(tx *sql.Tx) error { return insert(tx, "a") })
		require.NoError(t, err)
		assert.Equal(t, 1, count())
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
			require.NoError(t, insert(tx, "b"))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, count())
	})

	t.Run("rollback on panic", func(t *testing.T) {
		err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
			require.NoError(t, insert(tx, "c"))
			panic("kaboom")
		})
		assert.ErrorContains(t, err, "panic in transaction")
		assert.Equal(t, 1, count())
	})

	t.Run("nil db", func(t *testing.T) {
		assert.Error(t, WithTransaction(nil, func(*sql.Tx) error { return nil }))
	})
}

func TestHealthChecksAndStats(t *testing.T) {
	db := newTestDB(t, NameLedger, ProfileLedger)
	require.NoError(t, db.Migrate())
	ctx := context.Background()

	assert.NoError(t, db.QuickCheck(ctx))
	assert.NoError(t, db.HealthCheck(ctx))
	assert.NoError(t, db.WALCheckpoint(ctx, ""))
	assert.NoError(t, db.WALCheckpoint(ctx, "passive"))
	assert.Error(t, db.WALCheckpoint(ctx, "DROP TABLE"))

	stats, err := db.GetStats(ctx)
	require.NoError(t, err)
	assert.Greater(t, stats.PageCount, int64(0))
	assert.Greater(t, stats.PageSize, int64(0))
}

func TestBackupTo(t *testing.T) {
	db := newTestDB(t, NameLedger, ProfileLedger)
	require.NoError(t, db.Migrate())
	_, err := db.Conn().Exec(`INSERT INTO transactions (id, type, amount, date, created_at) VALUES ('t1', 'deposit', 100, 0, 0)`)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "backups", "ledger.db")
	require.NoError(t, db.BackupTo(context.Background(), dest))

	copyDB, err := New(Config{Path: dest, Name: "copy"})
	require.NoError(t, err)
	defer copyDB.Close()

	var amount float64
	require.NoError(t, copyDB.Conn().QueryRow("SELECT amount FROM transactions WHERE id = 't1'").Scan(&amount))
	assert.Equal(t, 100.0, amount)

	assert.Error(t, db.BackupTo(context.Background(), dest), "existing destination is rejected")
}
