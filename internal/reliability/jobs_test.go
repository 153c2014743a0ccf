package reliability

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domufi/analytics/internal/database"
	testingpkg "github.com/domufi/analytics/internal/testing"
)

func TestJobNames(t *testing.T) {
	assert.Equal(t, "backup", NewBackupJob(nil, 0, zerolog.Nop()).Name())
	assert.Equal(t, "maintenance", NewMaintenanceJob(nil, "", zerolog.Nop()).Name())
}

func TestBackupJob_Run(t *testing.T) {
	store := newMemoryStore()
	db := testingpkg.NewTestDB(t, database.NameLedger)
	svc := NewBackupService(store, []*database.DB{db}, t.TempDir(), "", nil, zerolog.Nop())

	require.NoError(t, NewBackupJob(svc, DefaultRetentionDays, zerolog.Nop()).Run())
	assert.Len(t, store.keys(), 1)
}

func TestMaintenanceJob_Run(t *testing.T) {
	dbs := []*database.DB{
		testingpkg.NewTestDB(t, database.NameLedger),
		testingpkg.NewTestDB(t, database.NameHistory),
	}

	job := NewMaintenanceJob(dbs, t.TempDir(), zerolog.Nop())
	assert.NoError(t, job.Run())
}

func TestMaintenanceJob_NoDatabases(t *testing.T) {
	job := NewMaintenanceJob(nil, t.TempDir(), zerolog.Nop())
	assert.NoError(t, job.Run())
}
