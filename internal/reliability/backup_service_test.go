package reliability

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domufi/analytics/internal/database"
	"github.com/domufi/analytics/internal/events"
	testingpkg "github.com/domufi/analytics/internal/testing"
)

// memoryStore is an in-memory ObjectStore
type memoryStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (m *memoryStore) Upload(ctx context.Context, key string, body io.Reader) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]ObjectInfo, 0)
	for k, v := range m.objects {
		if strings.HasPrefix(k, prefix) {
			result = append(result, ObjectInfo{Key: k, SizeBytes: int64(len(v))})
		}
	}
	return result, nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func archiveEntries(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	gz, err := gzip.NewReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	entries := make(map[string][]byte)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(tr)
		require.NoError(t, err)
		entries[header.Name] = content
	}
	return entries
}

func TestBackupService_CreateAndUploadBackup(t *testing.T) {
	ledgerDB := testingpkg.NewTestDB(t, database.NameLedger)
	configDB := testingpkg.NewTestDB(t, database.NameConfig)
	store := newMemoryStore()

	bus := events.NewBus(zerolog.Nop())
	var completed *events.Event
	bus.Subscribe(events.BackupCompleted, func(e *events.Event) { completed = e })

	svc := NewBackupService(store, []*database.DB{ledgerDB, configDB}, t.TempDir(), "nightly/",
		events.NewManager(bus, zerolog.Nop()), zerolog.Nop())
	svc.now = func() time.Time { return testingpkg.FixtureNow }

	key, err := svc.CreateAndUploadBackup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nightly/domufi-backup-2026-10-16-100000.tar.gz", key)
	require.NotNil(t, completed)

	entries := archiveEntries(t, store.objects[key])
	assert.Contains(t, entries, "ledger.db")
	assert.Contains(t, entries, "config.db")
	require.Contains(t, entries, metadataFile)

	var metadata BackupMetadata
	require.NoError(t, json.Unmarshal(entries[metadataFile], &metadata))
	require.Len(t, metadata.Databases, 2)
	assert.Equal(t, "ledger", metadata.Databases[0].Name)
	assert.True(t, strings.HasPrefix(metadata.Databases[0].Checksum, "sha256:"))
	assert.Equal(t, int64(len(entries["ledger.db"])), metadata.Databases[0].SizeBytes)
}

func TestBackupService_UploadError(t *testing.T) {
	store := newMemoryStore()
	store.uploadErr = errors.New("bucket not found")
	db := testingpkg.NewTestDB(t, database.NameHistory)

	svc := NewBackupService(store, []*database.DB{db}, t.TempDir(), "", nil, zerolog.Nop())
	_, err := svc.CreateAndUploadBackup(context.Background())
	assert.ErrorContains(t, err, "bucket not found")
}

func TestBackupService_ListAndRotate(t *testing.T) {
	store := newMemoryStore()
	svc := NewBackupService(store, nil, t.TempDir(), "p/", nil, zerolog.Nop())
	svc.now = func() time.Time { return testingpkg.FixtureNow }

	for _, daysAgo := range []int{0, 1, 2, 40, 50} {
		ts := testingpkg.FixtureNow.AddDate(0, 0, -daysAgo).UTC().Format(archiveTimestamp)
		store.objects["p/"+archivePrefix+ts+archiveSuffix] = []byte("x")
	}
	store.objects["p/"+archivePrefix+"garbage"+archiveSuffix] = []byte("x")
	store.objects["p/notes.txt"] = []byte("x")

	backups, err := svc.ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, backups, 5)
	assert.True(t, backups[0].Timestamp.After(backups[1].Timestamp), "newest first")
	assert.Equal(t, int64(48), backups[2].AgeHours)

	deleted, err := svc.RotateOldBackups(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := svc.ListBackups(context.Background())
	require.NoError(t, err)
	assert.Len(t, remaining, MinBackupsToKeep)
}

func TestBackupService_RotateKeepsMinimum(t *testing.T) {
	store := newMemoryStore()
	svc := NewBackupService(store, nil, t.TempDir(), "", nil, zerolog.Nop())
	svc.now = func() time.Time { return testingpkg.FixtureNow }

	for _, daysAgo := range []int{100, 200, 300} {
		ts := testingpkg.FixtureNow.AddDate(0, 0, -daysAgo).UTC().Format(archiveTimestamp)
		store.objects[archivePrefix+ts+archiveSuffix] = []byte("x")
	}

	deleted, err := svc.RotateOldBackups(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.Len(t, store.keys(), 3)

	deleted, err = svc.RotateOldBackups(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}
