package cache_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odariane19-ui/permiscard/internal/permit/cache"
	"github.com/odariane19-ui/permiscard/internal/permit/record"
)

func testRecord(id string) *record.Record {
	return &record.Record{
		ID:             id,
		HolderName:     "Jordan Reyes",
		SerialNumber:   "SN-4471",
		Zone:           "harbor-east",
		Type:           "commercial",
		ExpirationDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func runStoreTests(t *testing.T, store cache.Store) {
	t.Helper()

	ctx := context.Background()

	// missing record before any write
	_, err := store.FetchRecord(ctx, "R-missing")
	require.ErrorIs(t, err, record.ErrNotFound)

	rec := testRecord("R-1")
	require.NoError(t, store.Put(ctx, rec))

	got, err := store.FetchRecord(ctx, "R-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.HolderName, got.HolderName)
	assert.Equal(t, rec.Zone, got.Zone)
	assert.True(t, rec.ExpirationDate.Equal(got.ExpirationDate))

	// mutating the original must not leak into the cached copy
	rec.HolderName = "changed"
	got, err = store.FetchRecord(ctx, "R-1")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes", got.HolderName)

	// overwrite replaces the snapshot
	updated := testRecord("R-1")
	updated.Zone = "harbor-west"
	require.NoError(t, store.Put(ctx, updated))

	got, err = store.FetchRecord(ctx, "R-1")
	require.NoError(t, err)
	assert.Equal(t, "harbor-west", got.Zone)

	require.NoError(t, store.Put(ctx, testRecord("R-2")))
	require.NoError(t, store.Clear(ctx))

	_, err = store.FetchRecord(ctx, "R-1")
	require.ErrorIs(t, err, record.ErrNotFound)
	_, err = store.FetchRecord(ctx, "R-2")
	require.ErrorIs(t, err, record.ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, cache.NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	store, err := cache.NewSQLite(filepath.Join(t.TempDir(), "device-cache.db"))
	require.NoError(t, err)

	runStoreTests(t, store)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "device-cache.db")

	store, err := cache.NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, testRecord("R-persist")))

	reopened, err := cache.NewSQLite(path)
	require.NoError(t, err)

	got, err := reopened.FetchRecord(ctx, "R-persist")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes", got.HolderName)
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	_, err := cache.NewSQLite("")
	require.Error(t, err)
}

func TestPutRejectsEmptyID(t *testing.T) {
	err := cache.NewMemory().Put(context.Background(), &record.Record{})
	require.Error(t, err)
}
