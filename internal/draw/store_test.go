package draw

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []Record {
	return []Record{
		{Period: "2024001", Date: "2024-01-02", Reds: [6]int{1, 5, 7, 14, 22, 33}, Blue: 8},
		{Period: "2024002", Date: "2024-01-04", Reds: [6]int{2, 3, 4, 5, 6, 7}, Blue: 16},
		{Period: "2024003", Date: "2024-01-07", Reds: [6]int{10, 11, 12, 20, 25, 30}, Blue: 1},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "draws.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveAll(testRecords()))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, testRecords(), loaded)
}

func TestStore_LoadAll_OrderedByPeriod(t *testing.T) {
	store := openTestStore(t)

	// Insert out of order; LoadAll must return oldest period first
	records := testRecords()
	require.NoError(t, store.SaveAll([]Record{records[2], records[0], records[1]}))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, "2024001", loaded[0].Period)
	assert.Equal(t, "2024003", loaded[2].Period)
}

func TestStore_SaveAll_UpsertsByPeriod(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveAll(testRecords()))

	updated := testRecords()[0]
	updated.Blue = 9
	require.NoError(t, store.SaveAll([]Record{updated}))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, 9, loaded[0].Blue)
}

func TestStore_SaveAll_RejectsInvalidRecord(t *testing.T) {
	store := openTestStore(t)

	bad := Record{Period: "2024004", Date: "2024-01-09", Reds: [6]int{1, 2, 3, 4, 5, 40}, Blue: 8}
	err := store.SaveAll([]Record{bad})
	assert.ErrorIs(t, err, ErrDataFormat)
}

func TestStore_LatestPeriod(t *testing.T) {
	store := openTestStore(t)

	latest, err := store.LatestPeriod()
	require.NoError(t, err)
	assert.Equal(t, "", latest, "empty archive has no latest period")

	require.NoError(t, store.SaveAll(testRecords()))

	latest, err = store.LatestPeriod()
	require.NoError(t, err)
	assert.Equal(t, "2024003", latest)
}

func TestStore_LoadAll_EmptyArchive(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadAll()
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestCache_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.msgpack")

	require.NoError(t, SaveCache(path, testRecords()))

	loaded, err := LoadCache(path)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), loaded)
}

func TestCache_LoadSortsByPeriod(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.msgpack")

	// A cache written by an older tool may not be ordered.
	records := testRecords()
	require.NoError(t, SaveCache(path, []Record{records[2], records[0], records[1]}))

	loaded, err := LoadCache(path)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), loaded)
}

func TestCache_EmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.msgpack")
	assert.ErrorIs(t, SaveCache(path, nil), ErrEmptyDataset)
}
