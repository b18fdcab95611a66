package sqlite_test

import (
	"context"
	"testing"

	"github.com/linktag/linktag"
	"github.com/linktag/linktag/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure RecordStore implements linktag.RecordStore at compile time.
var _ linktag.RecordStore = (*sqlite.RecordStore)(nil)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordStore_SaveLoad(t *testing.T) {
	t.Parallel()

	store := sqlite.NewRecordStore(mustOpenDB(t))
	ctx := context.Background()

	records := []*linktag.Record{
		{URL: "http://a.test/1", Title: "One", Body: "first", Hashtags: "#one"},
		{URL: "http://a.test/2", Title: "Two", Body: "second"},
		{URL: "http://a.test/3"},
	}

	assert.False(t, store.Exists())
	require.NoError(t, store.Save(ctx, records))
	assert.True(t, store.Exists())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i := range records {
		assert.Equal(t, records[i], loaded[i])
	}
}

func TestRecordStore_SaveOverwrites(t *testing.T) {
	t.Parallel()

	store := sqlite.NewRecordStore(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []*linktag.Record{
		{URL: "http://a.test/old", Title: "Old"},
		{URL: "http://a.test/older", Title: "Older"},
	}))
	require.NoError(t, store.Save(ctx, []*linktag.Record{
		{URL: "http://a.test/new", Title: "New"},
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "http://a.test/new", loaded[0].URL)
}

func TestRecordStore_LoadPreservesOrder(t *testing.T) {
	t.Parallel()

	store := sqlite.NewRecordStore(mustOpenDB(t))
	ctx := context.Background()

	var records []*linktag.Record
	urls := []string{"http://z.test", "http://a.test", "http://m.test"}
	for _, u := range urls {
		records = append(records, &linktag.Record{URL: u, Title: "t"})
	}
	require.NoError(t, store.Save(ctx, records))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	for i, u := range urls {
		assert.Equal(t, u, loaded[i].URL)
	}
}

func TestRecordStore_LoadEmpty(t *testing.T) {
	t.Parallel()

	store := sqlite.NewRecordStore(mustOpenDB(t))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, linktag.ENOTFOUND, linktag.ErrorCode(err))
}

func TestRecordStore_SaveRejectsInvalidRecord(t *testing.T) {
	t.Parallel()

	store := sqlite.NewRecordStore(mustOpenDB(t))

	err := store.Save(context.Background(), []*linktag.Record{{Title: "no url"}})
	require.Error(t, err)
	assert.Equal(t, linktag.EINVALID, linktag.ErrorCode(err))
	assert.False(t, store.Exists())
}
