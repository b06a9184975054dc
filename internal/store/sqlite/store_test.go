package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/store"
)

func newTestStore(t *testing.T) (*Store, *store.Notifier) {
	t.Helper()
	notifier := store.NewNotifier()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"), notifier, log)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, notifier
}

func testOutfit(id, filterKey string, page, index int) outfit.Outfit {
	return outfit.Outfit{
		ID:          id,
		FilterKey:   filterKey,
		Title:       "outfit " + id,
		Gender:      outfit.GenderFemale,
		Tags:        []string{"casual", "summer"},
		Page:        page,
		IndexInPage: index,
		UpdatedAt:   time.UnixMilli(1700000000000),
	}
}

func intPtr(v int) *int { return &v }

func TestReplacePartitionOrdersByPageAndIndex(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	key := "any||||||"

	outfits := []outfit.Outfit{
		testOutfit("b", key, 1, 1),
		testOutfit("a", key, 1, 0),
		testOutfit("c", key, 1, 2),
	}
	cursors := []outfit.Cursor{
		{ID: "a", FilterKey: key, NextPage: intPtr(2)},
		{ID: "b", FilterKey: key, NextPage: intPtr(2)},
		{ID: "c", FilterKey: key, NextPage: intPtr(2)},
	}
	require.NoError(t, s.ReplacePartition(ctx, key, outfits, cursors))

	got, err := s.PartitionOutfits(ctx, key)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
	assert.Equal(t, []string{"casual", "summer"}, got[0].Tags)
}

func TestReplacePartitionClearsOldRows(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	key := "any||||||"

	require.NoError(t, s.ReplacePartition(ctx, key,
		[]outfit.Outfit{testOutfit("old", key, 1, 0)},
		[]outfit.Cursor{{ID: "old", FilterKey: key}}))
	require.NoError(t, s.ReplacePartition(ctx, key,
		[]outfit.Outfit{testOutfit("new", key, 1, 0)},
		[]outfit.Cursor{{ID: "new", FilterKey: key}}))

	got, err := s.PartitionOutfits(ctx, key)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)

	cursor, err := s.CursorFor(ctx, key, "old")
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestSameOutfitInTwoPartitions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplacePartition(ctx, "keyA",
		[]outfit.Outfit{testOutfit("shared", "keyA", 1, 0)}, nil))
	require.NoError(t, s.ReplacePartition(ctx, "keyB",
		[]outfit.Outfit{testOutfit("shared", "keyB", 3, 7)}, nil))

	a, err := s.PartitionOutfits(ctx, "keyA")
	require.NoError(t, err)
	b, err := s.PartitionOutfits(ctx, "keyB")
	require.NoError(t, err)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, 1, a[0].Page)
	assert.Equal(t, 3, b[0].Page)
	assert.Equal(t, 7, b[0].IndexInPage)
}

func TestAppendPartitionKeepsPriorPages(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	key := "any||||||"

	require.NoError(t, s.ReplacePartition(ctx, key,
		[]outfit.Outfit{testOutfit("p1", key, 1, 0)},
		[]outfit.Cursor{{ID: "p1", FilterKey: key, NextPage: intPtr(2)}}))
	require.NoError(t, s.AppendPartition(ctx, key,
		[]outfit.Outfit{testOutfit("p2", key, 2, 0)},
		[]outfit.Cursor{{ID: "p2", FilterKey: key, PrevPage: intPtr(1)}}))

	got, err := s.PartitionOutfits(ctx, key)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)

	last, err := s.LastInPartition(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "p2", last.ID)

	cursor, err := s.CursorFor(ctx, key, "p2")
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Nil(t, cursor.NextPage)
	require.NotNil(t, cursor.PrevPage)
	assert.Equal(t, 1, *cursor.PrevPage)
}

func TestLastInPartitionEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	last, err := s.LastInPartition(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestClearPartitionCursorsKeepsRows(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	key := "any||||||"

	require.NoError(t, s.ReplacePartition(ctx, key,
		[]outfit.Outfit{testOutfit("x", key, 1, 0)},
		[]outfit.Cursor{{ID: "x", FilterKey: key, NextPage: intPtr(2)}}))
	require.NoError(t, s.ClearPartitionCursors(ctx, key))

	got, err := s.PartitionOutfits(ctx, key)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	cursor, err := s.CursorFor(ctx, key, "x")
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestSetFavoriteReconcilesAllPartitions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplacePartition(ctx, "keyA",
		[]outfit.Outfit{testOutfit("shared", "keyA", 1, 0)}, nil))
	require.NoError(t, s.ReplacePartition(ctx, "keyB",
		[]outfit.Outfit{testOutfit("shared", "keyB", 1, 0)}, nil))

	fav := outfit.FavoriteOf(testOutfit("shared", "keyA", 1, 0), time.Now())
	require.NoError(t, s.SetFavorite(ctx, fav, true))

	on, err := s.IsFavorite(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, on)

	cached, err := s.FindByIDs(ctx, []string{"shared"})
	require.NoError(t, err)
	require.Len(t, cached, 2)
	for _, o := range cached {
		assert.True(t, o.IsFavorite, "partition %s", o.FilterKey)
	}

	require.NoError(t, s.SetFavorite(ctx, fav, false))
	on, err = s.IsFavorite(ctx, "shared")
	require.NoError(t, err)
	assert.False(t, on)

	cached, err = s.FindByIDs(ctx, []string{"shared"})
	require.NoError(t, err)
	for _, o := range cached {
		assert.False(t, o.IsFavorite)
	}
}

func TestFavoritesOrderedByAddedAtDesc(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	base := time.UnixMilli(1700000000000)
	require.NoError(t, s.SetFavorite(ctx, outfit.Favorite{OutfitID: "first", Title: "f", AddedAt: base}, true))
	require.NoError(t, s.SetFavorite(ctx, outfit.Favorite{OutfitID: "second", Title: "s", AddedAt: base.Add(time.Minute)}, true))

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "second", favs[0].OutfitID)
	assert.Equal(t, "first", favs[1].OutfitID)

	ids, err := s.FavoriteIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "first")
	assert.Contains(t, ids, "second")
}

func TestReplaceFavoritesFullReconciliation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	key := "any||||||"

	kept := testOutfit("kept", key, 1, 0)
	dropped := testOutfit("dropped", key, 1, 1)
	require.NoError(t, s.ReplacePartition(ctx, key, []outfit.Outfit{kept, dropped}, nil))
	require.NoError(t, s.SetFavorite(ctx, outfit.FavoriteOf(dropped, time.Now()), true))

	require.NoError(t, s.ReplaceFavorites(ctx, []outfit.Favorite{
		outfit.FavoriteOf(kept, time.Now()),
	}))

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "kept", favs[0].OutfitID)

	cached, err := s.PartitionOutfits(ctx, key)
	require.NoError(t, err)
	for _, o := range cached {
		assert.Equal(t, o.ID == "kept", o.IsFavorite)
	}
}

func TestRecordSearchDedupesAndRefreshes(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	base := time.UnixMilli(1700000000000)
	require.NoError(t, s.RecordSearch(ctx, "denim", base))
	require.NoError(t, s.RecordSearch(ctx, "jacket", base.Add(time.Second)))
	require.NoError(t, s.RecordSearch(ctx, "denim", base.Add(2*time.Second)))

	recent, err := s.RecentSearches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "denim", recent[0].Query)
	assert.Equal(t, base.Add(2*time.Second).UnixMilli(), recent[0].CreatedAt.UnixMilli())
	assert.Equal(t, "jacket", recent[1].Query)
}

func TestRecentSearchesRespectsLimit(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	base := time.UnixMilli(1700000000000)
	queries := []string{"a", "b", "c", "d", "e"}
	for i, q := range queries {
		require.NoError(t, s.RecordSearch(ctx, q, base.Add(time.Duration(i)*time.Second)))
	}

	recent, err := s.RecentSearches(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "e", recent[0].Query)
	assert.Equal(t, "d", recent[1].Query)
	assert.Equal(t, "c", recent[2].Query)
}

func TestCommitPublishesChangeTopics(t *testing.T) {
	s, notifier := newTestStore(t)
	ctx := context.Background()
	key := "any||||||"

	partCh, cancelPart := notifier.Subscribe(store.PartitionTopic(key))
	defer cancelPart()
	favCh, cancelFav := notifier.Subscribe(store.TopicFavorites)
	defer cancelFav()

	require.NoError(t, s.ReplacePartition(ctx, key,
		[]outfit.Outfit{testOutfit("x", key, 1, 0)}, nil))
	require.Len(t, partCh, 1)
	<-partCh
	require.Len(t, favCh, 0)

	require.NoError(t, s.SetFavorite(ctx, outfit.Favorite{OutfitID: "x", Title: "x", AddedAt: time.Now()}, true))
	require.Len(t, favCh, 1)
	require.Len(t, partCh, 1, "favorite flip must signal the partitions caching the id")
}
