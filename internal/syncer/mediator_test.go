package syncer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/remote"
	"dresscode/internal/store"
	"dresscode/internal/store/sqlite"
)

// MockSource is a testify mock of the remote catalog source.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) FetchPage(ctx context.Context, query string, filters outfit.Filters, page, pageSize int) (*remote.PagedResponseDTO, error) {
	args := m.Called(ctx, query, filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.PagedResponseDTO), args.Error(1)
}

func (m *MockSource) FetchDetail(ctx context.Context, id string) (*remote.OutfitDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.OutfitDTO), args.Error(1)
}

func (m *MockSource) ListFavorites(ctx context.Context, token string) ([]remote.OutfitDTO, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]remote.OutfitDTO), args.Error(1)
}

func (m *MockSource) AddFavorite(ctx context.Context, id, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *MockSource) RemoveFavorite(ctx context.Context, id, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *MockSource) Upload(ctx context.Context, data []byte, filename, mimeType, token string) (*remote.OutfitDTO, error) {
	args := m.Called(ctx, data, filename, mimeType, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.OutfitDTO), args.Error(1)
}

func (m *MockSource) Delete(ctx context.Context, id, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCache(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "cache.db"), store.NewNotifier(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func noFavorites(context.Context) (map[string]struct{}, error) {
	return nil, nil
}

func pageDTO(pageSize int, ids ...string) *remote.PagedResponseDTO {
	items := make([]remote.OutfitDTO, len(ids))
	for i, id := range ids {
		items[i] = remote.OutfitDTO{ID: id, Title: "outfit " + id}
	}
	return &remote.PagedResponseDTO{Items: items, PageSize: &pageSize}
}

const testKey = "any||||||"

func TestRefreshReplacesPartition(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	src := new(MockSource)
	src.On("FetchPage", mock.Anything, "", outfit.Filters{}, 1, 2).
		Return(pageDTO(2, "a", "b"), nil)

	m := New(testKey, "", outfit.Filters{}, 2, src, cache, noFavorites, testLogger())
	res, err := m.Load(ctx, LoadRefresh)
	require.NoError(t, err)
	assert.False(t, res.EndOfPagination)

	got, err := cache.PartitionOutfits(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Page)
	assert.Equal(t, 0, got[0].IndexInPage)
	assert.Equal(t, 1, got[1].IndexInPage)

	cursor, err := cache.CursorFor(ctx, testKey, "b")
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Nil(t, cursor.PrevPage)
	require.NotNil(t, cursor.NextPage)
	assert.Equal(t, 2, *cursor.NextPage)
	src.AssertExpectations(t)
}

func TestRefreshShortPageEndsPagination(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	src := new(MockSource)
	src.On("FetchPage", mock.Anything, "", outfit.Filters{}, 1, 20).
		Return(pageDTO(20, "only"), nil)

	m := New(testKey, "", outfit.Filters{}, 20, src, cache, noFavorites, testLogger())
	res, err := m.Load(ctx, LoadRefresh)
	require.NoError(t, err)
	assert.True(t, res.EndOfPagination)

	cursor, err := cache.CursorFor(ctx, testKey, "only")
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Nil(t, cursor.NextPage)
}

func TestRefreshNetworkFailureSeedsFallback(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	src := new(MockSource)
	src.On("FetchPage", mock.Anything, "", outfit.Filters{}, 1, 20).
		Return(nil, &outfit.NetworkError{Err: errors.New("connection refused")})

	favorites := func(context.Context) (map[string]struct{}, error) {
		return map[string]struct{}{"look-2": {}}, nil
	}

	m := New(testKey, "", outfit.Filters{}, 20, src, cache, favorites, testLogger())
	res, err := m.Load(ctx, LoadRefresh)
	require.NoError(t, err)
	assert.True(t, res.EndOfPagination)

	got, err := cache.PartitionOutfits(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, got, FallbackCount)
	for _, o := range got {
		cursor, err := cache.CursorFor(ctx, testKey, o.ID)
		require.NoError(t, err)
		require.NotNil(t, cursor)
		assert.Nil(t, cursor.NextPage, "fallback cursors are terminal")
		assert.Nil(t, cursor.PrevPage)
	}
	assert.True(t, got[1].IsFavorite, "favorite flag resolved from local set")
	assert.False(t, got[0].IsFavorite)
}

func TestRefreshNotFoundSeedsFallback(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	src := new(MockSource)
	src.On("FetchPage", mock.Anything, "", outfit.Filters{}, 1, 20).
		Return(nil, &outfit.HTTPError{Status: 404})

	m := New(testKey, "", outfit.Filters{}, 20, src, cache, noFavorites, testLogger())
	res, err := m.Load(ctx, LoadRefresh)
	require.NoError(t, err)
	assert.True(t, res.EndOfPagination)

	got, err := cache.PartitionOutfits(ctx, testKey)
	require.NoError(t, err)
	assert.Len(t, got, FallbackCount)
}

func TestRefreshServerErrorPropagatesWithoutMutation(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	require.NoError(t, cache.ReplacePartition(ctx, testKey, []outfit.Outfit{
		{ID: "stale", FilterKey: testKey, Title: "stale", Tags: []string{}, Page: 1},
	}, nil))

	src := new(MockSource)
	src.On("FetchPage", mock.Anything, "", outfit.Filters{}, 1, 20).
		Return(nil, &outfit.HTTPError{Status: 500})

	m := New(testKey, "", outfit.Filters{}, 20, src, cache, noFavorites, testLogger())
	_, err := m.Load(ctx, LoadRefresh)
	require.Error(t, err)

	var httpErr *outfit.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.Status)

	got, err := cache.PartitionOutfits(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "stale", got[0].ID)
}

func TestAppendEmptyPartitionExhaustsWithoutNetwork(t *testing.T) {
	cache := newTestCache(t)
	src := new(MockSource) // no expectations: any call fails the test

	m := New(testKey, "", outfit.Filters{}, 20, src, cache, noFavorites, testLogger())
	res, err := m.Load(context.Background(), LoadAppend)
	require.NoError(t, err)
	assert.True(t, res.EndOfPagination)
	src.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAppendTerminalCursorExhaustsWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	require.NoError(t, cache.ReplacePartition(ctx, testKey,
		[]outfit.Outfit{{ID: "last", FilterKey: testKey, Title: "last", Tags: []string{}, Page: 1}},
		[]outfit.Cursor{{ID: "last", FilterKey: testKey}})) // next == nil

	src := new(MockSource)
	m := New(testKey, "", outfit.Filters{}, 20, src, cache, noFavorites, testLogger())
	res, err := m.Load(ctx, LoadAppend)
	require.NoError(t, err)
	assert.True(t, res.EndOfPagination)
	src.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAppendFetchesNextPageAndKeepsPriorPages(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	next := 2
	require.NoError(t, cache.ReplacePartition(ctx, testKey,
		[]outfit.Outfit{{ID: "p1", FilterKey: testKey, Title: "p1", Tags: []string{}, Page: 1}},
		[]outfit.Cursor{{ID: "p1", FilterKey: testKey, NextPage: &next}}))

	src := new(MockSource)
	src.On("FetchPage", mock.Anything, "", outfit.Filters{}, 2, 1).
		Return(pageDTO(1, "p2"), nil)

	m := New(testKey, "", outfit.Filters{}, 1, src, cache, noFavorites, testLogger())
	res, err := m.Load(ctx, LoadAppend)
	require.NoError(t, err)
	assert.False(t, res.EndOfPagination)

	got, err := cache.PartitionOutfits(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)

	cursor, err := cache.CursorFor(ctx, testKey, "p2")
	require.NoError(t, err)
	require.NotNil(t, cursor)
	require.NotNil(t, cursor.PrevPage)
	assert.Equal(t, 1, *cursor.PrevPage)
	require.NotNil(t, cursor.NextPage)
	assert.Equal(t, 3, *cursor.NextPage)
}

func TestAppendNetworkFailureNeverFallsBack(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	next := 2
	require.NoError(t, cache.ReplacePartition(ctx, testKey,
		[]outfit.Outfit{{ID: "p1", FilterKey: testKey, Title: "p1", Tags: []string{}, Page: 1}},
		[]outfit.Cursor{{ID: "p1", FilterKey: testKey, NextPage: &next}}))

	src := new(MockSource)
	src.On("FetchPage", mock.Anything, "", outfit.Filters{}, 2, 20).
		Return(nil, &outfit.NetworkError{Err: errors.New("timeout")})

	m := New(testKey, "", outfit.Filters{}, 20, src, cache, noFavorites, testLogger())
	_, err := m.Load(ctx, LoadAppend)
	require.Error(t, err)

	got, err := cache.PartitionOutfits(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestPrependAlwaysExhausted(t *testing.T) {
	cache := newTestCache(t)
	src := new(MockSource)

	m := New(testKey, "", outfit.Filters{}, 20, src, cache, noFavorites, testLogger())
	res, err := m.Load(context.Background(), LoadPrepend)
	require.NoError(t, err)
	assert.True(t, res.EndOfPagination)
	src.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelledRefreshDoesNotSeedFallback(t *testing.T) {
	cache := newTestCache(t)
	cancelled, cancel := context.WithCancel(context.Background())

	src := new(MockSource)
	src.On("FetchPage", mock.Anything, "", outfit.Filters{}, 1, 20).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, &outfit.NetworkError{Err: context.Canceled})

	m := New(testKey, "", outfit.Filters{}, 20, src, cache, noFavorites, testLogger())
	_, err := m.Load(cancelled, LoadRefresh)
	require.ErrorIs(t, err, context.Canceled)

	got, err := cache.PartitionOutfits(context.Background(), testKey)
	require.NoError(t, err)
	assert.Empty(t, got, "cancellation must not substitute the fallback dataset")
}

func TestFavoriteFlagResolvedFromLookupOrServer(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	serverFav := true
	resp := &remote.PagedResponseDTO{Items: []remote.OutfitDTO{
		{ID: "local-fav", Title: "local"},
		{ID: "server-fav", Title: "server", IsFavorite: &serverFav},
		{ID: "plain", Title: "plain"},
	}}
	src := new(MockSource)
	src.On("FetchPage", mock.Anything, "", outfit.Filters{}, 1, 3).Return(resp, nil)

	favorites := func(context.Context) (map[string]struct{}, error) {
		return map[string]struct{}{"local-fav": {}}, nil
	}

	m := New(testKey, "", outfit.Filters{}, 3, src, cache, favorites, testLogger())
	_, err := m.Load(ctx, LoadRefresh)
	require.NoError(t, err)

	got, err := cache.PartitionOutfits(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, got, 3)
	byID := map[string]outfit.Outfit{}
	for _, o := range got {
		byID[o.ID] = o
	}
	assert.True(t, byID["local-fav"].IsFavorite)
	assert.True(t, byID["server-fav"].IsFavorite)
	assert.False(t, byID["plain"].IsFavorite)
}
