package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/remote"
	"dresscode/internal/server/api"
	"dresscode/internal/server/catalog"
	"dresscode/internal/server/sessions"
)

// startServer runs the full huma/chi stack and hands back the catalog client
// pointed at it, exercising both sides of the wire contract at once.
func startServer(t *testing.T) *remote.Client {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := api.New(catalog.NewService(log), sessions.NewRegistry(log), log)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return remote.NewClient(srv.URL, log)
}

func login(t *testing.T, client *remote.Client, username string) string {
	t.Helper()
	// the client type has no login call; sessions are opened out of band
	body, err := json.Marshal(map[string]string{"username": username, "password": "secret"})
	require.NoError(t, err)

	resp, err := http.Post(baseURLOf(t, client)+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token  string `json:"token"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "Ok", out.Status)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func baseURLOf(t *testing.T, client *remote.Client) string {
	t.Helper()
	return client.BaseURL()
}

func TestFetchPageAgainstLiveServer(t *testing.T) {
	client := startServer(t)

	page, err := client.FetchPage(context.Background(), "", outfit.Filters{}, 1, 5)
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	require.NotNil(t, page.Total)
	assert.Equal(t, 12, *page.Total)
	require.NotNil(t, page.PageSize)
	assert.Equal(t, 5, *page.PageSize)
}

func TestFetchPageGenderFilter(t *testing.T) {
	client := startServer(t)

	page, err := client.FetchPage(context.Background(), "", outfit.Filters{Gender: outfit.GenderMale}, 1, 50)
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	for _, item := range page.Items {
		require.NotNil(t, item.Gender)
		assert.NotEqual(t, "FEMALE", *item.Gender)
	}
}

func TestFetchDetailNotFound(t *testing.T) {
	client := startServer(t)

	_, err := client.FetchDetail(context.Background(), "no-such-outfit")
	assert.ErrorIs(t, err, outfit.ErrNotFound)
}

func TestFavoritesRoundTrip(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()
	token := login(t, client, "alice")

	require.NoError(t, client.AddFavorite(ctx, "cat-001", token))
	require.NoError(t, client.AddFavorite(ctx, "cat-003", token))

	favs, err := client.ListFavorites(ctx, token)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	for _, dto := range favs {
		require.NotNil(t, dto.IsFavorite)
		assert.True(t, *dto.IsFavorite)
	}

	require.NoError(t, client.RemoveFavorite(ctx, "cat-001", token))
	favs, err = client.ListFavorites(ctx, token)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "cat-003", favs[0].ID)
}

func TestFavoritesRequireAuth(t *testing.T) {
	client := startServer(t)

	err := client.AddFavorite(context.Background(), "cat-001", "")
	var httpErr *outfit.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "Unauthorized", httpErr.Message)
}

func TestUploadAndDeleteRoundTrip(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()
	token := login(t, client, "alice")

	dto, err := client.Upload(ctx, []byte("fake image bytes"), "street-look.jpg", "image/jpeg", token)
	require.NoError(t, err)
	assert.True(t, dto.UserUploadInferred())

	fetched, err := client.FetchDetail(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "street-look", fetched.Title)

	// another user cannot delete it
	other := login(t, client, "bob")
	err = client.Delete(ctx, dto.ID, other)
	assert.ErrorIs(t, err, outfit.ErrNotFound)

	require.NoError(t, client.Delete(ctx, dto.ID, token))
	_, err = client.FetchDetail(ctx, dto.ID)
	assert.ErrorIs(t, err, outfit.ErrNotFound)
}
