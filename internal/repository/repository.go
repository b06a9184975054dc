package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/remote"
	"dresscode/internal/session"
	"dresscode/internal/store"
	"dresscode/internal/store/sqlite"
)

// Repository is the only surface the rest of the application talks to. Reads
// come from the local cache; network results enter the cache exclusively
// through sync-mediator transactions or the mutation paths below. Mutations
// are pessimistic: the remote call happens first, and local state changes
// only after the server confirmed, so a remote failure never leaves the cache
// diverged.
type Repository struct {
	store   *sqlite.Store
	source  remote.Source
	session session.Provider
	log     *slog.Logger
	now     func() time.Time
}

func New(cache *sqlite.Store, source remote.Source, sess session.Provider, log *slog.Logger) *Repository {
	return &Repository{
		store:   cache,
		source:  source,
		session: sess,
		log:     log,
		now:     time.Now,
	}
}

// Favorites reads the current favorite previews, most recently added first.
func (r *Repository) Favorites(ctx context.Context) ([]outfit.Preview, error) {
	favs, err := r.store.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]outfit.Preview, 0, len(favs))
	for _, f := range favs {
		out = append(out, outfit.PreviewOfFavorite(f))
	}
	return out, nil
}

// ObserveFavorites streams favorite snapshots: one immediately, then one
// after every commit that touched the favorites table, skipping snapshots
// identical to the previous emission. The stream never completes on its own;
// stop it via the returned cancel function or the context.
func (r *Repository) ObserveFavorites(ctx context.Context) (<-chan []outfit.Preview, func()) {
	updates, unsubscribe := r.store.Notifier().Subscribe(store.TopicFavorites)
	out := make(chan []outfit.Preview, 1)

	obsCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer unsubscribe()
		var last []outfit.Preview
		emitted := false

		emit := func() {
			favs, err := r.Favorites(obsCtx)
			if err != nil {
				if obsCtx.Err() == nil {
					r.log.Error("read favorites for observer", "error", err)
				}
				return
			}
			if emitted && samePreviews(last, favs) {
				return
			}
			select {
			case out <- favs:
			case <-obsCtx.Done():
				return
			}
			last, emitted = favs, true
		}

		emit()
		for {
			select {
			case <-obsCtx.Done():
				return
			case <-updates:
				emit()
			}
		}
	}()
	return out, cancel
}

func samePreviews(a, b []outfit.Preview) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].IsFavorite != b[i].IsFavorite {
			return false
		}
	}
	return true
}

// RecentSearches returns up to limit distinct past queries, newest first.
func (r *Repository) RecentSearches(ctx context.Context, limit int) ([]string, error) {
	entries, err := r.store.RecentSearches(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Query)
	}
	return out, nil
}

// RecordSearch refreshes a query's place in the search history. Blank
// queries are ignored; re-searching deletes and reinserts so recency moves.
func (r *Repository) RecordSearch(ctx context.Context, query string) error {
	normalized := strings.TrimSpace(query)
	if normalized == "" {
		return nil
	}
	return r.store.RecordSearch(ctx, normalized, r.now())
}

// ToggleFavorite flips an outfit's favorite state. The remote call goes
// first; only its success mutates the favorites table and every cached row
// sharing the id. Returns the new state.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	state, err := r.session.State(ctx)
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	if !state.IsAuthenticated() {
		return false, outfit.ErrUnauthenticated
	}

	current, err := r.store.IsFavorite(ctx, id)
	if err != nil {
		return false, err
	}
	target := !current

	if target {
		err = r.source.AddFavorite(ctx, id, state.Token)
	} else {
		err = r.source.RemoveFavorite(ctx, id, state.Token)
	}
	if err != nil {
		return false, r.mapAuthError(ctx, err)
	}

	fav := r.favoriteSnapshot(ctx, id)
	if err := r.store.SetFavorite(ctx, fav, target); err != nil {
		return false, err
	}
	return target, nil
}

// favoriteSnapshot builds the favorites-table row for id from the cache,
// falling back to a remote detail fetch, and finally to a bare record.
func (r *Repository) favoriteSnapshot(ctx context.Context, id string) outfit.Favorite {
	cached, err := r.store.FindByIDs(ctx, []string{id})
	if err == nil && len(cached) > 0 {
		return outfit.FavoriteOf(cached[0], r.now())
	}
	if dto, err := r.source.FetchDetail(ctx, id); err == nil {
		return dto.ToFavorite(r.now())
	}
	return outfit.Favorite{OutfitID: id, AddedAt: r.now()}
}

// RefreshFavoritesFromRemote replaces the whole local favorite set with the
// server's list and reconciles the flag on every cached row. Full
// replacement, not a delta sync.
func (r *Repository) RefreshFavoritesFromRemote(ctx context.Context) error {
	state, err := r.session.State(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !state.IsAuthenticated() {
		return outfit.ErrUnauthenticated
	}

	dtos, err := r.source.ListFavorites(ctx, state.Token)
	if err != nil {
		return r.mapAuthError(ctx, err)
	}

	at := r.now()
	favs := make([]outfit.Favorite, 0, len(dtos))
	for _, dto := range dtos {
		favs = append(favs, dto.ToFavorite(at))
	}
	return r.store.ReplaceFavorites(ctx, favs)
}

// FetchOutfitDetail loads the full view of one outfit, merging in the cached
// image as a fallback when the remote reports no images at all.
func (r *Repository) FetchOutfitDetail(ctx context.Context, id string) (*outfit.Detail, error) {
	dto, err := r.source.FetchDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := dto.ToDetail()
	if len(detail.Images) == 0 {
		if cached, err := r.store.FindByIDs(ctx, []string{id}); err == nil {
			for _, o := range cached {
				if o.ImageURL != "" {
					detail.Images = []string{o.ImageURL}
					break
				}
			}
		}
	}
	return &detail, nil
}

// UploadOutfit submits a user image to the catalog. On success the default
// partition's cursors are invalidated so the next append re-fetches from the
// server instead of trusting a stale continuation token.
func (r *Repository) UploadOutfit(ctx context.Context, data []byte, filename, mimeType string) (*outfit.Preview, error) {
	state, err := r.session.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !state.IsAuthenticated() {
		return nil, outfit.ErrUnauthenticated
	}

	dto, err := r.source.Upload(ctx, data, filename, mimeType, state.Token)
	if err != nil {
		return nil, r.mapAuthError(ctx, err)
	}

	if err := r.store.ClearPartitionCursors(ctx, outfit.DefaultFilterKey()); err != nil {
		return nil, err
	}
	preview := outfit.PreviewOf(dto.ToOutfit(outfit.DefaultFilterKey(), 0, 0, false, r.now()))
	return &preview, nil
}

// DeleteOutfit removes a user outfit remotely, then drops it from every
// cached partition and invalidates the default partition's cursors.
func (r *Repository) DeleteOutfit(ctx context.Context, id string) error {
	state, err := r.session.State(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !state.IsAuthenticated() {
		return outfit.ErrUnauthenticated
	}

	if err := r.source.Delete(ctx, id, state.Token); err != nil {
		return r.mapAuthError(ctx, err)
	}

	if err := r.store.DeleteOutfit(ctx, id); err != nil {
		return err
	}
	return r.store.ClearPartitionCursors(ctx, outfit.DefaultFilterKey())
}

// mapAuthError turns a 401 into a forced logout plus ErrSessionExpired;
// anything else passes through untouched.
func (r *Repository) mapAuthError(ctx context.Context, err error) error {
	if !outfit.IsUnauthorized(err) {
		return err
	}
	if logoutErr := r.session.Logout(ctx); logoutErr != nil {
		r.log.Error("forced logout failed", "error", logoutErr)
	}
	return fmt.Errorf("%w: %v", outfit.ErrSessionExpired, err)
}
