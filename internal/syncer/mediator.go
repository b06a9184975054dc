package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/remote"
)

// LoadKind selects how the mediator extends a partition.
type LoadKind int

const (
	// LoadRefresh fetches page 1 and replaces the whole partition.
	LoadRefresh LoadKind = iota
	// LoadAppend continues from the last cached item's cursor.
	LoadAppend
	// LoadPrepend is never supported: the catalog is forward-only.
	LoadPrepend
)

func (k LoadKind) String() string {
	switch k {
	case LoadRefresh:
		return "refresh"
	case LoadAppend:
		return "append"
	case LoadPrepend:
		return "prepend"
	}
	return "unknown"
}

// Result reports a completed load.
type Result struct {
	EndOfPagination bool
}

// Cache is the slice of the local store the mediator writes through. Writes
// are transactional: all rows of one load become visible together or not at
// all.
type Cache interface {
	ReplacePartition(ctx context.Context, filterKey string, outfits []outfit.Outfit, cursors []outfit.Cursor) error
	AppendPartition(ctx context.Context, filterKey string, outfits []outfit.Outfit, cursors []outfit.Cursor) error
	LastInPartition(ctx context.Context, filterKey string) (*outfit.Outfit, error)
	CursorFor(ctx context.Context, filterKey, id string) (*outfit.Cursor, error)
}

// FavoriteLookup resolves the current favorite id set without a hard
// dependency on the favorites subsystem.
type FavoriteLookup func(ctx context.Context) (map[string]struct{}, error)

// Mediator reconciles one cache partition with the remote paged catalog. It
// owns the continuation-cursor bookkeeping and the network-failure-to-
// fallback-dataset substitution; it holds no cursor state of its own and
// re-reads it from the cache on every call.
type Mediator struct {
	filterKey string
	query     string
	filters   outfit.Filters
	pageSize  int
	source    remote.Source
	cache     Cache
	favorites FavoriteLookup
	log       *slog.Logger
	now       func() time.Time
}

func New(filterKey, query string, filters outfit.Filters, pageSize int,
	source remote.Source, cache Cache, favorites FavoriteLookup, log *slog.Logger) *Mediator {
	return &Mediator{
		filterKey: filterKey,
		query:     query,
		filters:   filters,
		pageSize:  pageSize,
		source:    source,
		cache:     cache,
		favorites: favorites,
		log:       log,
		now:       time.Now,
	}
}

// Load runs one refresh or append cycle against the partition. Connectivity
// or not-found failures on a refresh are recovered locally by seeding the
// fallback dataset; every other failure is returned to the caller unchanged
// and leaves the cache untouched.
func (m *Mediator) Load(ctx context.Context, kind LoadKind) (Result, error) {
	page, exhausted, err := m.pageFor(ctx, kind)
	if err != nil {
		return Result{}, err
	}
	if exhausted {
		return Result{EndOfPagination: true}, nil
	}

	result, err := m.loadPage(ctx, kind, page)
	if err == nil {
		return result, nil
	}
	// A cancelled load must not be "recovered": the pipeline restarting for
	// a new key is not a network outage.
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	if kind == LoadRefresh && outfit.IsFallbackTrigger(err) {
		m.log.Info("refresh failed, seeding fallback dataset",
			"filter_key", m.filterKey, "error", err)
		return m.seedFallback(ctx)
	}
	return Result{}, err
}

// pageFor resolves which page to fetch, re-reading cursor state at call time.
func (m *Mediator) pageFor(ctx context.Context, kind LoadKind) (page int, exhausted bool, err error) {
	switch kind {
	case LoadRefresh:
		return 1, false, nil
	case LoadPrepend:
		return 0, true, nil
	case LoadAppend:
		last, err := m.cache.LastInPartition(ctx, m.filterKey)
		if err != nil {
			return 0, false, fmt.Errorf("read last cached item: %w", err)
		}
		if last == nil {
			return 0, true, nil
		}
		cursor, err := m.cache.CursorFor(ctx, m.filterKey, last.ID)
		if err != nil {
			return 0, false, fmt.Errorf("read cursor: %w", err)
		}
		if cursor == nil || cursor.NextPage == nil {
			return 0, true, nil
		}
		return *cursor.NextPage, false, nil
	}
	return 0, false, fmt.Errorf("unknown load kind %d", kind)
}

func (m *Mediator) loadPage(ctx context.Context, kind LoadKind, page int) (Result, error) {
	favoriteIDs, err := m.favorites(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("resolve favorites: %w", err)
	}

	resp, err := m.source.FetchPage(ctx, m.query, m.filters, page, m.pageSize)
	if err != nil {
		return Result{}, err
	}

	end := len(resp.Items) == 0 ||
		(resp.PageSize != nil && len(resp.Items) < *resp.PageSize)

	var prev, next *int
	if page > 1 {
		p := page - 1
		prev = &p
	}
	if !end {
		n := page + 1
		next = &n
	}

	at := m.now()
	outfits := make([]outfit.Outfit, 0, len(resp.Items))
	cursors := make([]outfit.Cursor, 0, len(resp.Items))
	for i, dto := range resp.Items {
		_, isFav := favoriteIDs[dto.ID]
		if !isFav && dto.IsFavorite != nil {
			isFav = *dto.IsFavorite
		}
		outfits = append(outfits, dto.ToOutfit(m.filterKey, page, i, isFav, at))
		cursors = append(cursors, outfit.Cursor{
			ID:        dto.ID,
			FilterKey: m.filterKey,
			PrevPage:  prev,
			NextPage:  next,
		})
	}

	if kind == LoadRefresh {
		err = m.cache.ReplacePartition(ctx, m.filterKey, outfits, cursors)
	} else {
		err = m.cache.AppendPartition(ctx, m.filterKey, outfits, cursors)
	}
	if err != nil {
		return Result{}, fmt.Errorf("commit %s page %d: %w", kind, page, err)
	}

	m.log.Debug("page committed",
		"filter_key", m.filterKey, "kind", kind.String(), "page", page,
		"items", len(outfits), "end", end)
	return Result{EndOfPagination: end}, nil
}

// seedFallback replaces the partition with the built-in dataset and reports
// terminal pagination, hiding the failure from the caller entirely.
func (m *Mediator) seedFallback(ctx context.Context) (Result, error) {
	favoriteIDs, err := m.favorites(ctx)
	if err != nil {
		favoriteIDs = nil
	}
	outfits, cursors := FallbackPage(m.filterKey, favoriteIDs, m.now())
	if err := m.cache.ReplacePartition(ctx, m.filterKey, outfits, cursors); err != nil {
		return Result{}, fmt.Errorf("seed fallback dataset: %w", err)
	}
	return Result{EndOfPagination: true}, nil
}
