package repository

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"dresscode/internal/domain/outfit"
	"dresscode/internal/store"
	"dresscode/internal/syncer"
)

const (
	// DefaultPageSize is the page size used when the caller passes none.
	DefaultPageSize = 20

	// queryDebounce delays pipeline restarts while the user is still
	// typing, to avoid a request storm of throwaway partitions.
	queryDebounce = 250 * time.Millisecond
)

// Page is one snapshot of a partition, in display order.
type Page struct {
	FilterKey       string
	Items           []outfit.Preview
	EndOfPagination bool

	// Err reports a retryable load failure. The snapshot fields are zero
	// when it is set; cached content from earlier emissions stays valid.
	Err error
}

type pagerQuery struct {
	query   string
	filters outfit.Filters
}

type loadResult struct {
	key string
	res syncer.Result
	err error
}

// activePartition is the pipeline state for the current filter key.
type activePartition struct {
	key         string
	mediator    *syncer.Mediator
	ctx         context.Context
	cancel      context.CancelFunc
	changes     <-chan struct{}
	unsubscribe func()
	end         bool
	loading     bool
}

// Pager is a restartable, conceptually infinite paging pipeline over the
// cached catalog. Submitting a query/filter change restarts it under the new
// partition key after a debounce window, cancelling whatever load was in
// flight for the old key; cache transactions still complete or roll back
// whole. Consumers read snapshots from Pages and drive continuation with
// LoadMore.
type Pager struct {
	repo     *Repository
	pageSize int
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	queries   chan pagerQuery
	appends   chan struct{}
	refreshes chan struct{}
	pages     chan Page

	group singleflight.Group
}

// NewPager starts a paging pipeline. It runs until ctx is cancelled or Close
// is called; no partition is loaded until the first SetQuery.
func (r *Repository) NewPager(ctx context.Context, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pctx, cancel := context.WithCancel(ctx)
	p := &Pager{
		repo:      r,
		pageSize:  pageSize,
		debounce:  queryDebounce,
		ctx:       pctx,
		cancel:    cancel,
		queries:   make(chan pagerQuery, 1),
		appends:   make(chan struct{}, 1),
		refreshes: make(chan struct{}, 1),
		pages:     make(chan Page, 1),
	}
	go p.run()
	return p
}

// SetQuery submits a query/filter change. Never blocks; rapid-fire calls
// coalesce and only the latest survives the debounce window.
func (p *Pager) SetQuery(query string, filters outfit.Filters) {
	q := pagerQuery{query: query, filters: filters}
	for {
		select {
		case p.queries <- q:
			return
		default:
			select {
			case <-p.queries:
			default:
			}
		}
	}
}

// LoadMore asks for the next page of the current partition. A no-op while a
// load is already running or the partition is exhausted.
func (p *Pager) LoadMore() {
	select {
	case p.appends <- struct{}{}:
	default:
	}
}

// Refresh re-fetches the current partition from page 1.
func (p *Pager) Refresh() {
	select {
	case p.refreshes <- struct{}{}:
	default:
	}
}

// Pages returns the snapshot stream. Emissions coalesce: a slow consumer
// sees the latest snapshot, not every intermediate one.
func (p *Pager) Pages() <-chan Page {
	return p.pages
}

func (p *Pager) Close() {
	p.cancel()
}

func (p *Pager) run() {
	var (
		pending   *pagerQuery
		debounce  *time.Timer
		debounceC <-chan time.Time
		active    *activePartition
	)
	results := make(chan loadResult, 4)

	defer func() {
		if active != nil {
			active.cancel()
			active.unsubscribe()
		}
	}()

	for {
		var changes <-chan struct{}
		if active != nil {
			changes = active.changes
		}

		select {
		case <-p.ctx.Done():
			return

		case q := <-p.queries:
			pending = &q
			if debounce == nil {
				debounce = time.NewTimer(p.debounce)
				debounceC = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(p.debounce)
			}

		case <-debounceC:
			if pending == nil {
				continue
			}
			key := outfit.BuildFilterKey(pending.query, pending.filters)
			if active == nil || active.key != key {
				active = p.restart(active, key, *pending, results)
			}
			pending = nil

		case <-p.appends:
			if active == nil || active.end || active.loading {
				continue
			}
			p.startLoad(active, syncer.LoadAppend, results)

		case <-p.refreshes:
			if active == nil || active.loading {
				continue
			}
			active.end = false
			p.startLoad(active, syncer.LoadRefresh, results)

		case res := <-results:
			if active == nil || res.key != active.key {
				continue // stale result from a cancelled partition
			}
			active.loading = false
			if res.err != nil {
				if errors.Is(res.err, context.Canceled) {
					continue
				}
				p.emit(Page{FilterKey: active.key, Err: res.err})
				continue
			}
			active.end = res.res.EndOfPagination
			p.emitSnapshot(active)

		case <-changes:
			p.emitSnapshot(active)
		}
	}
}

// restart tears down the previous partition pipeline and spins up the new
// key: cached content is emitted immediately (stale-while-revalidate) and a
// refresh load starts in the background.
func (p *Pager) restart(old *activePartition, key string, q pagerQuery, results chan<- loadResult) *activePartition {
	if old != nil {
		old.cancel()
		old.unsubscribe()
	}

	ctx, cancel := context.WithCancel(p.ctx)
	changes, unsubscribe := p.repo.store.Notifier().Subscribe(store.PartitionTopic(key))

	favorites := func(ctx context.Context) (map[string]struct{}, error) {
		return p.repo.store.FavoriteIDs(ctx)
	}
	active := &activePartition{
		key: key,
		mediator: syncer.New(key, q.query, q.filters, p.pageSize,
			p.repo.source, p.repo.store, favorites, p.repo.log),
		ctx:         ctx,
		cancel:      cancel,
		changes:     changes,
		unsubscribe: unsubscribe,
	}

	p.emitSnapshot(active)
	p.startLoad(active, syncer.LoadRefresh, results)
	return active
}

func (p *Pager) startLoad(active *activePartition, kind syncer.LoadKind, results chan<- loadResult) {
	active.loading = true
	key := active.key
	ctx := active.ctx
	mediator := active.mediator

	go func() {
		// Guards against duplicate concurrent loads on one partition; a
		// well-behaved consumer serializes them anyway.
		v, err, _ := p.group.Do(key+"|"+kind.String(), func() (any, error) {
			return mediator.Load(ctx, kind)
		})
		var res syncer.Result
		if r, ok := v.(syncer.Result); ok {
			res = r
		}
		select {
		case results <- loadResult{key: key, res: res, err: err}:
		case <-p.ctx.Done():
		}
	}()
}

func (p *Pager) emitSnapshot(active *activePartition) {
	outfits, err := p.repo.store.PartitionOutfits(p.ctx, active.key)
	if err != nil {
		if p.ctx.Err() == nil {
			p.repo.log.Error("read partition snapshot", "filter_key", active.key, "error", err)
		}
		return
	}
	items := make([]outfit.Preview, 0, len(outfits))
	for _, o := range outfits {
		items = append(items, outfit.PreviewOf(o))
	}
	p.emit(Page{FilterKey: active.key, Items: items, EndOfPagination: active.end})
}

// emit delivers a page without ever blocking the run loop: a pending unread
// snapshot is replaced by the newer one.
func (p *Pager) emit(page Page) {
	for {
		select {
		case p.pages <- page:
			return
		default:
			select {
			case <-p.pages:
			default:
			}
		}
	}
}
