package session

import (
	"log"
	"sync"
	"time"

	"github.com/cazare-ro/site/config"
	"github.com/cazare-ro/site/filter"
	"github.com/cazare-ro/site/geo"
	"github.com/cazare-ro/site/listing"
	"github.com/cazare-ro/site/price"
	"github.com/cazare-ro/site/viewport"
)

// Searcher runs one listing query. Implemented by listing.Client.
type Searcher interface {
	Search(q listing.Query) (listing.SearchResult, error)
}

// Options tune a session. Zero values fall back to config defaults.
type Options struct {
	TextDebounce time.Duration
	IdleDebounce time.Duration
	PopupDelay   time.Duration
	Limit        int
	// Recorder receives committed non-empty free text, best-effort.
	Recorder func(query string)
}

// Snapshot is a consistent read of everything the views render.
type Snapshot struct {
	State       filter.State
	Results     []listing.Listing
	Total       int
	TotalPages  int
	Loading     bool
	Err         string
	PriceBounds price.Bounds
	DraftMin    *float64
	DraftMax    *float64
	Chips       []filter.Chip
	PageURL     string
	Dirty       bool
	ActiveID    string
	OpenPopupID string
}

// Session is the search engine for one visitor: the single source of
// truth for committed filter state and everything derived from it. Each
// user action runs as one transaction under the lock — reduce, derive,
// clamp, re-encode URL — so views never observe a half-derived state.
type Session struct {
	mu   sync.Mutex
	cond *sync.Cond

	searcher Searcher
	limit    int
	recorder func(string)

	state  filter.State
	bounds price.Bounds

	draftMin *float64
	draftMax *float64

	results    []listing.Listing
	total      int
	totalPages int
	loading    bool
	lastErr    string
	pageURL    string

	activeID string
	Viewport *viewport.Controller

	textDebounce *Debouncer
	idleDebounce *Debouncer
	textPending  bool

	// gen guards against stale responses: only the completion whose
	// generation still matches is honored.
	gen uint64

	lastSeen time.Time
}

// New creates a session in the default filter state. Call Init to seed
// it from a decoded page URL and trigger the first fetch.
func New(searcher Searcher, opts Options) *Session {
	if opts.TextDebounce == 0 {
		opts.TextDebounce = config.TextDebounceWindow
	}
	if opts.IdleDebounce == 0 {
		opts.IdleDebounce = config.MapIdleWindow
	}
	if opts.PopupDelay == 0 {
		opts.PopupDelay = config.PopupCloseDelay
	}
	if opts.Limit == 0 {
		opts.Limit = config.SearchPageLimit
	}
	st := filter.Default()
	s := &Session{
		searcher:     searcher,
		limit:        opts.Limit,
		recorder:     opts.Recorder,
		state:        st,
		bounds:       price.Defaults(st.Currency),
		pageURL:      filter.PageURL(st),
		Viewport:     viewport.NewController(opts.PopupDelay),
		textDebounce: NewDebouncer(opts.TextDebounce),
		idleDebounce: NewDebouncer(opts.IdleDebounce),
		lastSeen:     time.Now(),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Init replaces the whole committed state, e.g. from a decoded page
// URL at mount, and fetches.
func (s *Session) Init(st filter.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.bounds = price.Defaults(st.Currency)
	s.draftMin, s.draftMax = nil, nil
	s.Viewport.SetCommitted(st.CommittedBounds)
	s.pageURL = filter.PageURL(st)
	s.fetchLocked()
}

// Dispatch applies one committed facet transition and fetches if the
// state actually changed.
func (s *Session) Dispatch(a filter.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatchLocked(a)
}

func (s *Session) dispatchLocked(a filter.Action) {
	next := filter.Reduce(s.state, a)
	if next.Equal(s.state) {
		return
	}

	currencyChanged := next.Currency != s.state.Currency
	s.state = next

	if currencyChanged {
		// Derived bounds are meaningless across currencies until the
		// next response arrives.
		s.bounds = price.Defaults(next.Currency)
		s.draftMin, s.draftMax = nil, nil
	}
	s.Viewport.SetCommitted(next.CommittedBounds)
	s.pageURL = filter.PageURL(next)

	if sf, ok := a.(filter.SetFreeText); ok && s.recorder != nil && sf.Text != "" {
		go s.recorder(next.FreeText)
	}

	s.fetchLocked()
}

// SetFreeText feeds one keystroke's worth of text into the debounced
// pipeline. Neither the query nor the URL react until the input rests
// for the debounce window.
func (s *Session) SetFreeText(text string) {
	s.mu.Lock()
	s.textPending = true
	s.mu.Unlock()
	s.textDebounce.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.textPending = false
		s.dispatchLocked(filter.SetFreeText{Text: text})
		s.cond.Broadcast()
	})
}

// MapMoved feeds a raw camera event. The live viewport updates only
// after the camera rests for the idle window; committed bounds are
// never touched here and nothing is fetched.
func (s *Session) MapMoved(b geo.Bounds) {
	s.idleDebounce.Trigger(func() {
		s.Viewport.SetLive(b)
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
}

// CommitArea is the explicit "search this area" action: the settled
// camera becomes the committed area and exactly one fetch fires.
func (s *Session) CommitArea() {
	enc, ok := s.Viewport.CommitLive()
	if !ok {
		return
	}
	s.Dispatch(filter.CommitBounds{Bounds: enc})
}

// ClearArea removes the area filter without moving the camera.
func (s *Session) ClearArea() {
	s.Dispatch(filter.ClearBounds{})
}

// SetDraftPrice tracks live slider positions during a drag. Values are
// clamped into the derived bounds and committed only on release.
func (s *Session) SetDraftPrice(min, max *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draftMin = s.bounds.ClampPtr(min)
	s.draftMax = s.bounds.ClampPtr(max)
}

// CommitDraftPrice promotes the draft slider positions to committed
// state on release.
func (s *Session) CommitDraftPrice() {
	s.mu.Lock()
	min, max := s.draftMin, s.draftMax
	s.draftMin, s.draftMax = nil, nil
	s.dispatchLocked(filter.SetPriceRange{Min: min, Max: max})
	s.mu.Unlock()
}

// RemoveChip resets exactly the facet behind one chip.
func (s *Session) RemoveChip(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := filter.RemovalActionFor(s.state, key)
	if !ok {
		return
	}
	s.dispatchLocked(a)
}

// SetActive shares one highlight between list and map; hovering either
// surface eases the camera toward the listing, purely visually.
func (s *Session) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
	for _, it := range s.results {
		if it.ID == id {
			s.Viewport.EaseTo(it.Geo.Lat(), it.Geo.Lng())
			break
		}
	}
}

// ClearActive drops the highlight if id still owns it.
func (s *Session) ClearActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == id {
		s.activeID = ""
	}
}

// Retry re-runs the current query after a failure.
func (s *Session) Retry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchLocked()
}

// Touch refreshes the registry idle clock.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// LastSeen returns the last activity time.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// fetchLocked bumps the request generation and launches the query.
// Responses carrying an older generation are dropped at completion.
func (s *Session) fetchLocked() {
	s.gen++
	gen := s.gen
	q := listing.Query{State: s.state, Limit: s.limit}
	s.loading = true
	go func() {
		result, err := s.searcher.Search(q)
		s.complete(gen, result, err)
	}()
}

func (s *Session) complete(gen uint64, result listing.SearchResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.cond.Broadcast()

	if gen != s.gen {
		log.Printf("[session] dropping stale response (gen %d, current %d)", gen, s.gen)
		return
	}

	if err != nil {
		log.Printf("[session] search failed: %v", err)
		s.results = nil
		s.total = 0
		s.totalPages = 0
		s.lastErr = err.Error()
		s.loading = false
		return
	}

	s.results = result.Items
	s.total = result.Total
	s.totalPages = (result.Total + s.limit - 1) / s.limit
	s.lastErr = ""

	// A shrunken result set can strand the page past the end; clamp
	// down and fetch the clamped page. Page 1 is a fixed point, so
	// this settles in at most one follow-up.
	if s.totalPages > 0 && s.state.Page > s.totalPages {
		s.state.Page = s.totalPages
		s.pageURL = filter.PageURL(s.state)
		s.fetchLocked()
		return
	}

	s.reconcileBoundsLocked(result)
	s.loading = false
}

// reconcileBoundsLocked re-derives the price slider bounds from the
// fresh result page and clamps committed and draft prices into them.
// The clamps run unconditionally, even when the derivation lands on the
// bounds already in place: a decoded URL can carry a price outside any
// bounds, and the clamp is idempotent. The clamp re-encodes the URL but
// never re-triggers a fetch, so the derivation loop cannot oscillate
// against user input.
func (s *Session) reconcileBoundsLocked(result listing.SearchResult) {
	s.bounds = price.Derive(result.Prices(), s.state.Currency)
	s.state.PriceMin = s.bounds.ClampPtr(s.state.PriceMin)
	s.state.PriceMax = s.bounds.ClampPtr(s.state.PriceMax)
	s.draftMin = s.bounds.ClampPtr(s.draftMin)
	s.draftMax = s.bounds.ClampPtr(s.draftMax)
	s.pageURL = filter.PageURL(s.state)
}

// Snapshot returns a consistent copy of everything the views need.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	results := make([]listing.Listing, len(s.results))
	copy(results, s.results)
	return Snapshot{
		State:       s.state,
		Results:     results,
		Total:       s.total,
		TotalPages:  s.totalPages,
		Loading:     s.loading,
		Err:         s.lastErr,
		PriceBounds: s.bounds,
		DraftMin:    s.draftMin,
		DraftMax:    s.draftMax,
		Chips:       filter.Chips(s.state),
		PageURL:     s.pageURL,
		Dirty:       s.Viewport.Dirty(),
		ActiveID:    s.activeID,
		OpenPopupID: s.Viewport.OpenPopupID(),
	}
}

// WaitSettled blocks until no fetch is in flight and no text commit is
// pending, or until the timeout passes, then returns a snapshot.
func (s *Session) WaitSettled(timeout time.Duration) Snapshot {
	deadline := time.Now().Add(timeout)
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.loading || s.textPending {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		waker := time.AfterFunc(remaining, s.cond.Broadcast)
		s.cond.Wait()
		waker.Stop()
	}
	return s.snapshotLocked()
}
