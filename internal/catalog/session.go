package catalog

import (
	"context"
	"log"
	"slices"
	"sync"

	"techsklep/mobile/internal/domain"
)

// gamingProducer is the producer the gaming/streaming entry point locks the
// facet to.
const gamingProducer = "G4M3R"

// State is the result-screen session state.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateLoaded    State = "loaded"
	StateFiltering State = "filtering"
)

// Fetcher is the slice of the backend client the session needs.
type Fetcher interface {
	FilterProducts(ctx context.Context, criteria FilterCriteria) ([]domain.Product, error)
	Producers(ctx context.Context, criteria FilterCriteria) ([]string, error)
}

// EntryParams are the navigation parameters a result session starts from.
type EntryParams struct {
	CategoryIDs []int
	SearchQuery string
	Producer    string
	// ForceGamingProducer marks the gaming/streaming entry point, which
	// locks the producer facet and overrides any user selection.
	ForceGamingProducer bool
}

// Session drives one result-screen visit: fetches the pre-filtered list and
// producer facet, tracks the applied criteria against an uncommitted
// filter-sheet draft, and guards against stale responses after the criteria
// or the session itself moved on.
type Session struct {
	mu         sync.Mutex
	fetcher    Fetcher
	state      State
	applied    FilterCriteria
	draft      *FilterCriteria
	sortOrder  SortOrder
	products   []domain.Product
	producers  []string
	locked     string
	generation uint64
	closed     bool
	lastErr    error
}

// NewSession reconstructs session state from navigation parameters, the way
// the screen does when it is entered with a fresh query.
func NewSession(fetcher Fetcher, params EntryParams) *Session {
	criteria := FilterCriteria{
		CategoryIDs: append([]int(nil), params.CategoryIDs...),
		SearchQuery: params.SearchQuery,
	}
	locked := ""
	if params.ForceGamingProducer {
		locked = gamingProducer
		criteria.Producers = []string{gamingProducer}
	} else if params.Producer != "" {
		criteria.Producers = []string{params.Producer}
	}
	return &Session{
		fetcher:   fetcher,
		state:     StateIdle,
		applied:   criteria,
		sortOrder: DefaultSort,
		locked:    locked,
	}
}

// Refresh fetches products and producers for the applied criteria. A
// response that arrives after the criteria changed again, or after Close,
// is discarded instead of clobbering newer state.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.generation++
	gen := s.generation
	criteria := s.applied.Clone()
	s.state = StateLoading
	s.mu.Unlock()

	products, prodErr := s.fetcher.FilterProducts(ctx, criteria)
	producers, facetErr := s.fetcher.Producers(ctx, criteria)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		// Stale response; a newer refresh owns the state now.
		return nil
	}
	s.state = StateLoaded
	if prodErr != nil {
		log.Printf("[result] fetching products: %v", prodErr)
		s.products = nil
		s.lastErr = prodErr
		return prodErr
	}
	s.products = products
	s.lastErr = nil
	if facetErr != nil {
		// The list is still renderable without the facet options.
		log.Printf("[result] fetching producers: %v", facetErr)
	} else {
		s.producers = producers
	}
	return nil
}

// Close marks the session unmounted; any in-flight refresh result is dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// OpenFilterSheet starts a temporary criteria edit seeded from the applied
// criteria.
func (s *Session) OpenFilterSheet() {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.applied.Clone()
	s.draft = &draft
	s.state = StateFiltering
}

// SetDraftPriceBounds parses free-text bounds into the draft. Unparseable
// input means unbounded.
func (s *Session) SetDraftPriceBounds(minText, maxText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return
	}
	s.draft.PriceMin = ParsePriceBound(minText)
	s.draft.PriceMax = ParsePriceBound(maxText)
}

// ToggleDraftProducer flips a producer in the draft selection. While the
// producer facet is locked the toggle is ignored.
func (s *Session) ToggleDraftProducer(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil || s.locked != "" {
		return
	}
	if idx := slices.Index(s.draft.Producers, name); idx >= 0 {
		s.draft.Producers = slices.Delete(s.draft.Producers, idx, idx+1)
		return
	}
	s.draft.Producers = append(s.draft.Producers, name)
}

// SetDraftHideUnavailable toggles the availability facet in the draft.
func (s *Session) SetDraftHideUnavailable(hide bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return
	}
	s.draft.HideUnavailable = hide
}

// ApplyFilters commits the draft and re-fetches. The locked producer, when
// set, overrides whatever the draft selection says.
func (s *Session) ApplyFilters(ctx context.Context) error {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return nil
	}
	committed := s.draft.Clone()
	if s.locked != "" {
		committed.Producers = []string{s.locked}
	}
	s.applied = committed
	s.draft = nil
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// CloseFilterSheet discards the draft without any backend call, reverting to
// the last applied criteria.
func (s *Session) CloseFilterSheet() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return
	}
	s.draft = nil
	if s.state == StateFiltering {
		s.state = StateLoaded
	}
}

// SetSort changes the session sort order. Sorting is local; no re-fetch.
func (s *Session) SetSort(order SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOrder = order
}

// Products is the final rendered list: fetched products refined by the
// client-side facets and ordered by the session sort. An empty slice is a
// valid "no results" state, not an error.
func (s *Session) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ApplySort(Refine(s.products, s.applied), s.sortOrder)
}

// ProducerOptions lists the facet choices. A locked facet offers only the
// forced producer.
func (s *Session) ProducerOptions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked != "" {
		return []string{s.locked}
	}
	return append([]string(nil), s.producers...)
}

// ProducerLocked reports whether the producer facet is user-editable.
func (s *Session) ProducerLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked != ""
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the error flag of the last refresh, nil when it succeeded.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// AppliedCriteria returns a copy of the committed criteria.
func (s *Session) AppliedCriteria() FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied.Clone()
}
