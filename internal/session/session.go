package session

import (
	"cardvault/internal/card"
	"cardvault/internal/collection"
	"cardvault/internal/filter"
	"cardvault/internal/view"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

const NoCardsFound = "No cards found!"

var (
	// ErrSuperseded is returned by Search when a later search was issued
	// before this one resolved. Its results are discarded.
	ErrSuperseded  = errors.New("search superseded by a newer search")
	ErrUnknownCard = errors.New("card is neither in the results nor owned")
)

type Lookup interface {
	Search(ctx context.Context, name string) []card.Record
	Card(ctx context.Context, id string) (card.Record, error)
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Mode    view.DisplayMode
	Spec    filter.Spec
	Owned   []view.Entry
	Results []view.Result
	Notice  string
}

// Session turns user intents into store mutations and views. Intents are
// expected one at a time; only Search may overlap with other calls.
type Session struct {
	store  *collection.Store
	lookup Lookup
	log    *zap.Logger

	generation atomic.Uint64
	stop       func()

	mu      sync.Mutex
	mode    view.DisplayMode
	spec    filter.Spec
	owned   collection.Collection
	results []card.Record
	notice  string
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithDisplayMode(m view.DisplayMode) Option {
	return func(s *Session) { s.mode = m }
}

func New(ctx context.Context, store *collection.Store, lookup Lookup, opts ...Option) (*Session, error) {
	s := &Session{
		store:  store,
		lookup: lookup,
		log:    zap.NewNop(),
		mode:   view.ModeImages,
		spec:   filter.Spec{Colors: card.NewColorSet()},
	}
	for _, opt := range opts {
		opt(s)
	}

	owned, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.owned = owned
	s.stop = store.Subscribe(s.onCollectionChanged)
	return s, nil
}

// Close detaches the session from its store.
func (s *Session) Close() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *Session) onCollectionChanged(c collection.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owned = c
}

// Search looks up query, filters with the current spec and installs the
// results. If another Search starts before this one resolves, this one
// returns ErrSuperseded and leaves the newer results in place.
func (s *Session) Search(ctx context.Context, query string) ([]view.Result, error) {
	gen := s.generation.Add(1)
	spec := s.Spec()

	records := s.lookup.Search(ctx, query)
	filtered := filter.Apply(records, spec)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation.Load() {
		s.log.Debug("dropping superseded search", zap.String("query", query), zap.Uint64("generation", gen))
		return nil, ErrSuperseded
	}

	s.results = filtered
	s.notice = ""
	if len(filtered) == 0 {
		s.notice = NoCardsFound
	}
	s.log.Debug("search resolved",
		zap.String("query", query),
		zap.Int("fetched", len(records)),
		zap.Int("matched", len(filtered)))
	return view.Results(s.results, s.owned), nil
}

func (s *Session) ToggleDisplayMode() view.DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = s.mode.Toggle()
	return s.mode
}

func (s *Session) ToggleExcludeMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec.ExcludeMode = !s.spec.ExcludeMode
	return s.spec.ExcludeMode
}

func (s *Session) SetTypes(types ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec.Types = filter.ParseTypes(types...)
}

func (s *Session) SetColors(colors card.ColorSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec.Colors = card.NewColorSet(colors.Sorted()...)
}

// Spec returns a copy of the filter the next Search will use.
func (s *Session) Spec() filter.Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter.Spec{
		Types:       slices.Clone(s.spec.Types),
		Colors:      card.NewColorSet(s.spec.Colors.Sorted()...),
		ExcludeMode: s.spec.ExcludeMode,
	}
}

// Increment adds one copy of id. The record comes from the current search
// results if present, else from the first owned copy, else from a
// lookup by ID.
func (s *Session) Increment(ctx context.Context, id string) (int, error) {
	r, err := s.resolve(ctx, id)
	if err != nil {
		return 0, err
	}
	c, err := s.store.Add(ctx, r)
	if err != nil {
		return 0, err
	}
	return c.Count(r.ID), nil
}

// Decrement removes one copy of id. Decrementing a card that is not owned
// is a no-op and returns zero.
func (s *Session) Decrement(ctx context.Context, id string) (int, error) {
	c, err := s.store.Remove(ctx, id)
	if err != nil {
		return 0, err
	}
	return c.Count(id), nil
}

// Clear deletes the collection if confirm returns true.
func (s *Session) Clear(ctx context.Context, confirm func() (bool, error)) (bool, error) {
	ok, err := confirm()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := s.store.Clear(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) resolve(ctx context.Context, id string) (card.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return card.Record{}, card.ErrEmptyID
	}

	s.mu.Lock()
	i := slices.IndexFunc(s.results, func(r card.Record) bool { return r.ID == id })
	if i >= 0 {
		r := s.results[i]
		s.mu.Unlock()
		return r, nil
	}
	r, owned := s.owned.First(id)
	s.mu.Unlock()
	if owned {
		return r, nil
	}

	if s.lookup == nil {
		return card.Record{}, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	r, err := s.lookup.Card(ctx, id)
	if err != nil {
		return card.Record{}, fmt.Errorf("%w: %s: %w", ErrUnknownCard, id, err)
	}
	return r, nil
}

func (s *Session) Owned() []view.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Project(s.owned)
}

func (s *Session) Results() []view.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Results(s.results, s.owned)
}

func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *Session) Mode() view.DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) Snapshot() Snapshot {
	spec := s.Spec()

	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Mode:    s.mode,
		Spec:    spec,
		Owned:   view.Project(s.owned),
		Results: view.Results(s.results, s.owned),
		Notice:  s.notice,
	}
}
