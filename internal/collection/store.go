package collection

import (
	"cardvault/internal/card"
	"cardvault/internal/kv"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Listener receives the collection state after a mutation.
type Listener func(Collection)

// Store owns the persisted collection. Every mutation is written to the
// backing store before it returns, and every read goes back to the
// backing store, so two Stores over the same kv.Store agree.
type Store struct {
	kv  kv.Store
	log *zap.Logger

	mu sync.Mutex

	subMu     sync.Mutex
	listeners map[int]Listener
	nextSub   int
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:        backend,
		log:       zap.NewNop(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted collection. An absent or unparsable value
// yields an empty collection; only backend I/O failures are errors.
func (s *Store) Load(ctx context.Context) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUnlocked(ctx)
}

func (s *Store) loadUnlocked(ctx context.Context) (Collection, error) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	c, err := decode(data)
	if err != nil {
		s.log.Debug("discarding malformed collection", zap.Int("bytes", len(data)), zap.Error(err))
		return Collection{}, nil
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

func (s *Store) saveUnlocked(ctx context.Context, c Collection) error {
	data, err := encode(c)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// Add appends one copy of r. There is no "already owned" rejection.
func (s *Store) Add(ctx context.Context, r card.Record) (Collection, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	c, err := s.mutate(ctx, func(c Collection) (Collection, bool) {
		return c.with(r), true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add card %q: %w", r.ID, err)
	}
	return c, nil
}

// Remove drops the first stored copy of id. Removing an ID that is not
// owned leaves the collection untouched and writes nothing.
func (s *Store) Remove(ctx context.Context, id string) (Collection, error) {
	c, err := s.mutate(ctx, func(c Collection) (Collection, bool) {
		return c.without(id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove card %q: %w", id, err)
	}
	return c, nil
}

// Clear deletes all persisted state.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	err := s.kv.Delete(ctx, Key)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	s.log.Debug("collection cleared")
	s.notify(Collection{})
	return nil
}

func (s *Store) Count(ctx context.Context, id string) (int, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return c.Count(id), nil
}

func (s *Store) First(ctx context.Context, id string) (card.Record, bool, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return card.Record{}, false, err
	}
	r, ok := c.First(id)
	return r, ok, nil
}

func (s *Store) mutate(ctx context.Context, fn func(Collection) (Collection, bool)) (Collection, error) {
	s.mu.Lock()
	current, err := s.loadUnlocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	next, changed := fn(current)
	if !changed {
		s.mu.Unlock()
		return current, nil
	}
	if err := s.saveUnlocked(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.notify(next)
	return next, nil
}

// Subscribe registers l to run after every state change. Listeners run
// synchronously on the mutating goroutine after the write is durable, so
// they may call back into the Store.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(c Collection) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	listeners := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.subMu.Unlock()

	for _, l := range listeners {
		l(c)
	}
}
