package session_test

import (
	"cardvault/internal/card"
	"cardvault/internal/collection"
	"cardvault/internal/kv"
	"cardvault/internal/scryfall"
	"cardvault/internal/session"
	"cardvault/internal/view"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	bolt    = card.Record{ID: "bolt", Name: "Lightning Bolt", TypeLine: "Instant", Colors: []card.Color{card.Red}}
	counter = card.Record{ID: "counter", Name: "Counterspell", TypeLine: "Instant", Colors: []card.Color{card.Blue}}
	bear    = card.Record{ID: "bear", Name: "Grizzly Bears", TypeLine: "Creature — Bear", Colors: []card.Color{card.Green}}
	golem   = card.Record{ID: "golem", Name: "Steel Golem", TypeLine: "Artifact Creature — Golem"}
)

// gate holds a search open until release is closed. started is closed once
// the search reaches the lookup.
type gate struct {
	started chan struct{}
	release chan struct{}
}

// fakeLookup answers searches from a fixed table. A query registered with
// gate blocks until released.
type fakeLookup struct {
	mu      sync.Mutex
	results map[string][]card.Record
	gates   map[string]*gate
	cards   map[string]card.Record
	fetched []string
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		results: map[string][]card.Record{
			"instant": {bolt, counter},
			"all":     {bolt, counter, bear, golem},
		},
		gates: make(map[string]*gate),
		cards: map[string]card.Record{"bear": bear},
	}
}

func (f *fakeLookup) hold(query string) *gate {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := &gate{started: make(chan struct{}), release: make(chan struct{})}
	f.gates[query] = g
	return g
}

func (f *fakeLookup) Search(ctx context.Context, name string) []card.Record {
	f.mu.Lock()
	g := f.gates[name]
	res := f.results[name]
	f.mu.Unlock()
	if g != nil {
		close(g.started)
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil
		}
	}
	return res
}

func (f *fakeLookup) Card(_ context.Context, id string) (card.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, id)
	r, ok := f.cards[id]
	if !ok {
		return card.Record{}, scryfall.ErrNotFound
	}
	return r, nil
}

func newTestSession(t *testing.T, opts ...session.Option) (*session.Session, *collection.Store, *fakeLookup) {
	t.Helper()
	store := collection.NewStore(kv.NewMemStore())
	lookup := newFakeLookup()
	opts = append([]session.Option{session.WithLogger(zaptest.NewLogger(t))}, opts...)
	s, err := session.New(context.Background(), store, lookup, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, store, lookup
}

func resultIDs(results []view.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Card.ID
	}
	return out
}

func TestSession_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("installs filtered results", func(t *testing.T) {
		s, _, _ := newTestSession(t)
		s.SetColors(card.NewColorSet(card.Blue))

		got, err := s.Search(ctx, "all")

		require.NoError(t, err)
		assert.Equal(t, []string{"counter"}, resultIDs(got))
		assert.Equal(t, got, s.Results())
		assert.Empty(t, s.Notice())
	})

	t.Run("empty result sets notice", func(t *testing.T) {
		s, _, _ := newTestSession(t)

		got, err := s.Search(ctx, "nothing matches this")

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, session.NoCardsFound, s.Notice())
	})

	t.Run("filter removing everything also sets notice", func(t *testing.T) {
		s, _, _ := newTestSession(t)
		s.SetTypes("planeswalker")

		_, err := s.Search(ctx, "all")

		require.NoError(t, err)
		assert.Equal(t, session.NoCardsFound, s.Notice())
	})

	t.Run("results carry owned counts", func(t *testing.T) {
		s, store, _ := newTestSession(t)
		_, err := store.Add(ctx, bolt)
		require.NoError(t, err)
		_, err = store.Add(ctx, bolt)
		require.NoError(t, err)

		got, err := s.Search(ctx, "instant")

		require.NoError(t, err)
		assert.Equal(t, []view.Result{{Card: bolt, Owned: 2}, {Card: counter, Owned: 0}}, got)
	})

	t.Run("exclude mode requires exact colors", func(t *testing.T) {
		s, _, _ := newTestSession(t)
		s.SetColors(card.NewColorSet(card.Red, card.Blue))

		inclusive, err := s.Search(ctx, "all")
		require.NoError(t, err)
		assert.Equal(t, []string{"bolt", "counter"}, resultIDs(inclusive))

		assert.True(t, s.ToggleExcludeMode())
		exact, err := s.Search(ctx, "all")
		require.NoError(t, err)
		assert.Empty(t, exact)
	})
}

func TestSession_OverlappingSearches(t *testing.T) {
	ctx := context.Background()

	t.Run("older search resolving late does not overwrite newer results", func(t *testing.T) {
		s, _, lookup := newTestSession(t)
		slow := lookup.hold("all")

		var wg sync.WaitGroup
		var slowErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, slowErr = s.Search(ctx, "all")
		}()
		<-slow.started

		fast, err := s.Search(ctx, "instant")
		require.NoError(t, err)
		assert.Equal(t, []string{"bolt", "counter"}, resultIDs(fast))

		close(slow.release)
		wg.Wait()

		assert.ErrorIs(t, slowErr, session.ErrSuperseded)
		assert.Equal(t, []string{"bolt", "counter"}, resultIDs(s.Results()))
	})

	t.Run("sequential searches each install", func(t *testing.T) {
		s, _, _ := newTestSession(t)

		_, err := s.Search(ctx, "all")
		require.NoError(t, err)
		_, err = s.Search(ctx, "instant")
		require.NoError(t, err)

		assert.Len(t, s.Results(), 2)
	})
}

func TestSession_IncrementDecrement(t *testing.T) {
	ctx := context.Background()

	t.Run("increment uses the search result record", func(t *testing.T) {
		s, store, lookup := newTestSession(t)
		_, err := s.Search(ctx, "instant")
		require.NoError(t, err)

		n, err := s.Increment(ctx, "bolt")

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		first, ok, err := store.First(ctx, "bolt")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, bolt, first)
		assert.Empty(t, lookup.fetched)
	})

	t.Run("increment from owned view reuses first owned copy", func(t *testing.T) {
		s, store, lookup := newTestSession(t)
		stale := bolt
		stale.Name = "Lightning Bolt (old cache)"
		_, err := store.Add(ctx, stale)
		require.NoError(t, err)

		n, err := s.Increment(ctx, "bolt")

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		c, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, stale.Name, c[1].Name)
		assert.Empty(t, lookup.fetched)
	})

	t.Run("increment of unknown card fetches it", func(t *testing.T) {
		s, _, lookup := newTestSession(t)

		n, err := s.Increment(ctx, "bear")

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"bear"}, lookup.fetched)
	})

	t.Run("increment of card the lookup cannot find fails", func(t *testing.T) {
		s, _, _ := newTestSession(t)

		_, err := s.Increment(ctx, "nope")

		assert.ErrorIs(t, err, session.ErrUnknownCard)
		assert.ErrorIs(t, err, scryfall.ErrNotFound)
	})

	t.Run("increment of blank id fails", func(t *testing.T) {
		s, _, _ := newTestSession(t)

		_, err := s.Increment(ctx, "  ")

		assert.ErrorIs(t, err, card.ErrEmptyID)
	})

	t.Run("owned view and results follow mutations", func(t *testing.T) {
		s, _, _ := newTestSession(t)
		_, err := s.Search(ctx, "instant")
		require.NoError(t, err)

		_, err = s.Increment(ctx, "bolt")
		require.NoError(t, err)
		_, err = s.Increment(ctx, "bolt")
		require.NoError(t, err)
		_, err = s.Increment(ctx, "counter")
		require.NoError(t, err)

		assert.Equal(t, []view.Entry{{Card: bolt, Count: 2}, {Card: counter, Count: 1}}, s.Owned())
		assert.Equal(t, []view.Result{{Card: bolt, Owned: 2}, {Card: counter, Owned: 1}}, s.Results())

		n, err := s.Decrement(ctx, "bolt")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		n, err = s.Decrement(ctx, "bolt")
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		assert.Equal(t, []view.Entry{{Card: counter, Count: 1}}, s.Owned())
	})

	t.Run("decrement of card not owned is a no-op", func(t *testing.T) {
		s, _, _ := newTestSession(t)

		n, err := s.Decrement(ctx, "ghost")

		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, s.Owned())
	})
}

func TestSession_Clear(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *session.Session {
		s, store, _ := newTestSession(t)
		_, err := store.Add(ctx, bolt)
		require.NoError(t, err)
		return s
	}

	t.Run("confirmed clear empties collection", func(t *testing.T) {
		s := setup(t)

		cleared, err := s.Clear(ctx, func() (bool, error) { return true, nil })

		require.NoError(t, err)
		assert.True(t, cleared)
		assert.Empty(t, s.Owned())
	})

	t.Run("declined clear keeps collection", func(t *testing.T) {
		s := setup(t)

		cleared, err := s.Clear(ctx, func() (bool, error) { return false, nil })

		require.NoError(t, err)
		assert.False(t, cleared)
		assert.Len(t, s.Owned(), 1)
	})

	t.Run("confirmation error keeps collection", func(t *testing.T) {
		s := setup(t)
		boom := errors.New("no tty")

		cleared, err := s.Clear(ctx, func() (bool, error) { return false, boom })

		assert.ErrorIs(t, err, boom)
		assert.False(t, cleared)
		assert.Len(t, s.Owned(), 1)
	})
}

func TestSession_Toggles(t *testing.T) {
	t.Run("display mode toggles and threads into snapshot", func(t *testing.T) {
		s, _, _ := newTestSession(t)
		assert.Equal(t, view.ModeImages, s.Mode())

		assert.Equal(t, view.ModeText, s.ToggleDisplayMode())
		assert.Equal(t, view.ModeText, s.Snapshot().Mode)

		assert.Equal(t, view.ModeImages, s.ToggleDisplayMode())
	})

	t.Run("initial display mode option", func(t *testing.T) {
		s, _, _ := newTestSession(t, session.WithDisplayMode(view.ModeText))
		assert.Equal(t, view.ModeText, s.Mode())
	})

	t.Run("exclude mode toggles", func(t *testing.T) {
		s, _, _ := newTestSession(t)
		assert.True(t, s.ToggleExcludeMode())
		assert.True(t, s.Spec().ExcludeMode)
		assert.False(t, s.ToggleExcludeMode())
	})

	t.Run("spec is a copy", func(t *testing.T) {
		s, _, _ := newTestSession(t)
		s.SetTypes("creature", "land")
		s.SetColors(card.NewColorSet(card.Green))

		spec := s.Spec()
		spec.Types[0] = "mutated"
		spec.Colors[card.Red] = struct{}{}

		again := s.Spec()
		assert.Equal(t, []string{"creature", "land"}, again.Types)
		assert.Equal(t, "G", again.Colors.String())
	})
}

func TestSession_Close(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newTestSession(t)
	s.Close()

	_, err := store.Add(ctx, bolt)
	require.NoError(t, err)

	assert.Empty(t, s.Owned())
}
