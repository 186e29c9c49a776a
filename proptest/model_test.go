package proptest

import (
	"cardvault/internal/card"
	"cardvault/internal/collection"
	"context"
	"slices"

	"pgregory.net/rapid"
)

// CollectionModel tracks owned copies as the ordered sequence of IDs the
// real store should hold.
type CollectionModel struct {
	ids []string
}

func (m *CollectionModel) Add(r card.Record) {
	m.ids = append(m.ids, r.ID)
}

// Remove drops the first copy of id and reports whether one was owned.
func (m *CollectionModel) Remove(id string) bool {
	i := slices.Index(m.ids, id)
	if i < 0 {
		return false
	}
	m.ids = slices.Delete(m.ids, i, i+1)
	return true
}

func (m *CollectionModel) Clear() {
	m.ids = nil
}

func (m *CollectionModel) Count(id string) int {
	n := 0
	for _, v := range m.ids {
		if v == id {
			n++
		}
	}
	return n
}

// OwnedIDs lists distinct owned IDs in first-encounter order.
func (m *CollectionModel) OwnedIDs() []string {
	var out []string
	for _, id := range m.ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

type CheckedStore struct {
	real  *collection.Store
	model *CollectionModel
	ctx   context.Context
	t     *rapid.T
}

func NewCheckedStore(t *rapid.T, store *collection.Store) *CheckedStore {
	return &CheckedStore{
		real:  store,
		model: &CollectionModel{},
		ctx:   context.Background(),
		t:     t,
	}
}

func (c *CheckedStore) Model() *CollectionModel {
	return c.model
}

func (c *CheckedStore) Add(r card.Record) {
	got, err := c.real.Add(c.ctx, r)
	if err != nil {
		c.t.Fatalf("Add(%q) failed: %v", r.ID, err)
	}
	c.model.Add(r)
	c.verify(got)
}

func (c *CheckedStore) Remove(id string) {
	before := c.load()
	got, err := c.real.Remove(c.ctx, id)
	if err != nil {
		c.t.Fatalf("Remove(%q) failed: %v", id, err)
	}
	if !c.model.Remove(id) {
		assertRecordsEqual(c.t, InvRemoveAbsentIsNoop, before, got)
	}
	c.verify(got)
}

func (c *CheckedStore) Clear() {
	if err := c.real.Clear(c.ctx); err != nil {
		c.t.Fatalf("Clear failed: %v", err)
	}
	c.model.Clear()
	c.verify(c.load())
}

func (c *CheckedStore) Load() collection.Collection {
	got := c.load()
	c.verify(got)
	return got
}

func (c *CheckedStore) load() collection.Collection {
	got, err := c.real.Load(c.ctx)
	if err != nil {
		c.t.Fatalf("Load failed: %v", err)
	}
	return got
}

func (c *CheckedStore) verify(got collection.Collection) {
	c.t.Helper()
	verifyStructuralInvariants(c.t, got)

	persisted := c.load()
	if len(persisted) != len(got) {
		c.t.Fatalf("[%s] violated: mutation returned %d copies but store holds %d", InvCountMatchesModel, len(got), len(persisted))
	}

	if len(got) != len(c.model.ids) {
		c.t.Fatalf("[%s] violated: store holds %d copies, model %d", InvCountMatchesModel, len(got), len(c.model.ids))
	}
	for i, r := range got {
		if r.ID != c.model.ids[i] {
			c.t.Fatalf("[%s] violated: copy %d is %q, model expects %q", InvCountMatchesModel, i, r.ID, c.model.ids[i])
		}
	}
	for _, id := range c.model.OwnedIDs() {
		if got.Count(id) != c.model.Count(id) {
			c.t.Fatalf("[%s] violated: %q count %d, model %d", InvCountMatchesModel, id, got.Count(id), c.model.Count(id))
		}
	}
}
