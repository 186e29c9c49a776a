package collection

import (
	"cardvault/internal/card"
	"slices"
)

// Key is the fixed key the collection is persisted under.
const Key = "mtg-collection"

// Collection is an ordered multiset of owned copies. Each element is the
// full record as it was when the copy was added, so two entries with the
// same ID may carry different cached display fields.
type Collection []card.Record

func (c Collection) Count(id string) int {
	n := 0
	for _, r := range c {
		if r.ID == id {
			n++
		}
	}
	return n
}

// First returns the earliest stored record for id.
func (c Collection) First(id string) (card.Record, bool) {
	i := c.index(id)
	if i < 0 {
		return card.Record{}, false
	}
	return c[i], true
}

func (c Collection) Contains(id string) bool {
	return c.index(id) >= 0
}

func (c Collection) index(id string) int {
	return slices.IndexFunc(c, func(r card.Record) bool { return r.ID == id })
}

// Counts maps every distinct ID to its number of copies.
func (c Collection) Counts() map[string]int {
	counts := make(map[string]int)
	for _, r := range c {
		counts[r.ID]++
	}
	return counts
}

func (c Collection) with(r card.Record) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, c...)
	return append(out, r)
}

// without drops the first entry matching id. The bool reports whether
// anything was removed.
func (c Collection) without(id string) (Collection, bool) {
	i := c.index(id)
	if i < 0 {
		return c, false
	}
	return slices.Delete(slices.Clone(c), i, i+1), true
}
