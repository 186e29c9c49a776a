package view

import (
	"cardvault/internal/card"
	"cardvault/internal/collection"
	"fmt"
)

// Entry is one distinct owned card and its number of copies.
type Entry struct {
	Card  card.Record
	Count int
}

// Result is a search result annotated with how many copies are owned.
type Result struct {
	Card  card.Record
	Owned int
}

// Project groups c by ID in first-encounter order. The first stored copy
// of each ID is the representative record; later copies only add to the
// count.
func Project(c collection.Collection) []Entry {
	entries := make([]Entry, 0)
	index := make(map[string]int)
	for _, r := range c {
		if i, ok := index[r.ID]; ok {
			entries[i].Count++
			continue
		}
		index[r.ID] = len(entries)
		entries = append(entries, Entry{Card: r, Count: 1})
	}
	return entries
}

func Results(records []card.Record, c collection.Collection) []Result {
	counts := c.Counts()
	results := make([]Result, len(records))
	for i, r := range records {
		results[i] = Result{Card: r, Owned: counts[r.ID]}
	}
	return results
}

// TotalCopies is the sum of all counts in entries.
func TotalCopies(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Count
	}
	return n
}

type DisplayMode string

const (
	ModeImages DisplayMode = "images"
	ModeText   DisplayMode = "text"
)

func (m DisplayMode) Toggle() DisplayMode {
	if m == ModeText {
		return ModeImages
	}
	return ModeText
}

func (m DisplayMode) ShowImages() bool {
	return m != ModeText
}

func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case ModeImages, "":
		return ModeImages, nil
	case ModeText:
		return ModeText, nil
	default:
		return "", fmt.Errorf("unknown display mode %q (want %q or %q)", s, ModeImages, ModeText)
	}
}
