package proptest

import (
	"cardvault/internal/card"
	"cardvault/internal/filter"
	"encoding/json"
	"fmt"

	"pgregory.net/rapid"
)

var (
	// A small ID pool makes repeated copies of the same card common.
	cardIDGen   = rapid.SampledFrom([]string{"bolt", "counterspell", "bears", "golem", "charm", "wrath"})
	absentIDGen = rapid.StringMatching(`zz[a-z]{4}`)
	nameGen     = rapid.StringMatching(`[A-Z][a-z]{2,8}( [A-Z][a-z]{2,8}){0,2}`)
	typeLineGen = rapid.SampledFrom([]string{
		"",
		"Instant",
		"Sorcery",
		"Creature — Bear",
		"Legendary Creature — Human Wizard",
		"Artifact Creature — Golem",
		"Enchantment — Aura",
		"Basic Land — Forest",
		"Legendary Planeswalker — Jace",
	})
	typeQueryGen = rapid.SampledFrom(append([]string{"legendary", "bear", "wizard", "CREATURE", " instant "}, filter.CommonTypes...))
	imageURLGen  = rapid.StringMatching(`(https://cards\.scryfall\.io/normal/[a-z]{4,8}\.jpg)?`)
)

func colorSetGen() *rapid.Generator[[]card.Color] {
	return rapid.Custom(func(t *rapid.T) []card.Color {
		var colors []card.Color
		for _, c := range card.AllColors {
			if rapid.Bool().Draw(t, "has"+string(c)) {
				colors = append(colors, c)
			}
		}
		return colors
	})
}

type RecordGenOpt func(*recordGenConfig)

type recordGenConfig struct {
	id *string
}

func WithID(id string) RecordGenOpt {
	return func(c *recordGenConfig) {
		c.id = &id
	}
}

func GenRecord(t *rapid.T, opts ...RecordGenOpt) card.Record {
	cfg := &recordGenConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	id := ""
	if cfg.id != nil {
		id = *cfg.id
	} else {
		id = cardIDGen.Draw(t, "id")
	}

	return card.Record{
		ID:       id,
		Name:     nameGen.Draw(t, "name"),
		ImageURL: imageURLGen.Draw(t, "imageURL"),
		TypeLine: typeLineGen.Draw(t, "typeLine"),
		Colors:   colorSetGen().Draw(t, "colors"),
	}
}

func recordsGen(minLen, maxLen int) *rapid.Generator[[]card.Record] {
	return rapid.Custom(func(t *rapid.T) []card.Record {
		n := rapid.IntRange(minLen, maxLen).Draw(t, "numRecords")
		out := make([]card.Record, n)
		for i := range out {
			out[i] = GenRecord(t)
		}
		return out
	})
}

func specGen() *rapid.Generator[filter.Spec] {
	return rapid.Custom(func(t *rapid.T) filter.Spec {
		return filter.Spec{
			Types:       rapid.SliceOfN(typeQueryGen, 0, 3).Draw(t, "types"),
			Colors:      card.NewColorSet(colorSetGen().Draw(t, "specColors")...),
			ExcludeMode: rapid.Bool().Draw(t, "exclude"),
		}
	})
}

func malformedGen() *rapid.Generator[[]byte] {
	return rapid.OneOf(
		rapid.Just([]byte("{{{{")),
		rapid.Just([]byte("- - - -\n  bad: [")),
		rapid.Just([]byte(`[{"id": "unterminated`)),
		rapid.Just([]byte("key: {unclosed")),
		rapid.Just([]byte("version: \"unmatched quote")),
		rapid.Just([]byte(`{"id": "not-a-list"}`)),
		rapid.Just([]byte("- id: [not, a, string]\n  name: x\n")),
	)
}

func garbageGen() *rapid.Generator[[]byte] {
	return rapid.Custom(func(t *rapid.T) []byte {
		size := rapid.IntRange(10, 100).Draw(t, "size")
		return rapid.SliceOfN(rapid.Byte(), size, size).Draw(t, "bytes")
	})
}

// legacyJSON renders records the way the browser build stored them: a
// JSON array with only id, name and imageUrl.
func legacyJSON(records []card.Record) ([]byte, error) {
	type legacyRecord struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
	}
	out := make([]legacyRecord, len(records))
	for i, r := range records {
		out[i] = legacyRecord{ID: r.ID, Name: r.Name, ImageURL: r.ImageURL}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode legacy records: %w", err)
	}
	return data, nil
}
