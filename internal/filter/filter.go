package filter

import (
	"cardvault/internal/card"
	"strings"
)

// Spec is the compound filter applied to one search. An empty Types or
// Colors skips that stage entirely.
type Spec struct {
	Types  []string
	Colors card.ColorSet
	// ExcludeMode switches the color stage from "shares any color" to
	// "has exactly these colors".
	ExcludeMode bool
}

func (s Spec) IsEmpty() bool {
	return len(s.types()) == 0 && len(s.Colors) == 0
}

func (s Spec) types() []string {
	var out []string
	for _, t := range s.Types {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Apply returns the records matching spec in their input order.
func Apply(records []card.Record, spec Spec) []card.Record {
	types := spec.types()
	results := make([]card.Record, 0, len(records))
	for _, r := range records {
		if matchesType(r, types) && matchesColors(r, spec.Colors, spec.ExcludeMode) {
			results = append(results, r)
		}
	}
	return results
}

func matchesType(r card.Record, types []string) bool {
	if len(types) == 0 {
		return true
	}
	typeLine := strings.ToLower(r.TypeLine)
	for _, t := range types {
		if strings.Contains(typeLine, t) {
			return true
		}
	}
	return false
}

func matchesColors(r card.Record, colors card.ColorSet, exact bool) bool {
	if len(colors) == 0 {
		return true
	}
	if exact {
		return r.ColorSet().Equal(colors)
	}
	return r.ColorSet().Intersects(colors)
}

// ParseTypes splits comma-separated type queries, dropping blanks.
func ParseTypes(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// CommonTypes are the card types offered by the interactive filter form.
var CommonTypes = []string{
	"creature",
	"instant",
	"sorcery",
	"artifact",
	"enchantment",
	"planeswalker",
	"land",
	"battle",
}
