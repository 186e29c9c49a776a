package card

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrEmptyID      = errors.New("card id cannot be empty")
	ErrUnknownColor = errors.New("unknown color code")
)

type Color string

const (
	White Color = "W"
	Blue  Color = "U"
	Black Color = "B"
	Red   Color = "R"
	Green Color = "G"
)

// AllColors is in WUBRG order, which is also the order String uses.
var AllColors = []Color{White, Blue, Black, Red, Green}

func (c Color) Valid() bool {
	return slices.Contains(AllColors, c)
}

// Record is one card as returned by the lookup. Identity is by ID alone.
// Records are values; callers must not mutate Colors in place.
type Record struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	ImageURL string  `yaml:"imageUrl,omitempty"`
	TypeLine string  `yaml:"type_line,omitempty"`
	Colors   []Color `yaml:"colors,omitempty,flow"`
}

func (r Record) WithTypeLine(typeLine string) Record {
	newR := r
	newR.TypeLine = typeLine
	return newR
}

func (r Record) WithColors(colors ...Color) Record {
	newR := r
	newR.Colors = slices.Clone(colors)
	return newR
}

func (r Record) ColorSet() ColorSet {
	return NewColorSet(r.Colors...)
}

func (r Record) Colorless() bool {
	return len(r.Colors) == 0
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	return nil
}

type ColorSet map[Color]struct{}

func NewColorSet(colors ...Color) ColorSet {
	s := make(ColorSet, len(colors))
	for _, c := range colors {
		s[c] = struct{}{}
	}
	return s
}

func (s ColorSet) Has(c Color) bool {
	_, ok := s[c]
	return ok
}

func (s ColorSet) Intersects(other ColorSet) bool {
	for c := range s {
		if other.Has(c) {
			return true
		}
	}
	return false
}

func (s ColorSet) Equal(other ColorSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// Sorted returns the members in WUBRG order followed by any
// non-standard codes in lexical order.
func (s ColorSet) Sorted() []Color {
	out := make([]Color, 0, len(s))
	for _, c := range AllColors {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	var extra []Color
	for c := range s {
		if !c.Valid() {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

func (s ColorSet) String() string {
	var b strings.Builder
	for _, c := range s.Sorted() {
		b.WriteString(string(c))
	}
	return b.String()
}

// ParseColors accepts "WU", "w,u" or "W U". Empty input yields an empty set.
func ParseColors(s string) (ColorSet, error) {
	set := make(ColorSet)
	for _, r := range strings.ToUpper(s) {
		switch r {
		case ',', ' ', '\t':
			continue
		}
		c := Color(string(r))
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, string(r))
		}
		set[c] = struct{}{}
	}
	return set, nil
}
