package proptest

import (
	"cardvault/internal/filter"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestProperty_Filter_EmptySpecIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := recordsGen(minRecords, maxSearchResults).Draw(t, "records")
		exclude := rapid.Bool().Draw(t, "exclude")

		got := filter.Apply(records, filter.Spec{ExcludeMode: exclude})

		assertRecordsEqual(t, InvEmptySpecIdentity, records, got)
	})
}

func TestProperty_Filter_ResultIsOrderedSubsequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := recordsGen(minRecords, maxSearchResults).Draw(t, "records")
		spec := specGen().Draw(t, "spec")

		got := filter.Apply(records, spec)

		assertSubsequence(t, InvFilterSubsequence, got, records)
	})
}

func TestProperty_Filter_EveryResultMatches(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := recordsGen(minRecords, maxSearchResults).Draw(t, "records")
		spec := specGen().Draw(t, "spec")

		for _, r := range filter.Apply(records, spec) {
			types := filter.ParseTypes(spec.Types...)
			if len(types) > 0 {
				matched := false
				for _, ty := range types {
					if strings.Contains(strings.ToLower(r.TypeLine), strings.ToLower(ty)) {
						matched = true
					}
				}
				if !matched {
					t.Fatalf("%q (%q) matched none of %v", r.ID, r.TypeLine, types)
				}
			}
			if len(spec.Colors) == 0 {
				continue
			}
			if spec.ExcludeMode && !r.ColorSet().Equal(spec.Colors) {
				t.Fatalf("exact mode let %q through with colors %s, want %s", r.ID, r.ColorSet(), spec.Colors)
			}
			if !spec.ExcludeMode && !r.ColorSet().Intersects(spec.Colors) {
				t.Fatalf("inclusive mode let %q through with colors %s, want any of %s", r.ID, r.ColorSet(), spec.Colors)
			}
		}
	})
}

func TestProperty_Filter_ExactWithinInclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := recordsGen(minRecords, maxSearchResults).Draw(t, "records")
		spec := specGen().Draw(t, "spec")

		spec.ExcludeMode = false
		inclusive := filter.Apply(records, spec)
		spec.ExcludeMode = true
		exact := filter.Apply(records, spec)

		assertSubset(t, InvExactWithinInclusive, exact, inclusive)
	})
}

func TestProperty_Filter_MoreTypesNeverShrink(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := recordsGen(minRecords, maxSearchResults).Draw(t, "records")
		spec := specGen().Draw(t, "spec")
		if len(filter.ParseTypes(spec.Types...)) == 0 {
			t.Skip("type stage disabled")
		}

		before := filter.Apply(records, spec)
		spec.Types = append(spec.Types, typeQueryGen.Draw(t, "extraType"))
		after := filter.Apply(records, spec)

		assertSubset(t, InvMoreTypesNeverShrink, before, after)
	})
}
