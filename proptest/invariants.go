package proptest

import (
	"cardvault/internal/collection"
	"cardvault/internal/view"

	"pgregory.net/rapid"
)

const (
	InvRecordHasID          = "record-has-id"
	InvCountMatchesModel    = "count-matches-model"
	InvCountNeverNegative   = "count-never-negative"
	InvRemoveAbsentIsNoop   = "remove-absent-is-noop"
	InvProjectionTotals     = "projection-totals"
	InvProjectionUniqueIDs  = "projection-unique-ids"
	InvProjectionFirstSeen  = "projection-first-seen-order"
	InvProjectionStable     = "projection-deterministic"
	InvEmptySpecIdentity    = "empty-spec-identity"
	InvFilterSubsequence    = "filter-subsequence"
	InvExactWithinInclusive = "exact-within-inclusive"
	InvMoreTypesNeverShrink = "more-types-never-shrink"
	InvSaveLoadRoundTrip    = "save-load-round-trip"
	InvMalformedLoadsEmpty  = "malformed-loads-empty"
	InvClearLoadsEmpty      = "clear-loads-empty"
)

func verifyStructuralInvariants(t *rapid.T, c collection.Collection) {
	entries := view.Project(c)

	if total := view.TotalCopies(entries); total != len(c) {
		t.Fatalf("[%s] violated: projection holds %d copies but collection has %d", InvProjectionTotals, total, len(c))
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Card.ID] {
			t.Fatalf("[%s] violated: ID %q appears twice in projection", InvProjectionUniqueIDs, e.Card.ID)
		}
		seen[e.Card.ID] = true

		if e.Count <= 0 {
			t.Fatalf("[%s] violated: ID %q projected with count %d", InvCountNeverNegative, e.Card.ID, e.Count)
		}
		if e.Count != c.Count(e.Card.ID) {
			t.Fatalf("[%s] violated: projected %d copies of %q, collection has %d", InvProjectionTotals, e.Count, e.Card.ID, c.Count(e.Card.ID))
		}
	}

	for _, r := range c {
		if r.ID == "" {
			t.Fatalf("[%s] violated: stored record has empty ID", InvRecordHasID)
		}
	}
}
