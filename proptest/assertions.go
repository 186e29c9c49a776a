package proptest

import (
	"cardvault/internal/card"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func assertRecordsEqual(t *rapid.T, inv string, expected, actual []card.Record) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("[%s] violated: records mismatch (-want +got):\n%s", inv, diff)
	}
}

// assertSubsequence checks that sub is super with some elements dropped
// and the rest in their original order.
func assertSubsequence(t *rapid.T, inv string, sub, super []card.Record) {
	t.Helper()
	j := 0
	for _, r := range sub {
		for j < len(super) && !cmp.Equal(super[j], r, cmpopts.EquateEmpty()) {
			j++
		}
		if j == len(super) {
			t.Fatalf("[%s] violated: %q is out of order or not in the input", inv, r.ID)
		}
		j++
	}
}

func assertSubset(t *rapid.T, inv string, subset, superset []card.Record) {
	t.Helper()
	superIDs := make(map[string]bool, len(superset))
	for _, r := range superset {
		superIDs[r.ID] = true
	}
	for _, r := range subset {
		if !superIDs[r.ID] {
			t.Fatalf("[%s] violated: %q not in superset", inv, r.ID)
		}
	}
}
