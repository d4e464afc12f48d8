package match

import (
	"testing"

	"refrain/internal/catalog"
)

func resultFor(queryID string, ref *catalog.NameRecord, score float64) Result {
	return Result{
		Query:      catalog.NameRecord{ID: queryID},
		Best:       &Candidate{Record: ref, Score: score},
		Confidence: ConfidenceMatch,
	}
}

func TestGroupVariants(t *testing.T) {
	refA := &catalog.NameRecord{ID: "a", DisplayName: "Qaradeniz"}
	refB := &catalog.NameRecord{ID: "b", DisplayName: "Ey güzel Qırım"}

	results := []Result{
		resultFor("q1", refA, 72),
		resultFor("q2", refB, 80),
		resultFor("q3", refA, 95),
		{Query: catalog.NameRecord{ID: "q4"}, Confidence: ConfidenceNoMatch},
		resultFor("q5", refA, 95),
	}

	groups := GroupVariants(results)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}

	// Groups appear in first-selection order.
	if groups[0].ReferenceID != "a" || groups[1].ReferenceID != "b" {
		t.Fatalf("group order = %s, %s, want a, b", groups[0].ReferenceID, groups[1].ReferenceID)
	}
	if groups[0].Size() != 3 || groups[1].Size() != 1 {
		t.Fatalf("group sizes = %d, %d, want 3, 1", groups[0].Size(), groups[1].Size())
	}

	// Members sort by score descending; the q3/q5 tie keeps input order.
	a := groups[0]
	if a.Members[0].Query.ID != "q3" || a.Members[1].Query.ID != "q5" || a.Members[2].Query.ID != "q1" {
		t.Fatalf("member order = %s, %s, %s, want q3, q5, q1",
			a.Members[0].Query.ID, a.Members[1].Query.ID, a.Members[2].Query.ID)
	}

	if got := a.Rank("q5"); got != 2 {
		t.Fatalf("Rank(q5) = %d, want 2", got)
	}
	if got := a.Rank("q4"); got != 0 {
		t.Fatalf("Rank(q4) = %d, want 0 for non-member", got)
	}
}

func TestGroupVariantsEmpty(t *testing.T) {
	if groups := GroupVariants(nil); len(groups) != 0 {
		t.Fatalf("groups = %d, want 0", len(groups))
	}
	noBest := []Result{{Query: catalog.NameRecord{ID: "q"}, Confidence: ConfidenceNoMatch}}
	if groups := GroupVariants(noBest); len(groups) != 0 {
		t.Fatalf("groups from no-match results = %d, want 0", len(groups))
	}
}
