package match

import (
	"sort"

	"refrain/internal/catalog"
)

// VariantGroup collects the queries whose best candidate is the same
// reference record, best score first. Purely informational: grouping never
// changes individual classifications.
type VariantGroup struct {
	ReferenceID string
	Reference   *catalog.NameRecord
	// Members holds the grouped results, best score first.
	Members []Result
}

// Size returns the number of queries in the group.
func (g VariantGroup) Size() int {
	return len(g.Members)
}

// Rank returns the 1-based variant rank for a query ID, or 0 when the query
// is not a member.
func (g VariantGroup) Rank(queryID string) int {
	for i, m := range g.Members {
		if m.Query.ID == queryID {
			return i + 1
		}
	}
	return 0
}

// GroupVariants derives reference-to-queries groups from classified results.
// Results without a best candidate are ignored. Groups appear in order of the
// first query that selected each reference; members are ordered by score
// descending with ties kept in original result order.
func GroupVariants(results []Result) []VariantGroup {
	order := make([]string, 0)
	grouped := make(map[string]*VariantGroup)

	for _, result := range results {
		if result.Best == nil || result.Best.Record == nil {
			continue
		}
		refID := result.Best.Record.ID
		group, ok := grouped[refID]
		if !ok {
			group = &VariantGroup{ReferenceID: refID, Reference: result.Best.Record}
			grouped[refID] = group
			order = append(order, refID)
		}
		group.Members = append(group.Members, result)
	}

	out := make([]VariantGroup, 0, len(order))
	for _, refID := range order {
		group := grouped[refID]
		sort.SliceStable(group.Members, func(i, j int) bool {
			return group.Members[i].Best.Score > group.Members[j].Best.Score
		})
		out = append(out, *group)
	}
	return out
}
