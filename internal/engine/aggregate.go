package engine

import "strings"

// AggregateByCategory reduces transactions into per-category spend totals,
// preserving first-seen category order. Transactions without a category are
// counted under Uncategorized. No date filtering happens here; the caller
// pre-filters to the window it cares about. Empty input yields an empty
// slice, not an error.
func AggregateByCategory(txns []Transaction) []CategorySpend {
	index := make(map[string]int, len(txns))
	out := make([]CategorySpend, 0, len(txns))
	for _, t := range txns {
		cat := strings.TrimSpace(t.Category)
		if cat == "" {
			cat = Uncategorized
		}
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, CategorySpend{Category: cat})
		}
		out[i].Total = out[i].Total.Add(t.Amount)
		out[i].Count++
	}
	return out
}
