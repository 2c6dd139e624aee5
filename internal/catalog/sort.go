package catalog

import (
	"sort"

	"techsklep/mobile/internal/domain"
)

// ApplySort returns a new slice ordered by the given sort. The sort is
// stable, so ties keep their fetched relative order, and the input slice is
// never mutated. An unknown order falls back to the rating default.
func ApplySort(products []domain.Product, order SortOrder) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	switch order {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case SortRatingDesc:
		fallthrough
	default:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })
	}
	return sorted
}

// Refine applies the client-side facets the backend query cannot express.
// Today that is only the availability toggle.
func Refine(products []domain.Product, criteria FilterCriteria) []domain.Product {
	if !criteria.HideUnavailable {
		out := make([]domain.Product, len(products))
		copy(out, products)
		return out
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Available() {
			out = append(out, p)
		}
	}
	return out
}
