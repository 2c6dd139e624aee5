package catalog

import (
	"testing"

	"techsklep/mobile/internal/domain"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Price: 300, Rating: 4.8},
		{ID: 2, Price: 99.99, Rating: 4.5},
		{ID: 3, Price: 50, Rating: 3.5},
	}
}

func ids(products []domain.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func assertOrder(t *testing.T, got []domain.Product, want []int) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestApplySortOrders(t *testing.T) {
	products := sampleProducts()

	assertOrder(t, ApplySort(products, SortPriceAsc), []int{3, 2, 1})
	assertOrder(t, ApplySort(products, SortPriceDesc), []int{1, 2, 3})
	assertOrder(t, ApplySort(products, SortRatingDesc), []int{1, 2, 3})
}

func TestApplySortIsStableOnTies(t *testing.T) {
	products := []domain.Product{
		{ID: 10, Price: 100, Rating: 4.0},
		{ID: 11, Price: 100, Rating: 4.0},
		{ID: 12, Price: 100, Rating: 4.0},
	}
	assertOrder(t, ApplySort(products, SortPriceAsc), []int{10, 11, 12})
	assertOrder(t, ApplySort(products, SortRatingDesc), []int{10, 11, 12})
}

func TestApplySortDoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	_ = ApplySort(products, SortPriceAsc)

	assertOrder(t, products, []int{1, 2, 3})
}

func TestApplySortUnknownOrderFallsBackToRating(t *testing.T) {
	assertOrder(t, ApplySort(sampleProducts(), SortOrder("bogus")), []int{1, 2, 3})
}

func TestRefineHidesUnavailable(t *testing.T) {
	products := []domain.Product{
		{ID: 1, QuantityType: domain.QuantityAvailable},
		{ID: 2, QuantityType: domain.QuantityNone},
		{ID: 3, QuantityType: domain.QuantityFew},
		{ID: 4},
	}

	kept := Refine(products, FilterCriteria{HideUnavailable: true})
	assertOrder(t, kept, []int{1, 3, 4})

	all := Refine(products, FilterCriteria{})
	assertOrder(t, all, []int{1, 2, 3, 4})
}
