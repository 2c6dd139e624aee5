package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

// SortOrder selects the ordering of the rendered result list.
type SortOrder string

const (
	SortRatingDesc SortOrder = "ratingDesc"
	SortPriceAsc   SortOrder = "priceAsc"
	SortPriceDesc  SortOrder = "priceDesc"
)

// DefaultSort matches the result screen's initial selection.
const DefaultSort = SortRatingDesc

// FilterCriteria is the ephemeral per-session filter state. Nil price bounds
// mean unbounded on that side; an empty producer set means all producers.
type FilterCriteria struct {
	CategoryIDs     []int
	Producers       []string
	SearchQuery     string
	PriceMin        *float64
	PriceMax        *float64
	HideUnavailable bool
}

// Clone returns an independent copy, so a filter-sheet draft can diverge
// from the applied criteria without aliasing its slices.
func (c FilterCriteria) Clone() FilterCriteria {
	cp := c
	cp.CategoryIDs = append([]int(nil), c.CategoryIDs...)
	cp.Producers = append([]string(nil), c.Producers...)
	return cp
}

// Query is a backend request description: GET against Path with Params.
type Query struct {
	Method string
	Path   string
	Params url.Values
}

// Encode renders the path with the encoded query string appended.
func (q Query) Encode() string {
	if len(q.Params) == 0 {
		return q.Path
	}
	return q.Path + "?" + q.Params.Encode()
}

// productQueryParams is the wire shape of /api/products/filter parameters.
// Slices encode as repeated keys (categoryIds=1&categoryIds=2), which the
// backend OR-matches.
type productQueryParams struct {
	CategoryIDs []int    `schema:"categoryIds,omitempty"`
	Producers   []string `schema:"producers,omitempty"`
	SearchQuery string   `schema:"searchQuery,omitempty"`
}

type producerQueryParams struct {
	CategoryIDs []int  `schema:"categoryIds,omitempty"`
	SearchQuery string `schema:"searchQuery,omitempty"`
}

var encoder = schema.NewEncoder()

// BuildProductQuery constructs the pre-filtered product request. Price
// bounds are inclusive and appended only when set.
func BuildProductQuery(criteria FilterCriteria) Query {
	params := url.Values{}
	_ = encoder.Encode(productQueryParams{
		CategoryIDs: criteria.CategoryIDs,
		Producers:   criteria.Producers,
		SearchQuery: criteria.SearchQuery,
	}, params)
	if criteria.PriceMin != nil {
		params.Set("minPrice", formatPrice(*criteria.PriceMin))
	}
	if criteria.PriceMax != nil {
		params.Set("maxPrice", formatPrice(*criteria.PriceMax))
	}
	return Query{Method: "GET", Path: "/api/products/filter", Params: params}
}

// BuildProducerQuery requests the distinct producers available under the
// category and search constraints. Price and producer selections are left
// out on purpose, so the sheet always offers the full producer choice.
func BuildProducerQuery(criteria FilterCriteria) Query {
	params := url.Values{}
	_ = encoder.Encode(producerQueryParams{
		CategoryIDs: criteria.CategoryIDs,
		SearchQuery: criteria.SearchQuery,
	}, params)
	return Query{Method: "GET", Path: "/api/products/producers", Params: params}
}

// ParsePriceBound turns free-text price input into a bound. Empty or
// unparseable text means unbounded, never an error.
func ParsePriceBound(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || val < 0 {
		return nil
	}
	return &val
}

func formatPrice(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
