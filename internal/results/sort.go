package results

import (
	"sort"
	"travel/internal/pricing"
)

type SortKey string

const (
	SortPriceAsc    SortKey = "price_asc"
	SortPriceDesc   SortKey = "price_desc"
	SortDurationAsc SortKey = "duration_asc"
	SortStopsAsc    SortKey = "stops_asc"
	SortRatingDesc  SortKey = "rating_desc"
)

// ParseSortKey maps a query value to a sort key, falling back to price
// ascending for anything it does not recognize.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortDurationAsc, SortStopsAsc, SortRatingDesc:
		return SortKey(s)
	default:
		return SortPriceAsc
	}
}

// Sort orders a copy of offers by key. Stable: equal-key offers keep their
// input order, so ties never jump around in the UI.
func Sort(offers []pricing.PricedOffer, key SortKey) []pricing.PricedOffer {
	if len(offers) <= 1 {
		return offers
	}

	sorted := make([]pricing.PricedOffer, len(offers))
	copy(sorted, offers)

	switch key {
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.TotalPrice.GreaterThan(sorted[j].Price.TotalPrice)
		})
	case SortDurationAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			di, _ := sorted[i].DurationMinutes()
			dj, _ := sorted[j].DurationMinutes()
			return di < dj
		})
	case SortStopsAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			si, _ := sorted[i].Stops()
			sj, _ := sorted[j].Stops()
			return si < sj
		})
	case SortRatingDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			ri, _ := sorted[i].Rating()
			rj, _ := sorted[j].Rating()
			return ri > rj
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.TotalPrice.LessThan(sorted[j].Price.TotalPrice)
		})
	}

	return sorted
}
