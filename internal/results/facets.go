package results

import (
	"sort"
	"travel/internal/pricing"
)

// Facets summarizes the filterable dimensions actually present in a result
// set: distinct airlines or amenities, the resold price bounds, and the stop
// counts or rating values available.
type Facets struct {
	Airlines   []string    `json:"airlines,omitempty"`
	Amenities  []string    `json:"amenities,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
	Stops      []int       `json:"stops,omitempty"`
	Ratings    []float64   `json:"ratings,omitempty"`
}

// ComputeFacets scans offers once and collects the available filter values.
func ComputeFacets(offers []pricing.PricedOffer) Facets {
	if len(offers) == 0 {
		return Facets{}
	}

	airlines := make(map[string]struct{})
	amenities := make(map[string]struct{})
	stops := make(map[int]struct{})
	ratings := make(map[float64]struct{})

	minPrice := offers[0].Price.TotalPrice
	maxPrice := offers[0].Price.TotalPrice

	for _, o := range offers {
		total := o.Price.TotalPrice
		if total.LessThan(minPrice) {
			minPrice = total
		}
		if total.GreaterThan(maxPrice) {
			maxPrice = total
		}

		if code, ok := o.AirlineCode(); ok {
			airlines[code] = struct{}{}
		}
		if s, ok := o.Stops(); ok {
			stops[s] = struct{}{}
		}
		if r, ok := o.Rating(); ok {
			ratings[r] = struct{}{}
		}
		if list, ok := o.Amenities(); ok {
			for _, a := range list {
				amenities[a] = struct{}{}
			}
		}
	}

	f := Facets{
		PriceRange: &PriceRange{Min: minPrice, Max: maxPrice},
	}

	for a := range airlines {
		f.Airlines = append(f.Airlines, a)
	}
	sort.Strings(f.Airlines)

	for a := range amenities {
		f.Amenities = append(f.Amenities, a)
	}
	sort.Strings(f.Amenities)

	for s := range stops {
		f.Stops = append(f.Stops, s)
	}
	sort.Ints(f.Stops)

	for r := range ratings {
		f.Ratings = append(f.Ratings, r)
	}
	sort.Float64s(f.Ratings)

	return f
}
