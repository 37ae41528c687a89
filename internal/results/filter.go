package results

import (
	"strings"
	"travel/internal/pricing"

	"github.com/shopspring/decimal"
)

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// FilterSpec is the set of optional refinements applied to a result set.
// Unset filters are no-ops; active filters compose by logical AND. An offer
// missing the field a filter inspects is excluded, never an error.
type FilterSpec struct {
	Stops      []int       `json:"stops,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
	Airlines   []string    `json:"airlines,omitempty"`
	MinRating  *float64    `json:"min_rating,omitempty"`
	Amenities  []string    `json:"amenities,omitempty"`
}

func (f FilterSpec) isZero() bool {
	return len(f.Stops) == 0 && f.PriceRange == nil && len(f.Airlines) == 0 &&
		f.MinRating == nil && len(f.Amenities) == 0
}

// filterContext holds pre-built lookup sets so we don't rebuild them inside
// the per-offer loop
type filterContext struct {
	spec      FilterSpec
	stopSet   map[int]struct{}
	amenities []string
}

func newFilterContext(spec FilterSpec) *filterContext {
	fc := &filterContext{spec: spec}

	if len(spec.Stops) > 0 {
		fc.stopSet = make(map[int]struct{}, len(spec.Stops))
		for _, s := range spec.Stops {
			fc.stopSet[s] = struct{}{}
		}
	}
	if len(spec.Amenities) > 0 {
		fc.amenities = make([]string, 0, len(spec.Amenities))
		for _, a := range spec.Amenities {
			fc.amenities = append(fc.amenities, strings.ToLower(a))
		}
	}
	return fc
}

// Filter applies the spec to offers, preserving input order.
func Filter(offers []pricing.PricedOffer, spec FilterSpec) []pricing.PricedOffer {
	if spec.isZero() {
		return offers
	}

	fc := newFilterContext(spec)

	// Pre-allocate assuming worst case (nothing filtered) to avoid resizing
	filtered := make([]pricing.PricedOffer, 0, len(offers))

	for _, o := range offers {
		if fc.matches(o) {
			filtered = append(filtered, o)
		}
	}

	return filtered
}

// matches returns true only if ALL active filters pass
func (fc *filterContext) matches(o pricing.PricedOffer) bool {
	// Stops: exact membership of segments-1, one bucket per stop count
	if fc.stopSet != nil {
		stops, ok := o.Stops()
		if !ok {
			return false
		}
		if _, found := fc.stopSet[stops]; !found {
			return false
		}
	}

	// Price: resold total, inclusive bounds
	if fc.spec.PriceRange != nil {
		total := o.Price.TotalPrice
		if total.LessThan(fc.spec.PriceRange.Min) || total.GreaterThan(fc.spec.PriceRange.Max) {
			return false
		}
	}

	// Rating threshold
	if fc.spec.MinRating != nil {
		rating, ok := o.Rating()
		if !ok || rating < *fc.spec.MinRating {
			return false
		}
	}

	// Amenities: the offer's set must cover every requested amenity
	if len(fc.amenities) > 0 {
		offerAmenities, ok := o.Amenities()
		if !ok {
			return false
		}
		have := make(map[string]struct{}, len(offerAmenities))
		for _, a := range offerAmenities {
			have[strings.ToLower(a)] = struct{}{}
		}
		for _, want := range fc.amenities {
			if _, found := have[want]; !found {
				return false
			}
		}
	}

	// Airlines (string comparison is heaviest, do last)
	if len(fc.spec.Airlines) > 0 {
		code, ok := o.AirlineCode()
		if !ok {
			return false
		}
		matched := false
		for _, airline := range fc.spec.Airlines {
			if strings.EqualFold(code, airline) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}
