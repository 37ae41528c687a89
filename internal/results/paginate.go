package results

import "travel/internal/pricing"

// PageSize is fixed for both flight and hotel result views.
const PageSize = 20

// ResultPage is one page of priced, ordered offers plus the facet summary the
// UI renders alongside them. Recomputed on every request, never persisted.
type ResultPage struct {
	Results     []pricing.PricedOffer `json:"results"`
	CurrentPage int                   `json:"current_page"`
	TotalPages  int                   `json:"total_pages"`
	Facets      Facets                `json:"facets"`
}

// Paginate slices offers into fixed-size pages. page is 1-indexed;
// out-of-range pages return an empty slice with the true total page count.
func Paginate(offers []pricing.PricedOffer, pageSize, page int) ([]pricing.PricedOffer, int) {
	totalPages := 0
	if len(offers) > 0 {
		totalPages = (len(offers) + pageSize - 1) / pageSize
	}

	if page < 1 || page > totalPages {
		return []pricing.PricedOffer{}, totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(offers) {
		end = len(offers)
	}

	return offers[start:end], totalPages
}
