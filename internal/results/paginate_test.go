package results

import (
	"fmt"
	"testing"
	"travel/internal/pricing"
)

func manyOffers(n int) []pricing.PricedOffer {
	offers := make([]pricing.PricedOffer, 0, n)
	for i := 1; i <= n; i++ {
		offers = append(offers, flightOffer(fmt.Sprintf("%d", i), "GA", 1, 120, int64(i)))
	}
	return offers
}

func TestPaginate(t *testing.T) {
	offers := manyOffers(45)

	page, total := Paginate(offers, PageSize, 1)
	if total != 3 {
		t.Errorf("totalPages = %d, want 3", total)
	}
	if len(page) != 20 {
		t.Errorf("page 1 len = %d, want 20", len(page))
	}
	if page[0].ID() != "1" || page[19].ID() != "20" {
		t.Errorf("page 1 bounds = %s..%s, want 1..20", page[0].ID(), page[19].ID())
	}

	page, _ = Paginate(offers, PageSize, 3)
	if len(page) != 5 {
		t.Errorf("page 3 len = %d, want 5", len(page))
	}
	if page[0].ID() != "41" {
		t.Errorf("page 3 starts at %s, want 41", page[0].ID())
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	offers := manyOffers(45)

	for _, page := range []int{0, -1, 4, 99} {
		got, total := Paginate(offers, PageSize, page)
		if total != 3 {
			t.Errorf("page %d: totalPages = %d, want 3", page, total)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("page %d: expected empty slice, got %v", page, ids(got))
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	got, total := Paginate(nil, PageSize, 1)
	if total != 0 {
		t.Errorf("totalPages = %d, want 0", total)
	}
	if len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestPaginate_ExactMultiple(t *testing.T) {
	offers := manyOffers(40)

	_, total := Paginate(offers, PageSize, 1)
	if total != 2 {
		t.Errorf("totalPages = %d, want 2", total)
	}

	page, _ := Paginate(offers, PageSize, 2)
	if len(page) != 20 {
		t.Errorf("page 2 len = %d, want 20", len(page))
	}
}
